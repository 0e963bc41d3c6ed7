package votecalc

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/canopy-network/votecollector/pkg/db/postgres/collector"
	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/canopy-network/votecollector/pkg/votepower"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// memStore mirrors the collector tables in memory, including the commit step order.
type memStore struct {
	mu        sync.Mutex
	nextID    int64
	states    map[governance.EntityRef]*collector.State
	results   map[int64]map[string]decimal.Decimal
	votes     map[int64]map[string]map[string]decimal.Decimal
	commitErr error
	commits   int
	// beforeRead, when set, runs before AccountVotesByAddresses reads, outside the lock.
	beforeRead func()
}

func newMemStore() *memStore {
	return &memStore{
		states:  map[governance.EntityRef]*collector.State{},
		results: map[int64]map[string]decimal.Decimal{},
		votes:   map[int64]map[string]map[string]decimal.Decimal{},
	}
}

func (m *memStore) GetOrCreateState(_ context.Context, ref governance.EntityRef) (collector.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[ref]; ok {
		return *s, nil
	}
	m.nextID++
	s := &collector.State{ID: m.nextID, Ref: ref}
	m.states[ref] = s
	m.results[s.ID] = map[string]decimal.Decimal{}
	m.votes[s.ID] = map[string]map[string]decimal.Decimal{}
	return *s, nil
}

func (m *memStore) AccountVotesByAddresses(_ context.Context, stateID int64, accounts []string) ([]collector.AccountVote, error) {
	if m.beforeRead != nil {
		m.beforeRead()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []collector.AccountVote
	for _, a := range accounts {
		opts := m.votes[stateID][a]
		keys := make([]string, 0, len(opts))
		for k := range opts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out = append(out, collector.AccountVote{Account: a, Option: k, Power: opts[k]})
		}
	}
	return out, nil
}

func (m *memStore) CommitVotes(_ context.Context, c collector.Commit) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.commitErr != nil {
		return m.commitErr
	}
	var state *collector.State
	for _, s := range m.states {
		if s.ID == c.StateID {
			state = s
		}
	}
	if state == nil {
		return collector.ErrStateNotFound
	}
	if c.LastVoteCount <= c.PrevVoteCount || state.LastVoteCount != c.PrevVoteCount {
		return collector.ErrWatermarkMoved
	}
	for _, r := range c.Removals {
		delete(m.votes[c.StateID], r.Account)
	}
	for _, t := range collector.SumByOption(c.Removals) {
		m.results[c.StateID][t.Option] = m.results[c.StateID][t.Option].Sub(t.Power)
	}
	for _, v := range c.AccountVotes {
		if m.votes[c.StateID][v.Account] == nil {
			m.votes[c.StateID][v.Account] = map[string]decimal.Decimal{}
		}
		m.votes[c.StateID][v.Account][v.Option] = v.Power
	}
	for _, t := range c.Results {
		m.results[c.StateID][t.Option] = m.results[c.StateID][t.Option].Add(t.Power)
	}
	state.LastVoteCount = c.LastVoteCount
	m.commits++
	return nil
}

func (m *memStore) LastVoteCounts(context.Context) (map[governance.EntityRef]uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[governance.EntityRef]uint64, len(m.states))
	for ref, s := range m.states {
		out[ref] = s.LastVoteCount
	}
	return out, nil
}

func (m *memStore) result(ref governance.EntityRef) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[ref]
	if !ok {
		return nil
	}
	out := map[string]string{}
	for opt, p := range m.results[s.ID] {
		out[opt] = p.String()
	}
	return out
}

func (m *memStore) accountVotes(ref governance.EntityRef, account string) map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]string{}
	for opt, p := range m.votes[m.states[ref].ID][account] {
		out[opt] = p.String()
	}
	return out
}

func (m *memStore) lastVoteCount(ref governance.EntityRef) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[ref]; ok {
		return s.LastVoteCount
	}
	return 0
}

// fakeVotes serves 1-based vote lists per entity.
type fakeVotes struct {
	mu    sync.Mutex
	lists map[governance.EntityRef][]governance.Vote
	err   error
	calls [][2]uint64
}

func (f *fakeVotes) cast(ref governance.EntityRef, account string, options ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lists == nil {
		f.lists = map[governance.EntityRef][]governance.Vote{}
	}
	list := f.lists[ref]
	f.lists[ref] = append(list, governance.Vote{Index: uint64(len(list) + 1), Account: account, Options: options})
}

func (f *fakeVotes) VotesByIndex(_ context.Context, kind governance.EntityKind, store string, from, to uint64) ([]governance.Vote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, [2]uint64{from, to})
	if f.err != nil {
		return nil, f.err
	}
	for ref, list := range f.lists {
		if ref.Kind != kind || storeFor(ref) != store {
			continue
		}
		var out []governance.Vote
		for _, v := range list {
			if v.Index >= from && v.Index <= to {
				out = append(out, v)
			}
		}
		return out, nil
	}
	return nil, nil
}

func storeFor(ref governance.EntityRef) string { return "store_" + ref.String() }

// fakeLedger resolves every instant through a fixed table.
type fakeLedger struct {
	versions map[time.Time]uint64
}

func (f fakeLedger) StateVersionAt(_ context.Context, at time.Time) (uint64, error) {
	return f.versions[at], nil
}

type snapshotCall struct {
	addresses    []string
	stateVersion uint64
	start        time.Time
}

// fakeSnapshotter returns balances recorded per state version.
type fakeSnapshotter struct {
	mu       sync.Mutex
	balances map[uint64]map[string]decimal.Decimal
	calls    []snapshotCall
	err      error
}

func (f *fakeSnapshotter) Snapshot(_ context.Context, addresses []string, sv uint64, start time.Time) (votepower.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, snapshotCall{addresses: append([]string(nil), addresses...), stateVersion: sv, start: start})
	if f.err != nil {
		return votepower.Snapshot{}, f.err
	}
	out := votepower.Snapshot{Total: map[string]decimal.Decimal{}}
	for _, a := range addresses {
		if p, ok := f.balances[sv][a]; ok && !p.IsZero() {
			out.Total[a] = p
		}
	}
	return out, nil
}

func (f *fakeSnapshotter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func collectorCommit(stateID int64, count uint64) collector.Commit {
	return collector.Commit{StateID: stateID, LastVoteCount: count}
}
