package votecalc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeLister struct {
	counts   governance.Counts
	entities map[governance.EntityRef]governance.EntitySummary
	failing  map[governance.EntityRef]bool
}

func (l *fakeLister) Counts(context.Context, uint64) (governance.Counts, error) { return l.counts, nil }

func (l *fakeLister) Entity(_ context.Context, ref governance.EntityRef, _ uint64) (governance.EntitySummary, error) {
	if l.failing[ref] {
		return governance.EntitySummary{}, errors.New("gateway timeout")
	}
	s, ok := l.entities[ref]
	if !ok {
		return governance.EntitySummary{}, governance.ErrEntityNotFound
	}
	return s, nil
}

func summary(ref governance.EntityRef, count uint64) governance.EntitySummary {
	return governance.EntitySummary{Ref: ref, VoteCount: count, VoteStore: storeFor(ref), Start: start}
}

func TestReconciler_QueuesEntitiesBehindChain(t *testing.T) {
	tc1 := governance.EntityRef{Kind: governance.KindTemperatureCheck, ID: 1}
	tc2 := governance.EntityRef{Kind: governance.KindTemperatureCheck, ID: 2}
	proposal0 := governance.EntityRef{Kind: governance.KindProposal, ID: 0}

	store := newMemStore()
	for ref, count := range map[governance.EntityRef]uint64{tc0: 4, tc1: 2} {
		s, err := store.GetOrCreateState(context.Background(), ref)
		require.NoError(t, err)
		require.NoError(t, store.CommitVotes(context.Background(), collectorCommit(s.ID, count)))
	}

	lister := &fakeLister{
		counts: governance.Counts{TemperatureChecks: 3, Proposals: 2},
		entities: map[governance.EntityRef]governance.EntitySummary{
			tc0:       summary(tc0, 4),
			tc1:       summary(tc1, 5),
			tc2:       summary(tc2, 0),
			proposal0: summary(proposal0, 7),
			proposal1: summary(proposal1, 1),
		},
		failing: map[governance.EntityRef]bool{proposal1: true},
	}
	pool := pond.NewPool(5)
	t.Cleanup(pool.StopAndWait)
	q := NewQueue()
	r := &Reconciler{Logger: zaptest.NewLogger(t), Entities: lister, Store: store, Queue: q, Pool: pool}

	_, err := r.Run(context.Background())
	require.NoError(t, err)

	batch := q.drain()
	got := map[governance.EntityRef]uint64{}
	for _, p := range batch {
		got[p.req.Ref] = p.req.OnChainVoteCount
		assert.Equal(t, storeFor(p.req.Ref), p.req.VoteStore)
	}
	assert.Equal(t, map[governance.EntityRef]uint64{tc1: 5, proposal0: 7}, got)
}

func TestReconciler_TicketTracksCalculations(t *testing.T) {
	f := newEngineFixture(t)
	f.votes.cast(tc0, "account_a", governance.OptionFor)
	w, _ := newWorker(t, f.engine, nil)
	startWorker(t, w)

	pool := pond.NewPool(5)
	t.Cleanup(pool.StopAndWait)
	r := &Reconciler{
		Logger:   zaptest.NewLogger(t),
		Entities: &fakeLister{counts: governance.Counts{TemperatureChecks: 1}, entities: map[governance.EntityRef]governance.EntitySummary{tc0: summary(tc0, 1)}},
		Store:    f.store,
		Queue:    w.Queue,
		Pool:     pool,
	}

	tk, err := r.Run(context.Background())
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, tk.Wait(ctx))
	assert.Equal(t, uint64(1), f.store.lastVoteCount(tc0))
}
