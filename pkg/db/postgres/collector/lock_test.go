package collector

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// memLeases mirrors the conditional upsert of DB.TryAcquireLease.
type memLeases struct {
	mu       sync.Mutex
	rows     map[string]time.Time
	releases int
}

func newMemLeases() *memLeases { return &memLeases{rows: map[string]time.Time{}} }

func (m *memLeases) TryAcquireLease(_ context.Context, key string, now, staleBefore time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if held, ok := m.rows[key]; ok && held.UnixMilli() > staleBefore.UnixMilli() {
		return false, nil
	}
	m.rows[key] = now
	return true, nil
}

func (m *memLeases) ReleaseLease(_ context.Context, key string, acquiredAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if held, ok := m.rows[key]; ok && held.UnixMilli() == acquiredAt.UnixMilli() {
		delete(m.rows, key)
	}
	m.releases++
	return nil
}

func TestPollLock_Staleness(t *testing.T) {
	store := newMemLeases()
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	holder := NewPollLock(zaptest.NewLogger(t), store, 120*time.Second)
	holder.Now = func() time.Time { return t0 }
	ok, err := store.TryAcquireLease(context.Background(), holder.Key, t0, t0.Add(-holder.Timeout))
	require.NoError(t, err)
	require.True(t, ok)

	tests := []struct {
		name    string
		at      time.Time
		wantRun bool
	}{
		{"fresh lease blocks", t0.Add(60 * time.Second), false},
		{"lease one millisecond short of timeout blocks", t0.Add(120*time.Second - time.Millisecond), false},
		{"lease at exactly the timeout is stale", t0.Add(120 * time.Second), true},
		{"stale lease is stolen", t0.Add(121 * time.Second), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock := NewPollLock(zaptest.NewLogger(t), store, 120*time.Second)
			lock.Now = func() time.Time { return tt.at }
			ran := false
			err := lock.WithLock(context.Background(), func(context.Context) error {
				ran = true
				return nil
			})
			assert.Equal(t, tt.wantRun, ran)
			if tt.wantRun {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrLockNotAcquired)
			}
		})
	}
}

func TestPollLock_ReleaseKeepsStolenLease(t *testing.T) {
	store := newMemLeases()
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	slow := NewPollLock(zaptest.NewLogger(t), store, 120*time.Second)
	slow.Now = func() time.Time { return t0 }
	thief := NewPollLock(zaptest.NewLogger(t), store, 120*time.Second)
	thief.Now = func() time.Time { return t0.Add(121 * time.Second) }

	err := slow.WithLock(context.Background(), func(ctx context.Context) error {
		// The slow holder overruns its lease and another instance takes it meanwhile.
		ok, err := store.TryAcquireLease(ctx, thief.Key, thief.Now(), thief.Now().Add(-thief.Timeout))
		require.NoError(t, err)
		require.True(t, ok)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, t0.Add(121*time.Second), store.rows[PollLockKey])
	blocked := NewPollLock(zaptest.NewLogger(t), store, 120*time.Second)
	blocked.Now = func() time.Time { return t0.Add(130 * time.Second) }
	assert.ErrorIs(t, blocked.WithLock(context.Background(), func(context.Context) error { return nil }), ErrLockNotAcquired)
}

func TestPollLock_ReleasesOnFailure(t *testing.T) {
	store := newMemLeases()
	lock := NewPollLock(zaptest.NewLogger(t), store, time.Minute)
	boom := errors.New("cycle failed")

	err := lock.WithLock(context.Background(), func(context.Context) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, store.releases)
	assert.Empty(t, store.rows)

	// Released, so the next caller gets it immediately.
	err = lock.WithLock(context.Background(), func(context.Context) error { return nil })
	assert.NoError(t, err)
}

func TestPollLock_ReleasesAfterCancel(t *testing.T) {
	store := newMemLeases()
	lock := NewPollLock(zaptest.NewLogger(t), store, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	err := lock.WithLock(ctx, func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.rows)
}

func TestSumByOption(t *testing.T) {
	got := SumByOption([]AccountVote{
		{Account: "a", Option: "For", Power: decimal.RequireFromString("1.5")},
		{Account: "b", Option: "Against", Power: decimal.RequireFromString("2")},
		{Account: "c", Option: "For", Power: decimal.RequireFromString("0.25")},
	})
	require.Len(t, got, 2)
	assert.Equal(t, "Against", got[0].Option)
	assert.Equal(t, "For", got[1].Option)
	assert.True(t, decimal.RequireFromString("1.75").Equal(got[1].Power))
}

func TestEntityKindNamesMatchColumn(t *testing.T) {
	// The type column stores these names; changing them orphans stored state.
	assert.Equal(t, "temperature_check", governance.KindTemperatureCheck.String())
	assert.Equal(t, "proposal", governance.KindProposal.String())
}
