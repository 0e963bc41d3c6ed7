package votecalc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_CoalescesByEntity(t *testing.T) {
	q := NewQueue()
	q.Enqueue(request(tc0, 3), request(proposal1, 1))
	q.Enqueue(request(tc0, 2))
	q.Enqueue(request(tc0, 5))

	assert.Equal(t, 2, q.Len())
	batch := q.drain()
	require.Len(t, batch, 2)
	assert.Equal(t, tc0, batch[0].req.Ref)
	assert.Equal(t, uint64(5), batch[0].req.OnChainVoteCount)
	assert.Len(t, batch[0].tickets, 3)
	assert.Equal(t, proposal1, batch[1].req.Ref)
	assert.Zero(t, q.Len())
}

func TestQueue_SignalCollapses(t *testing.T) {
	q := NewQueue()
	q.Enqueue(request(tc0, 1))
	q.Enqueue(request(tc0, 2))

	select {
	case <-q.Signal():
	default:
		t.Fatal("expected a signal")
	}
	select {
	case <-q.Signal():
		t.Fatal("expected a single signal")
	default:
	}
}

func TestTicket(t *testing.T) {
	t.Run("empty resolves immediately", func(t *testing.T) {
		q := NewQueue()
		require.NoError(t, q.Enqueue().Wait(context.Background()))
		assert.Zero(t, q.Len())
	})

	t.Run("resolves after every request", func(t *testing.T) {
		tk := newTicket(2)
		tk.resolve(nil)
		select {
		case <-tk.Done():
			t.Fatal("resolved early")
		default:
		}
		tk.resolve(nil)
		require.NoError(t, tk.Wait(context.Background()))
	})

	t.Run("first error wins", func(t *testing.T) {
		first := errors.New("first")
		tk := newTicket(3)
		tk.resolve(nil)
		tk.resolve(first)
		tk.resolve(errors.New("second"))
		assert.ErrorIs(t, tk.Wait(context.Background()), first)
	})

	t.Run("wait honours context", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, newTicket(1).Wait(ctx), context.DeadlineExceeded)
	})
}

func TestQueue_DuplicateRefsInOneEnqueue(t *testing.T) {
	q := NewQueue()
	tk := q.Enqueue(request(tc0, 1), request(tc0, 2))

	batch := q.drain()
	require.Len(t, batch, 1)
	resolveAll(batch[0].tickets, nil)
	require.NoError(t, tk.Wait(context.Background()))
	assert.Equal(t, request(tc0, 2), batch[0].req)
}
