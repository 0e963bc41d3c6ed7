package votecalc

import (
	"context"
	"sort"
	"sync"

	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/puzpuzpuz/xsync/v4"
)

// Ticket resolves once every request it was issued for has been calculated or has failed.
type Ticket struct {
	mu        sync.Mutex
	remaining int
	err       error
	done      chan struct{}
}

func newTicket(n int) *Ticket {
	t := &Ticket{remaining: n, done: make(chan struct{})}
	if n == 0 {
		close(t.done)
	}
	return t
}

func (t *Ticket) resolve(err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.remaining == 0 {
		return
	}
	if err != nil && t.err == nil {
		t.err = err
	}
	t.remaining--
	if t.remaining == 0 {
		close(t.done)
	}
}

// Wait blocks until the ticket resolves and returns the first calculation error.
func (t *Ticket) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when the ticket resolves.
func (t *Ticket) Done() <-chan struct{} { return t.done }

// pending is a coalesced request and every ticket waiting on it.
type pending struct {
	req     governance.RecalculationRequest
	tickets []*Ticket
	// seq orders drains by first arrival.
	seq uint64
}

// Queue coalesces recalculation requests per entity, keeping the highest vote count, until the
// worker drains them.
type Queue struct {
	pending *xsync.Map[governance.EntityRef, pending]
	signal  chan struct{}

	mu  sync.Mutex
	seq uint64
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{
		pending: xsync.NewMap[governance.EntityRef, pending](),
		signal:  make(chan struct{}, 1),
	}
}

// Enqueue adds reqs and wakes the worker. The ticket resolves when all of reqs are handled.
func (q *Queue) Enqueue(reqs ...governance.RecalculationRequest) *Ticket {
	t := newTicket(len(reqs))
	for _, r := range reqs {
		req := r
		seq := q.nextSeq()
		q.pending.Compute(req.Ref, func(old pending, loaded bool) (pending, xsync.ComputeOp) {
			if !loaded {
				return pending{req: req, tickets: []*Ticket{t}, seq: seq}, xsync.UpdateOp
			}
			next := pending{req: old.req, seq: old.seq}
			if req.OnChainVoteCount > old.req.OnChainVoteCount {
				next.req = req
			}
			next.tickets = make([]*Ticket, 0, len(old.tickets)+1)
			next.tickets = append(next.tickets, old.tickets...)
			next.tickets = append(next.tickets, t)
			return next, xsync.UpdateOp
		})
	}
	if len(reqs) > 0 {
		select {
		case q.signal <- struct{}{}:
		default:
		}
	}
	return t
}

// Len is the number of entities waiting.
func (q *Queue) Len() int { return q.pending.Size() }

// Signal fires after an Enqueue. Several enqueues may collapse into one signal.
func (q *Queue) Signal() <-chan struct{} { return q.signal }

// drain removes and returns everything pending, oldest first.
func (q *Queue) drain() []pending {
	var keys []governance.EntityRef
	q.pending.Range(func(k governance.EntityRef, _ pending) bool {
		keys = append(keys, k)
		return true
	})
	out := make([]pending, 0, len(keys))
	for _, k := range keys {
		if p, ok := q.pending.LoadAndDelete(k); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].seq < out[j].seq })
	return out
}

func (q *Queue) nextSeq() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	return q.seq
}
