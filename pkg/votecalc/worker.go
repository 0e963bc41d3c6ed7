package votecalc

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/alitto/pond/v2"
	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/canopy-network/votecollector/pkg/metrics"
	"go.uber.org/zap"
)

// Calculator is the engine seen by the worker.
type Calculator interface {
	Calculate(ctx context.Context, req governance.RecalculationRequest) (Outcome, error)
}

// Notifier announces a recalculated entity. Delivery is best-effort.
type Notifier interface {
	VoteUpdated(ctx context.Context, ref governance.EntityRef) error
}

// Worker drains the queue and calculates entities concurrently on Pool.
type Worker struct {
	Logger   *zap.Logger
	Queue    *Queue
	Engine   Calculator
	Pool     pond.Pool
	Notifier Notifier
	Metrics  *metrics.Metrics
}

// Run processes signals until ctx is done. Requests still pending at shutdown fail their tickets
// with the context error.
func (w *Worker) Run(ctx context.Context) {
	w.Logger.Info("Vote calculation worker started")
	for {
		select {
		case <-ctx.Done():
			for _, p := range w.Queue.drain() {
				for _, t := range p.tickets {
					t.resolve(ctx.Err())
				}
			}
			w.Metrics.QueueDepth.Set(0)
			w.Logger.Info("Vote calculation worker stopped")
			return
		case <-w.Queue.Signal():
			w.Process(ctx)
		}
	}
}

// Process calculates everything currently pending and resolves its tickets.
func (w *Worker) Process(ctx context.Context) {
	batch := w.Queue.drain()
	w.Metrics.QueueDepth.Set(float64(w.Queue.Len()))
	if len(batch) == 0 {
		return
	}
	w.Logger.Debug("Processing queued entities", zap.Int("count", len(batch)))

	// Tasks a stopped group never runs are resolved after Wait.
	handled := make([]atomic.Bool, len(batch))
	group := w.Pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for i, p := range batch {
		i, item := i, p
		group.Submit(func() {
			if !handled[i].CompareAndSwap(false, true) {
				return
			}
			if err := groupCtx.Err(); err != nil {
				resolveAll(item.tickets, err)
				return
			}
			out, err := w.Engine.Calculate(groupCtx, item.req)
			if err != nil {
				w.Logger.Error("Vote calculation failed",
					zap.Stringer("entity", item.req.Ref),
					zap.Uint64("on_chain_vote_count", item.req.OnChainVoteCount),
					zap.Error(err))
			} else if out.Applied && w.Notifier != nil {
				if nerr := w.Notifier.VoteUpdated(groupCtx, item.req.Ref); nerr != nil {
					w.Metrics.NotificationFailures.Inc()
				}
			}
			resolveAll(item.tickets, err)
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		w.Logger.Error("Calculation group failed", zap.Error(err))
	}
	for i := range batch {
		if handled[i].CompareAndSwap(false, true) {
			err := ctx.Err()
			if err == nil {
				err = pond.ErrGroupStopped
			}
			resolveAll(batch[i].tickets, err)
		}
	}
}

func resolveAll(tickets []*Ticket, err error) {
	for _, t := range tickets {
		t.resolve(err)
	}
}
