package votecalc

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/canopy-network/votecollector/pkg/db/postgres/collector"
	"github.com/canopy-network/votecollector/pkg/gateway"
	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/canopy-network/votecollector/pkg/metrics"
	"go.uber.org/zap"
)

// DefaultPageSize is the transaction stream page size.
const DefaultPageSize = 100

// CursorStore persists the ledger cursor.
type CursorStore interface {
	Cursor(ctx context.Context) (uint64, bool, error)
	BootstrapCursor(ctx context.Context, sv uint64) (uint64, error)
	AdvanceCursor(ctx context.Context, sv uint64) error
	ApplyCursorOverride(ctx context.Context, sv uint64) (bool, error)
}

// Locker runs fn while holding the cluster-wide poll lease.
type Locker interface {
	WithLock(ctx context.Context, fn func(ctx context.Context) error) error
}

// BatchProcessor turns transactions into recalculation requests.
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, txs []gateway.Transaction) ([]governance.RecalculationRequest, error)
}

// Poller runs one poll cycle per trigger: it reads new governance transactions page by page, waits
// for their entities to be recalculated and only then moves the cursor past them.
type Poller struct {
	Logger       *zap.Logger
	Ledger       gateway.Reader
	Cursor       CursorStore
	Lock         Locker
	Events       BatchProcessor
	Queue        *Queue
	Component    string
	PageSize     int
	CycleTimeout time.Duration
	// Override, when set, is applied to the cursor once per distinct value.
	Override *uint64
	Metrics  *metrics.Metrics
}

// Cycle runs one poll cycle. Losing the lock race is not an error.
func (p *Poller) Cycle(ctx context.Context) error {
	started := time.Now()
	if p.CycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.CycleTimeout)
		defer cancel()
	}

	err := p.Lock.WithLock(ctx, p.run)
	switch {
	case errors.Is(err, collector.ErrLockNotAcquired):
		p.Logger.Debug("Poll lock held elsewhere, skipping cycle")
		p.Metrics.PollCycles.WithLabelValues("skipped").Inc()
		return nil
	case err != nil:
		p.Logger.Error("Poll cycle failed", zap.Error(err))
		p.Metrics.PollCycles.WithLabelValues("failed").Inc()
		return err
	}
	p.Metrics.PollCycles.WithLabelValues("success").Inc()
	p.Metrics.PollCycleDuration.Observe(time.Since(started).Seconds())
	return nil
}

func (p *Poller) run(ctx context.Context) error {
	cursor, err := p.loadCursor(ctx)
	if err != nil {
		return err
	}
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	for {
		page, err := p.Ledger.TransactionStream(ctx, gateway.StreamRequest{
			FromStateVersion: cursor,
			Limit:            pageSize,
			AffectedEntity:   p.Component,
		})
		if err != nil {
			return fmt.Errorf("transaction stream from %d: %w", cursor, err)
		}
		if len(page.Items) == 0 {
			return nil
		}

		txs := page.Items
		sort.SliceStable(txs, func(i, j int) bool { return txs[i].StateVersion < txs[j].StateVersion })

		reqs, err := p.Events.ProcessBatch(ctx, txs)
		if err != nil {
			return fmt.Errorf("process page from %d: %w", cursor, err)
		}
		if len(reqs) > 0 {
			if err := p.Queue.Enqueue(reqs...).Wait(ctx); err != nil {
				return fmt.Errorf("calculate page from %d: %w", cursor, err)
			}
		}

		next := txs[len(txs)-1].StateVersion + 1
		if err := p.Cursor.AdvanceCursor(ctx, next); err != nil {
			return err
		}
		p.Metrics.PagesProcessed.Inc()
		p.Metrics.CursorVersion.Set(float64(next))
		p.Logger.Debug("Page processed",
			zap.Uint64("from", cursor),
			zap.Uint64("next", next),
			zap.Int("transactions", len(txs)),
			zap.Int("entities", len(reqs)))
		cursor = next

		if len(txs) < pageSize {
			return nil
		}
	}
}

func (p *Poller) loadCursor(ctx context.Context) (uint64, error) {
	if p.Override != nil {
		if _, err := p.Cursor.ApplyCursorOverride(ctx, *p.Override); err != nil {
			return 0, err
		}
	}
	cursor, ok, err := p.Cursor.Cursor(ctx)
	if err != nil {
		return 0, fmt.Errorf("read cursor: %w", err)
	}
	if ok {
		return cursor, nil
	}
	head, err := p.Ledger.CurrentStateVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("read ledger head: %w", err)
	}
	return p.Cursor.BootstrapCursor(ctx, head)
}
