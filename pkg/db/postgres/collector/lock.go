package collector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/canopy-network/votecollector/pkg/db/postgres"
	"go.uber.org/zap"
)

// ErrLockNotAcquired means another instance holds a fresh poll lease.
var ErrLockNotAcquired = errors.New("poll lock not acquired")

// PollLockKey is the config row holding the poll lease.
const PollLockKey = "poll_lock"

// LeaseStore persists leases as config rows holding the acquisition time in unix millis.
type LeaseStore interface {
	// TryAcquireLease writes now under key unless a lease newer than staleBefore is held. A lease
	// stamped exactly at staleBefore counts as stale.
	TryAcquireLease(ctx context.Context, key string, now, staleBefore time.Time) (bool, error)
	// ReleaseLease deletes the lease only if it is still the one stamped acquiredAt.
	ReleaseLease(ctx context.Context, key string, acquiredAt time.Time) error
}

// TryAcquireLease inserts the lease row, or overwrites it only when the holder's timestamp is stale.
func (db *DB) TryAcquireLease(ctx context.Context, key string, now, staleBefore time.Time) (bool, error) {
	query := `
		INSERT INTO config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
		WHERE config.value::BIGINT <= $3
		RETURNING key
	`
	var got string
	err := db.QueryRow(ctx, query, key, strconv.FormatInt(now.UnixMilli(), 10), staleBefore.UnixMilli()).Scan(&got)
	if err != nil {
		if postgres.IsNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("acquire lease %s: %w", key, err)
	}
	return true, nil
}

// ReleaseLease deletes the lease row if it still holds acquiredAt. A lease stolen after going
// stale belongs to its new holder and is left alone.
func (db *DB) ReleaseLease(ctx context.Context, key string, acquiredAt time.Time) error {
	query := `DELETE FROM config WHERE key = $1 AND value = $2`
	if err := db.Exec(ctx, query, key, strconv.FormatInt(acquiredAt.UnixMilli(), 10)); err != nil {
		return fmt.Errorf("release lease %s: %w", key, err)
	}
	return nil
}

// PollLock runs work under a stealable lease so that one instance at a time polls.
type PollLock struct {
	Logger  *zap.Logger
	Store   LeaseStore
	Key     string
	Timeout time.Duration
	Now     func() time.Time
}

// NewPollLock returns a lock on PollLockKey using the wall clock.
func NewPollLock(logger *zap.Logger, store LeaseStore, timeout time.Duration) *PollLock {
	return &PollLock{Logger: logger, Store: store, Key: PollLockKey, Timeout: timeout, Now: time.Now}
}

// WithLock acquires the lease, runs fn and releases the lease on every return path. It returns
// ErrLockNotAcquired without running fn when a fresh lease is held elsewhere.
func (l *PollLock) WithLock(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	now := l.Now()
	ok, err := l.Store.TryAcquireLease(ctx, l.Key, now, now.Add(-l.Timeout))
	if err != nil {
		return err
	}
	if !ok {
		return ErrLockNotAcquired
	}
	l.Logger.Debug("Poll lock acquired", zap.String("key", l.Key))

	defer func() {
		// Release even when ctx is done so the next instance need not wait for staleness.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if relErr := l.Store.ReleaseLease(releaseCtx, l.Key, now); relErr != nil {
			l.Logger.Warn("Failed to release poll lock", zap.String("key", l.Key), zap.Error(relErr))
			if err == nil {
				err = relErr
			}
			return
		}
		l.Logger.Debug("Poll lock released", zap.String("key", l.Key))
	}()

	return fn(ctx)
}
