package collector

import (
	"context"
	"fmt"
	"strconv"

	"github.com/canopy-network/votecollector/pkg/db/postgres"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const (
	cursorKey       = "ledger_state_version"
	lastOverrideKey = "ledger_state_version:last_override"
)

// Cursor returns the stored ledger cursor, or false when none has been written.
func (db *DB) Cursor(ctx context.Context) (uint64, bool, error) {
	return db.readUint(ctx, cursorKey)
}

// BootstrapCursor stores sv unless a cursor already exists, and returns the stored value.
func (db *DB) BootstrapCursor(ctx context.Context, sv uint64) (uint64, error) {
	query := `INSERT INTO config (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`
	if err := db.Exec(ctx, query, cursorKey, strconv.FormatUint(sv, 10)); err != nil {
		return 0, fmt.Errorf("bootstrap cursor: %w", err)
	}
	stored, ok, err := db.Cursor(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("bootstrap cursor: row missing after insert")
	}
	db.Logger.Info("Ledger cursor bootstrapped", zap.Uint64("state_version", stored))
	return stored, nil
}

// AdvanceCursor overwrites the cursor.
func (db *DB) AdvanceCursor(ctx context.Context, sv uint64) error {
	if err := db.upsertConfig(ctx, cursorKey, strconv.FormatUint(sv, 10)); err != nil {
		return fmt.Errorf("advance cursor: %w", err)
	}
	return nil
}

// ApplyCursorOverride sets the cursor to sv once per distinct sv. The cursor and the override
// marker are written together. It reports whether the override was applied.
func (db *DB) ApplyCursorOverride(ctx context.Context, sv uint64) (bool, error) {
	applied := false
	err := db.BeginFunc(ctx, func(tx pgx.Tx) error {
		txCtx := db.WithTx(ctx, tx)
		last, ok, err := db.readUint(txCtx, lastOverrideKey)
		if err != nil {
			return err
		}
		if ok && last == sv {
			return nil
		}
		value := strconv.FormatUint(sv, 10)
		if err := db.upsertConfig(txCtx, cursorKey, value); err != nil {
			return err
		}
		if err := db.upsertConfig(txCtx, lastOverrideKey, value); err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("apply cursor override: %w", err)
	}
	if applied {
		db.Logger.Info("LEDGER_STATE_VERSION override applied", zap.Uint64("state_version", sv))
	}
	return applied, nil
}

func (db *DB) upsertConfig(ctx context.Context, key, value string) error {
	query := `INSERT INTO config (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	return db.Exec(ctx, query, key, value)
}

func (db *DB) readUint(ctx context.Context, key string) (uint64, bool, error) {
	var raw string
	if err := db.QueryRow(ctx, `SELECT value FROM config WHERE key = $1`, key).Scan(&raw); err != nil {
		if postgres.IsNoRows(err) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read config %s: %w", key, err)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("config %s holds %q: %w", key, raw, err)
	}
	return n, true, nil
}
