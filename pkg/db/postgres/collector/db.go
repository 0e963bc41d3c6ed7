// Package collector is the Postgres store behind the vote collector: the ledger cursor, the poll
// lease, and per-entity vote calculation state, results and account votes.
package collector

import (
	"context"
	"fmt"

	"github.com/canopy-network/votecollector/pkg/db/postgres"
	"go.uber.org/zap"
)

// DB is the collector's relational store.
type DB struct {
	postgres.Client
}

// New connects and creates any missing tables.
func New(ctx context.Context, logger *zap.Logger, name string, poolConfig *postgres.PoolConfig) (*DB, error) {
	client, err := postgres.New(ctx, logger.With(
		zap.String("db", name),
		zap.String("component", poolConfig.Component),
	), name, poolConfig)
	if err != nil {
		return nil, err
	}

	db := &DB{Client: client}
	if err := db.InitializeDB(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// InitializeDB creates the collector tables if they do not exist. Result and account vote rows
// reference their state row, so the state table is created first.
func (db *DB) InitializeDB(ctx context.Context) error {
	db.Logger.Info("Initializing collector database", zap.String("database", db.Name))

	steps := []struct {
		name  string
		query string
	}{
		{"config", `
			CREATE TABLE IF NOT EXISTS config (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`},
		{"vote_calculation_state", `
			CREATE TABLE IF NOT EXISTS vote_calculation_state (
				id SERIAL PRIMARY KEY,
				type VARCHAR(50) NOT NULL,
				entity_id BIGINT NOT NULL,
				last_vote_count BIGINT NOT NULL DEFAULT 0,
				UNIQUE (type, entity_id)
			)`},
		{"vote_calculation_results", `
			CREATE TABLE IF NOT EXISTS vote_calculation_results (
				state_id INTEGER NOT NULL REFERENCES vote_calculation_state(id) ON DELETE CASCADE,
				vote VARCHAR(255) NOT NULL,
				vote_power NUMERIC NOT NULL DEFAULT 0,
				PRIMARY KEY (state_id, vote)
			)`},
		{"vote_calculation_account_votes", `
			CREATE TABLE IF NOT EXISTS vote_calculation_account_votes (
				state_id INTEGER NOT NULL REFERENCES vote_calculation_state(id) ON DELETE CASCADE,
				account_address VARCHAR(255) NOT NULL,
				vote VARCHAR(255) NOT NULL,
				vote_power NUMERIC NOT NULL DEFAULT 0,
				PRIMARY KEY (state_id, account_address, vote)
			)`},
	}

	for _, s := range steps {
		db.Logger.Debug("Initialize table", zap.String("table", s.name))
		if err := db.Exec(ctx, s.query); err != nil {
			return fmt.Errorf("create table %s: %w", s.name, err)
		}
	}
	return nil
}
