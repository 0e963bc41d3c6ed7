package collector

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/canopy-network/votecollector/pkg/db/postgres"
	"github.com/canopy-network/votecollector/pkg/governance"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrStateNotFound means an entity has no vote_calculation_state row.
var ErrStateNotFound = errors.New("vote calculation state not found")

// ErrWatermarkMoved means another calculation committed for the entity after this one read its
// state. Nothing was written.
var ErrWatermarkMoved = errors.New("vote calculation watermark moved")

// DefaultAccountVotesLimit is the page size of GetAccountVotesByEntity when none is given.
const DefaultAccountVotesLimit = 500

// State is an entity's calculation watermark.
type State struct {
	ID            int64
	Ref           governance.EntityRef
	LastVoteCount uint64
}

// Tally is the aggregated vote power behind one option.
type Tally struct {
	Option string
	Power  decimal.Decimal
}

// AccountVote is one option chosen by one account, weighted by its vote power.
type AccountVote struct {
	Account string
	Option  string
	Power   decimal.Decimal
}

// Commit is everything one calculation writes. Removals are the stored rows of revoting accounts;
// they are deleted and subtracted from the results before Results are added. PrevVoteCount is the
// watermark the calculation started from; the commit applies only while it is still current.
type Commit struct {
	StateID       int64
	PrevVoteCount uint64
	LastVoteCount uint64
	Results       []Tally
	AccountVotes  []AccountVote
	Removals      []AccountVote
}

// GetOrCreateState returns the entity's state, creating it at zero on first sight.
func (db *DB) GetOrCreateState(ctx context.Context, ref governance.EntityRef) (State, error) {
	query := `
		INSERT INTO vote_calculation_state (type, entity_id)
		VALUES ($1, $2)
		ON CONFLICT (type, entity_id) DO UPDATE SET last_vote_count = vote_calculation_state.last_vote_count
		RETURNING id, last_vote_count
	`
	st := State{Ref: ref}
	if err := db.QueryRow(ctx, query, ref.Kind.String(), ref.ID).Scan(&st.ID, &st.LastVoteCount); err != nil {
		if postgres.IsNoRows(err) {
			return st, fmt.Errorf("%w: %s", ErrStateNotFound, ref)
		}
		return st, fmt.Errorf("upsert state %s: %w", ref, err)
	}
	return st, nil
}

// GetVoteCalculationState returns the entity's state, or false when it has never been calculated.
func (db *DB) GetVoteCalculationState(ctx context.Context, ref governance.EntityRef) (State, bool, error) {
	query := `SELECT id, last_vote_count FROM vote_calculation_state WHERE type = $1 AND entity_id = $2`
	st := State{Ref: ref}
	if err := db.QueryRow(ctx, query, ref.Kind.String(), ref.ID).Scan(&st.ID, &st.LastVoteCount); err != nil {
		if postgres.IsNoRows(err) {
			return st, false, nil
		}
		return st, false, fmt.Errorf("read state %s: %w", ref, err)
	}
	return st, true, nil
}

// LastVoteCounts returns every entity's watermark.
func (db *DB) LastVoteCounts(ctx context.Context) (map[governance.EntityRef]uint64, error) {
	rows, err := db.GetExecutor(ctx).Query(ctx, `SELECT type, entity_id, last_vote_count FROM vote_calculation_state`)
	if err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()

	out := map[governance.EntityRef]uint64{}
	for rows.Next() {
		var kind string
		var id, count uint64
		if err := rows.Scan(&kind, &id, &count); err != nil {
			return nil, err
		}
		k, err := governance.ParseEntityKind(kind)
		if err != nil {
			continue
		}
		out[governance.EntityRef{Kind: k, ID: id}] = count
	}
	return out, rows.Err()
}

// AccountVotesByAddresses returns the stored votes of the given accounts.
func (db *DB) AccountVotesByAddresses(ctx context.Context, stateID int64, accounts []string) ([]AccountVote, error) {
	if len(accounts) == 0 {
		return nil, nil
	}
	query := `
		SELECT account_address, vote, vote_power::TEXT
		FROM vote_calculation_account_votes
		WHERE state_id = $1 AND account_address = ANY($2)
	`
	rows, err := db.GetExecutor(ctx).Query(ctx, query, stateID, accounts)
	if err != nil {
		return nil, fmt.Errorf("read account votes: %w", err)
	}
	return collectAccountVotes(rows)
}

// CommitVotes applies a calculation in one transaction. The watermark is compared and set first,
// which also locks the state row, so concurrent commits for one entity serialize and only the one
// that still sees its starting watermark writes anything.
func (db *DB) CommitVotes(ctx context.Context, c Commit) error {
	return db.BeginFunc(ctx, func(tx pgx.Tx) error {
		steps := []struct {
			name string
			fn   func(context.Context, postgres.Executor, Commit) error
		}{
			{"advance last vote count", advanceLastVoteCount},
			{"delete revoted account votes", deleteAccountVotes},
			{"subtract revoted power", subtractResults},
			{"upsert account votes", upsertAccountVotes},
			{"add results", addResults},
		}
		for _, s := range steps {
			if err := s.fn(ctx, tx, c); err != nil {
				if errors.Is(err, ErrWatermarkMoved) {
					return err
				}
				return fmt.Errorf("%s: %w", s.name, err)
			}
		}
		return nil
	})
}

func deleteAccountVotes(ctx context.Context, exec postgres.Executor, c Commit) error {
	if len(c.Removals) == 0 {
		return nil
	}
	seen := map[string]bool{}
	var accounts []string
	for _, r := range c.Removals {
		if !seen[r.Account] {
			seen[r.Account] = true
			accounts = append(accounts, r.Account)
		}
	}
	_, err := exec.Exec(ctx,
		`DELETE FROM vote_calculation_account_votes WHERE state_id = $1 AND account_address = ANY($2)`,
		c.StateID, accounts)
	return err
}

func subtractResults(ctx context.Context, exec postgres.Executor, c Commit) error {
	batch := &pgx.Batch{}
	for _, t := range SumByOption(c.Removals) {
		batch.Queue(`
			UPDATE vote_calculation_results
			SET vote_power = vote_power - $3::NUMERIC
			WHERE state_id = $1 AND vote = $2`,
			c.StateID, t.Option, t.Power.String())
	}
	return postgres.ExecuteBatch(ctx, exec, batch)
}

func upsertAccountVotes(ctx context.Context, exec postgres.Executor, c Commit) error {
	batch := &pgx.Batch{}
	for _, v := range c.AccountVotes {
		batch.Queue(`
			INSERT INTO vote_calculation_account_votes (state_id, account_address, vote, vote_power)
			VALUES ($1, $2, $3, $4::NUMERIC)
			ON CONFLICT (state_id, account_address, vote) DO UPDATE SET vote_power = EXCLUDED.vote_power`,
			c.StateID, v.Account, v.Option, v.Power.String())
	}
	return postgres.ExecuteBatch(ctx, exec, batch)
}

func addResults(ctx context.Context, exec postgres.Executor, c Commit) error {
	batch := &pgx.Batch{}
	for _, t := range c.Results {
		batch.Queue(`
			INSERT INTO vote_calculation_results (state_id, vote, vote_power)
			VALUES ($1, $2, $3::NUMERIC)
			ON CONFLICT (state_id, vote) DO UPDATE
			SET vote_power = vote_calculation_results.vote_power + EXCLUDED.vote_power`,
			c.StateID, t.Option, t.Power.String())
	}
	return postgres.ExecuteBatch(ctx, exec, batch)
}

func advanceLastVoteCount(ctx context.Context, exec postgres.Executor, c Commit) error {
	if c.LastVoteCount <= c.PrevVoteCount {
		return fmt.Errorf("%w: %d does not advance %d", ErrWatermarkMoved, c.LastVoteCount, c.PrevVoteCount)
	}
	tag, err := exec.Exec(ctx, `
		UPDATE vote_calculation_state
		SET last_vote_count = $2
		WHERE id = $1 AND last_vote_count = $3`,
		c.StateID, c.LastVoteCount, c.PrevVoteCount)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var current uint64
	err = exec.QueryRow(ctx, `SELECT last_vote_count FROM vote_calculation_state WHERE id = $1`, c.StateID).Scan(&current)
	if postgres.IsNoRows(err) {
		return fmt.Errorf("%w: id %d", ErrStateNotFound, c.StateID)
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: id %d expected %d, found %d", ErrWatermarkMoved, c.StateID, c.PrevVoteCount, current)
}

// GetResultsByEntity returns the entity's tallies, highest power first.
func (db *DB) GetResultsByEntity(ctx context.Context, ref governance.EntityRef) ([]Tally, error) {
	query := `
		SELECT r.vote, r.vote_power::TEXT
		FROM vote_calculation_results r
		JOIN vote_calculation_state s ON s.id = r.state_id
		WHERE s.type = $1 AND s.entity_id = $2
		ORDER BY r.vote_power DESC, r.vote
	`
	rows, err := db.GetExecutor(ctx).Query(ctx, query, ref.Kind.String(), ref.ID)
	if err != nil {
		return nil, fmt.Errorf("read results %s: %w", ref, err)
	}
	defer rows.Close()

	var out []Tally
	for rows.Next() {
		var t Tally
		var power string
		if err := rows.Scan(&t.Option, &power); err != nil {
			return nil, err
		}
		if t.Power, err = decimal.NewFromString(power); err != nil {
			return nil, fmt.Errorf("vote power %q: %w", power, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetAccountVotesByEntity returns one page of the entity's account votes, highest power first.
// A non-positive limit means DefaultAccountVotesLimit.
func (db *DB) GetAccountVotesByEntity(ctx context.Context, ref governance.EntityRef, limit, offset int) ([]AccountVote, error) {
	if limit <= 0 {
		limit = DefaultAccountVotesLimit
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT a.account_address, a.vote, a.vote_power::TEXT
		FROM vote_calculation_account_votes a
		JOIN vote_calculation_state s ON s.id = a.state_id
		WHERE s.type = $1 AND s.entity_id = $2
		ORDER BY a.vote_power DESC, a.account_address, a.vote
		LIMIT $3 OFFSET $4
	`
	rows, err := db.GetExecutor(ctx).Query(ctx, query, ref.Kind.String(), ref.ID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("read account votes %s: %w", ref, err)
	}
	return collectAccountVotes(rows)
}

func collectAccountVotes(rows pgx.Rows) ([]AccountVote, error) {
	defer rows.Close()
	var out []AccountVote
	for rows.Next() {
		var v AccountVote
		var power string
		if err := rows.Scan(&v.Account, &v.Option, &power); err != nil {
			return nil, err
		}
		p, err := decimal.NewFromString(power)
		if err != nil {
			return nil, fmt.Errorf("vote power %q: %w", power, err)
		}
		v.Power = p
		out = append(out, v)
	}
	return out, rows.Err()
}

// SumByOption totals vote power per option, ordered by option.
func SumByOption(votes []AccountVote) []Tally {
	sums := map[string]decimal.Decimal{}
	for _, v := range votes {
		sums[v.Option] = sums[v.Option].Add(v.Power)
	}
	out := make([]Tally, 0, len(sums))
	for opt, p := range sums {
		out = append(out, Tally{Option: opt, Power: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Option < out[j].Option })
	return out
}
