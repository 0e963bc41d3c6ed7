package governance

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/canopy-network/votecollector/pkg/gateway"
	"go.uber.org/zap"
)

// Component reads the governance component's state through the gateway.
type Component struct {
	Logger  *zap.Logger
	Reader  gateway.Reader
	Address string
}

// NewComponent returns a reader for the governance component at address.
func NewComponent(logger *zap.Logger, reader gateway.Reader, address string) *Component {
	return &Component{Logger: logger, Reader: reader, Address: address}
}

// Counts are the entity counters and stores of the component.
type Counts struct {
	TemperatureChecks     uint64
	Proposals             uint64
	TemperatureCheckStore string
	ProposalStore         string
}

// Counts reads the component's counters at stateVersion (0 = latest).
func (c *Component) Counts(ctx context.Context, stateVersion uint64) (Counts, error) {
	state, err := c.state(ctx, stateVersion)
	if err != nil {
		return Counts{}, err
	}

	var out Counts
	if out.TemperatureChecks, err = uintField(state, "temperature_check_count"); err != nil {
		return Counts{}, err
	}
	if out.Proposals, err = uintField(state, "proposal_count"); err != nil {
		return Counts{}, err
	}
	if out.TemperatureCheckStore, err = addressField(state, "temperature_checks"); err != nil {
		return Counts{}, err
	}
	if out.ProposalStore, err = addressField(state, "proposals"); err != nil {
		return Counts{}, err
	}
	return out, nil
}

// TemperatureCheck reads one temperature check.
func (c *Component) TemperatureCheck(ctx context.Context, id uint64, stateVersion uint64) (EntitySummary, error) {
	return c.Entity(ctx, EntityRef{Kind: KindTemperatureCheck, ID: id}, stateVersion)
}

// Proposal reads one proposal.
func (c *Component) Proposal(ctx context.Context, id uint64, stateVersion uint64) (EntitySummary, error) {
	return c.Entity(ctx, EntityRef{Kind: KindProposal, ID: id}, stateVersion)
}

// Entity reads the summary of ref at stateVersion (0 = latest).
func (c *Component) Entity(ctx context.Context, ref EntityRef, stateVersion uint64) (EntitySummary, error) {
	counts, err := c.Counts(ctx, stateVersion)
	if err != nil {
		return EntitySummary{}, err
	}

	store := counts.TemperatureCheckStore
	if ref.Kind == KindProposal {
		store = counts.ProposalStore
	}

	entries, err := c.Reader.KeyValueStoreData(ctx, store, []gateway.Value{gateway.U64Key(ref.ID)}, stateVersion)
	if err != nil {
		return EntitySummary{}, fmt.Errorf("read %s: %w", ref, err)
	}
	if len(entries) == 0 {
		return EntitySummary{}, fmt.Errorf("%s: %w", ref, ErrEntityNotFound)
	}

	summary, err := parseEntity(ref, entries[0].Value)
	if err != nil {
		return EntitySummary{}, fmt.Errorf("parse %s: %w", ref, err)
	}
	return summary, nil
}

// VotesByIndex reads votes from..to (1-based, inclusive) out of an entity's vote store. Vote ids on chain are
// 0-based, so index i is stored under key i-1. Indexes missing from the store are skipped.
func (c *Component) VotesByIndex(ctx context.Context, kind EntityKind, store string, from, to uint64) ([]Vote, error) {
	if from == 0 {
		from = 1
	}
	if to < from {
		return nil, nil
	}

	keys := make([]gateway.Value, 0, to-from+1)
	for i := from; i <= to; i++ {
		keys = append(keys, gateway.U64Key(i-1))
	}

	entries, err := c.Reader.KeyValueStoreData(ctx, store, keys, 0)
	if err != nil {
		return nil, fmt.Errorf("read votes %d..%d of %s: %w", from, to, store, err)
	}

	votes := make([]Vote, 0, len(entries))
	for _, e := range entries {
		key, err := e.Key.Uint64()
		if err != nil {
			return nil, fmt.Errorf("vote key: %w", err)
		}
		v, err := parseVote(kind, e.Value)
		if err != nil {
			return nil, fmt.Errorf("vote %d: %w", key, err)
		}
		v.Index = key + 1
		votes = append(votes, v)
	}
	if uint64(len(votes)) != to-from+1 {
		c.Logger.Warn("Vote store returned fewer votes than requested",
			zap.String("store", store),
			zap.Uint64("from", from),
			zap.Uint64("to", to),
			zap.Int("returned", len(votes)))
	}
	return sortByIndex(votes), nil
}

func (c *Component) state(ctx context.Context, stateVersion uint64) (gateway.Value, error) {
	details, err := c.Reader.EntityDetails(ctx, []string{c.Address}, gateway.DetailsOpts{}, stateVersion)
	if err != nil {
		return gateway.Value{}, fmt.Errorf("governance component state: %w", err)
	}
	if len(details) == 0 || details[0].State == nil {
		return gateway.Value{}, errors.New("governance component state not found")
	}
	return *details[0].State, nil
}

// sortByIndex orders votes by index; the gateway does not promise request order.
func sortByIndex(votes []Vote) []Vote {
	sort.Slice(votes, func(i, j int) bool { return votes[i].Index < votes[j].Index })
	return votes
}

func parseEntity(ref EntityRef, v gateway.Value) (EntitySummary, error) {
	out := EntitySummary{Ref: ref}
	var err error

	if title, ok := v.Field("title"); ok {
		out.Title, _ = title.Text()
	}
	if out.VoteCount, err = uintField(v, "vote_count"); err != nil {
		return out, err
	}
	if out.VoteStore, err = addressField(v, "votes"); err != nil {
		return out, err
	}
	start, err := v.MustField("start")
	if err != nil {
		return out, err
	}
	if out.Start, err = parseInstant(start); err != nil {
		return out, err
	}

	switch ref.Kind {
	case KindTemperatureCheck:
		out.Options = []VoteOption{{ID: OptionFor, Label: OptionFor}, {ID: OptionAgainst, Label: OptionAgainst}}
	case KindProposal:
		if out.Options, err = parseOptions(v); err != nil {
			return out, err
		}
	}
	return out, nil
}

// parseInstant accepts either a bare I64 of seconds or an Instant tuple wrapping one.
func parseInstant(v gateway.Value) (time.Time, error) {
	if v.Kind == "Tuple" {
		inner, err := v.Index(0)
		if err != nil {
			return time.Time{}, err
		}
		v = inner
	}
	secs, err := v.Int64()
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(secs, 0).UTC(), nil
}

func parseOptions(v gateway.Value) ([]VoteOption, error) {
	raw, ok := v.Field("vote_options")
	if !ok {
		return nil, nil
	}
	out := make([]VoteOption, 0, len(raw.Elements))
	for _, el := range raw.Elements {
		idField, err := el.MustField("id")
		if err != nil {
			return nil, err
		}
		id, err := optionID(idField)
		if err != nil {
			return nil, err
		}
		opt := VoteOption{ID: id}
		if label, ok := el.Field("label"); ok {
			opt.Label, _ = label.Text()
		}
		out = append(out, opt)
	}
	return out, nil
}

// optionID reads a proposal option id, which is a U32 optionally wrapped in a single-field tuple.
func optionID(v gateway.Value) (string, error) {
	if v.Kind == "Tuple" {
		inner, err := v.Index(0)
		if err != nil {
			return "", err
		}
		v = inner
	}
	n, err := v.Uint64()
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(n, 10), nil
}

func parseVote(kind EntityKind, v gateway.Value) (Vote, error) {
	voterField, ok := v.Field("voter")
	if !ok {
		f, err := v.Index(0)
		if err != nil {
			return Vote{}, err
		}
		voterField = f
	}
	account, err := voterField.Address()
	if err != nil {
		return Vote{}, err
	}

	choice, ok := v.Field("vote")
	if !ok {
		if choice, ok = v.Field("options"); !ok {
			if choice, err = v.Index(1); err != nil {
				return Vote{}, err
			}
		}
	}

	switch kind {
	case KindTemperatureCheck:
		opt, err := temperatureCheckChoice(choice)
		if err != nil {
			return Vote{}, err
		}
		return Vote{Account: account, Options: []string{opt}}, nil
	case KindProposal:
		opts := make([]string, 0, len(choice.Elements))
		for _, el := range choice.Elements {
			id, err := optionID(el)
			if err != nil {
				return Vote{}, err
			}
			opts = append(opts, id)
		}
		return Vote{Account: account, Options: opts}, nil
	default:
		return Vote{}, fmt.Errorf("unsupported entity kind %s", kind)
	}
}

func temperatureCheckChoice(v gateway.Value) (string, error) {
	variant, err := v.Variant()
	if err != nil {
		return "", err
	}
	switch variant {
	case OptionFor, "0":
		return OptionFor, nil
	case OptionAgainst, "1":
		return OptionAgainst, nil
	default:
		return "", fmt.Errorf("unknown temperature check vote %q", variant)
	}
}

func uintField(v gateway.Value, name string) (uint64, error) {
	f, err := v.MustField(name)
	if err != nil {
		return 0, err
	}
	return f.Uint64()
}

func addressField(v gateway.Value, name string) (string, error) {
	f, err := v.MustField(name)
	if err != nil {
		return "", err
	}
	return f.Address()
}
