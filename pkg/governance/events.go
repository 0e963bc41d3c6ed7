package governance

import (
	"context"
	"errors"

	"github.com/canopy-network/votecollector/pkg/gateway"
	"go.uber.org/zap"
)

// EventKind is the closed set of governance events the collector reacts to.
type EventKind uint8

const (
	EventUnknown EventKind = iota
	EventTemperatureCheckVoted
	EventProposalVoted
)

// ParseEventKind maps an emitted event name to its kind. Unrecognized names map to EventUnknown.
func ParseEventKind(name string) EventKind {
	switch name {
	case "TemperatureCheckVotedEvent":
		return EventTemperatureCheckVoted
	case "ProposalVotedEvent":
		return EventProposalVoted
	default:
		return EventUnknown
	}
}

// EntityKind returns the kind of entity an event refers to.
func (k EventKind) EntityKind() (EntityKind, bool) {
	switch k {
	case EventTemperatureCheckVoted:
		return KindTemperatureCheck, true
	case EventProposalVoted:
		return KindProposal, true
	default:
		return 0, false
	}
}

// EntityReader resolves an entity's current on-chain summary.
type EntityReader interface {
	Entity(ctx context.Context, ref EntityRef, stateVersion uint64) (EntitySummary, error)
}

// Processor turns batches of committed transactions into recalculation requests.
type Processor struct {
	Logger    *zap.Logger
	Entities  EntityReader
	Component string
}

// NewProcessor builds a processor that only accepts events emitted by component.
func NewProcessor(logger *zap.Logger, entities EntityReader, component string) *Processor {
	return &Processor{Logger: logger, Entities: entities, Component: component}
}

// ProcessBatch scans txs in order and returns one request per affected entity, keeping the one with the
// highest on-chain vote count. Requests are ordered by the entity's first appearance in the batch.
// Events that cannot be decoded are skipped; ledger read failures abort the batch.
func (p *Processor) ProcessBatch(ctx context.Context, txs []gateway.Transaction) ([]RecalculationRequest, error) {
	// Entity state is read at the ledger head, so repeat events in a batch resolve identically.
	summaries := map[EntityRef]EntitySummary{}
	var reqs []RecalculationRequest

	for _, tx := range txs {
		for _, ev := range tx.Events {
			entityKind, ok := ParseEventKind(ev.Name).EntityKind()
			if !ok {
				p.Logger.Debug("Unrecognized governance event",
					zap.String("event", ev.Name),
					zap.Uint64("state_version", tx.StateVersion))
				continue
			}
			if p.Component != "" && ev.Emitter != "" && ev.Emitter != p.Component {
				p.Logger.Debug("Ignoring event from foreign emitter",
					zap.String("event", ev.Name),
					zap.String("emitter", ev.Emitter))
				continue
			}

			id, err := eventEntityID(ev.Payload)
			if err != nil {
				p.Logger.Warn("Skipping undecodable governance event",
					zap.String("event", ev.Name),
					zap.Uint64("state_version", tx.StateVersion),
					zap.Error(err))
				continue
			}
			ref := EntityRef{Kind: entityKind, ID: id}

			summary, cached := summaries[ref]
			if !cached {
				p.Logger.Info("Governance vote event detected",
					zap.String("entity", ref.String()),
					zap.Uint64("state_version", tx.StateVersion))

				summary, err = p.Entities.Entity(ctx, ref, 0)
				if errors.Is(err, ErrEntityNotFound) {
					p.Logger.Warn("Voted entity not found", zap.String("entity", ref.String()))
					continue
				}
				if err != nil {
					return nil, err
				}
				summaries[ref] = summary
			}

			reqs = append(reqs, RecalculationRequest{
				Ref:              ref,
				VoteStore:        summary.VoteStore,
				OnChainVoteCount: summary.VoteCount,
				Start:            summary.Start,
			})
		}
	}

	return CoalesceRequests(reqs), nil
}

// CoalesceRequests keeps, per entity, the request with the highest on-chain vote count. Later requests win
// ties. Output is ordered by each entity's first appearance.
func CoalesceRequests(reqs []RecalculationRequest) []RecalculationRequest {
	latest := make(map[EntityRef]RecalculationRequest, len(reqs))
	var order []EntityRef
	for _, r := range reqs {
		prev, ok := latest[r.Ref]
		if !ok {
			order = append(order, r.Ref)
		}
		if !ok || r.OnChainVoteCount >= prev.OnChainVoteCount {
			latest[r.Ref] = r
		}
	}
	out := make([]RecalculationRequest, 0, len(order))
	for _, ref := range order {
		out = append(out, latest[ref])
	}
	return out
}

func eventEntityID(payload gateway.Value) (uint64, error) {
	if payload.Kind != "Tuple" {
		return 0, errors.New("event payload is not a tuple")
	}
	idField, err := payload.Index(0)
	if err != nil {
		return 0, err
	}
	return idField.Uint64()
}
