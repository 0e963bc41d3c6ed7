package governance

import (
	"errors"
	"fmt"
	"time"
)

// ErrEntityNotFound is returned when a temperature check or proposal id has no entry on chain.
var ErrEntityNotFound = errors.New("governance entity not found")

// EntityKind is the closed set of governed item kinds.
type EntityKind uint8

const (
	KindTemperatureCheck EntityKind = iota + 1
	KindProposal
)

// String returns the persisted name of the kind.
func (k EntityKind) String() string {
	switch k {
	case KindTemperatureCheck:
		return "temperature_check"
	case KindProposal:
		return "proposal"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParseEntityKind is the inverse of EntityKind.String.
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "temperature_check":
		return KindTemperatureCheck, nil
	case "proposal":
		return KindProposal, nil
	default:
		return 0, fmt.Errorf("unknown entity kind %q", s)
	}
}

// EntityRef identifies a governed item.
type EntityRef struct {
	Kind EntityKind
	ID   uint64
}

func (r EntityRef) String() string {
	return fmt.Sprintf("%s-%d", r.Kind, r.ID)
}

// VoteOption is one selectable option of an entity.
type VoteOption struct {
	ID    string
	Label string
}

// EntitySummary is the on-chain view of an entity the vote pipeline needs.
type EntitySummary struct {
	Ref       EntityRef
	Title     string
	VoteCount uint64
	Start     time.Time
	VoteStore string
	Options   []VoteOption
}

// Vote is one entry of an entity's vote store. Index is 1-based.
type Vote struct {
	Index   uint64
	Account string
	Options []string
}

// Temperature check choices.
const (
	OptionFor     = "For"
	OptionAgainst = "Against"
)

// RecalculationRequest asks the calculation engine to catch an entity up to OnChainVoteCount.
type RecalculationRequest struct {
	Ref              EntityRef
	VoteStore        string
	OnChainVoteCount uint64
	Start            time.Time
}
