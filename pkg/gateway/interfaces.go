package gateway

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Reader captures the gateway reads the collector makes. A stateVersion of 0 reads the latest ledger state.
type Reader interface {
	CurrentStateVersion(ctx context.Context) (uint64, error)
	StateVersionAt(ctx context.Context, at time.Time) (uint64, error)
	TransactionStream(ctx context.Context, req StreamRequest) (TransactionPage, error)
	EntityDetails(ctx context.Context, addresses []string, opts DetailsOpts, stateVersion uint64) ([]EntityDetails, error)
	KeyValueStoreData(ctx context.Context, store string, keys []Value, stateVersion uint64) ([]KeyValueEntry, error)
	KeyValueStoreEntries(ctx context.Context, store string, stateVersion uint64) ([]KeyValueEntry, error)
	FungibleBalances(ctx context.Context, address string, stateVersion uint64) ([]FungibleAmount, error)
	NonFungibles(ctx context.Context, address string, resources []string, stateVersion uint64) ([]NonFungibleResource, error)
	Validators(ctx context.Context, stateVersion uint64) ([]Validator, error)
}

// StreamRequest selects one ascending page of committed user transactions.
type StreamRequest struct {
	FromStateVersion uint64
	Limit            int
	AffectedEntity   string
}

type TransactionPage struct {
	Items      []Transaction
	NextCursor string
}

type Transaction struct {
	StateVersion uint64
	IntentHash   string
	Events       []Event
}

// Event is a decoded event emitted during a transaction.
type Event struct {
	Name    string
	Emitter string
	Payload Value
}

type DetailsOpts struct {
	NativeResourceDetails bool
}

type EntityDetails struct {
	Address     string
	Type        string
	TotalSupply decimal.Decimal
	// NativeKind is set for native resources, e.g. "ValidatorLiquidStakeUnit".
	NativeKind string
	// RedemptionValue is the XRD value of one unit of an LSU resource.
	RedemptionValue decimal.Decimal
	State           *Value
}

type KeyValueEntry struct {
	Key   Value
	Value Value
}

type FungibleAmount struct {
	ResourceAddress string
	Amount          decimal.Decimal
}

type NonFungibleResource struct {
	ResourceAddress string
	Items           []NonFungible
}

type NonFungible struct {
	ID     string
	Burned bool
	Data   *Value
}

type Validator struct {
	Address           string
	StakeUnitResource string
}

// Factory produces readers for a given set of endpoints.
type Factory interface {
	NewReader(endpoints []string) Reader
}

type httpFactory struct {
	opts Opts
}

// NewHTTPFactory returns a factory that builds HTTP clients with shared defaults.
func NewHTTPFactory(opts Opts) Factory {
	return &httpFactory{opts: opts}
}

func (f *httpFactory) NewReader(endpoints []string) Reader {
	o := f.opts
	o.Endpoints = endpoints
	return NewHTTPWithOpts(o)
}

var _ Reader = (*HTTPClient)(nil)
