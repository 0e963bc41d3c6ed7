package votepower

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/canopy-network/votecollector/pkg/dex"
)

// Source is a non-DEX vote power source that an epoch can switch on.
type Source string

const (
	SourceXRD   Source = "xrd"
	SourceLSU   Source = "lsu"
	SourceLSULP Source = "lsulp"
)

// Epoch is the set of sources and pools that count toward vote power for entities starting at or
// after EffectiveFrom.
type Epoch struct {
	EffectiveFrom time.Time           `json:"effectiveFrom"`
	Sources       []Source            `json:"sources"`
	PoolUnit      []dex.PoolUnitPool  `json:"poolUnitPools,omitempty"`
	PrecisionV1   []dex.PrecisionPool `json:"precisionPoolsV1,omitempty"`
	PrecisionV2   []dex.PrecisionPool `json:"precisionPoolsV2,omitempty"`
	Shape         []dex.ShapePool     `json:"shapePools,omitempty"`
}

// Has reports whether s is enabled.
func (e Epoch) Has(s Source) bool {
	for _, x := range e.Sources {
		if x == s {
			return true
		}
	}
	return false
}

// Precision returns V1 and V2 pools together, V1 tagged with its version.
func (e Epoch) Precision() []dex.PrecisionPool {
	out := make([]dex.PrecisionPool, 0, len(e.PrecisionV1)+len(e.PrecisionV2))
	for _, p := range e.PrecisionV1 {
		if p.Version == "" {
			p.Version = "V1"
		}
		out = append(out, p)
	}
	for _, p := range e.PrecisionV2 {
		if p.Version == "" {
			p.Version = "V2"
		}
		out = append(out, p)
	}
	return out
}

// NFTResources lists every receipt resource an account snapshot must read.
func (e Epoch) NFTResources() []string {
	var out []string
	for _, p := range e.Precision() {
		out = append(out, p.LPResource)
	}
	for _, p := range e.Shape {
		out = append(out, p.LiquidityReceipt)
	}
	return out
}

// Catalog is an immutable newest-first list of epochs.
type Catalog struct {
	epochs []Epoch
}

// NewCatalog sorts epochs newest first. At least one epoch is required.
func NewCatalog(epochs ...Epoch) (Catalog, error) {
	if len(epochs) == 0 {
		return Catalog{}, fmt.Errorf("vote power catalog has no epochs")
	}
	sorted := append([]Epoch(nil), epochs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EffectiveFrom.After(sorted[j].EffectiveFrom)
	})
	return Catalog{epochs: sorted}, nil
}

// At returns the newest epoch effective at start, or the oldest epoch when none is.
func (c Catalog) At(start time.Time) Epoch {
	for _, e := range c.epochs {
		if !e.EffectiveFrom.After(start) {
			return e
		}
	}
	return c.epochs[len(c.epochs)-1]
}

// Epochs returns a copy of the epochs, newest first.
func (c Catalog) Epochs() []Epoch {
	return append([]Epoch(nil), c.epochs...)
}

// DefaultCatalog is the built-in mainnet configuration.
func DefaultCatalog() Catalog {
	c, _ := NewCatalog(Epoch{
		EffectiveFrom: time.Unix(0, 0).UTC(),
		Sources:       []Source{SourceXRD, SourceLSU, SourceLSULP},
		PoolUnit:      mainnetPoolUnits,
		PrecisionV1:   mainnetPrecisionV1,
		PrecisionV2:   mainnetPrecisionV2,
		Shape:         mainnetShapePools,
	})
	return c
}

// LoadCatalog reads a JSON array of epochs from path.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read vote power config: %w", err)
	}
	var epochs []Epoch
	if err := json.Unmarshal(raw, &epochs); err != nil {
		return Catalog{}, fmt.Errorf("parse vote power config %s: %w", path, err)
	}
	return NewCatalog(epochs...)
}
