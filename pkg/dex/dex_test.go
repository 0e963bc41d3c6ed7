package dex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/canopy-network/votecollector/pkg/fixedpoint"
	"github.com/canopy-network/votecollector/pkg/gateway"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const (
	xrd   = "resource_xrd"
	lsulp = "resource_lsulp"
	lsuA  = "resource_lsu_a"
	other = "resource_other"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func scalar(kind, name, value string) gateway.Value {
	return gateway.Value{Kind: kind, FieldName: name, Raw: json.RawMessage(strconv.Quote(value))}
}

func testFilter() TokenFilter {
	return TokenFilter{
		XRD:       xrd,
		LSULP:     lsulp,
		LSULPRate: d("1.5"),
		LSURates:  map[string]decimal.Decimal{lsuA: d("1.1")},
	}
}

func TestTokenFilter(t *testing.T) {
	f := testFilter()
	tests := []struct {
		name     string
		resource string
		kind     TokenKind
		want     string
	}{
		{"xrd passes through", xrd, TokenXRD, "10"},
		{"lsulp uses pool rate", lsulp, TokenLSULP, "15"},
		{"lsu uses redemption value", lsuA, TokenLSU, "11"},
		{"anything else is worthless", other, TokenOther, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, f.Classify(tt.resource))
			assert.True(t, d(tt.want).Equal(f.ToXRD(tt.resource, d("10"))), f.ToXRD(tt.resource, d("10")).String())
		})
	}
}

func TestPoolUnitShare_RoundTrip(t *testing.T) {
	data := NewPoolUnitData(PoolUnitPool{Name: "X/Y", PoolAddress: "pool_xy", LPResource: "resource_lp"}, d("100"), []gateway.FungibleAmount{
		{ResourceAddress: "resource_x", Amount: d("50")},
		{ResourceAddress: "resource_y", Amount: d("50")},
	})

	share := data.Share(d("10"))

	require.Len(t, share, 2)
	assert.True(t, d("5").Equal(share[0].Amount))
	assert.True(t, d("5").Equal(share[1].Amount))
}

func TestPoolUnitData_ZeroSupply(t *testing.T) {
	data := NewPoolUnitData(PoolUnitPool{}, decimal.Zero, []gateway.FungibleAmount{{ResourceAddress: xrd, Amount: d("50")}})

	assert.True(t, data.Share(d("10"))[0].Amount.IsZero())
}

type poolUnitReader struct {
	gateway.Reader
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (r *poolUnitReader) EntityDetails(_ context.Context, addresses []string, _ gateway.DetailsOpts, _ uint64) ([]gateway.EntityDetails, error) {
	out := make([]gateway.EntityDetails, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, gateway.EntityDetails{Address: a, Type: "FungibleResource", TotalSupply: d("100")})
	}
	return out, nil
}

func (r *poolUnitReader) FungibleBalances(_ context.Context, address string, _ uint64) ([]gateway.FungibleAmount, error) {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(20 * time.Millisecond)
	if address == "pool_broken" {
		return nil, errors.New("gateway timeout")
	}
	return []gateway.FungibleAmount{{ResourceAddress: xrd, Amount: d("50")}}, nil
}

func TestFetchPoolUnitData_Concurrent(t *testing.T) {
	var pools []PoolUnitPool
	for n := 0; n < 6; n++ {
		pools = append(pools, PoolUnitPool{Name: fmt.Sprintf("pool %d", n), PoolAddress: fmt.Sprintf("pool_%d", n), LPResource: fmt.Sprintf("resource_lp_%d", n)})
	}
	pools[2].PoolAddress = "pool_broken"
	workers := pond.NewPool(4)
	t.Cleanup(workers.StopAndWait)
	reader := &poolUnitReader{}

	data, err := FetchPoolUnitData(context.Background(), zaptest.NewLogger(t), reader, workers, pools, 10)
	require.NoError(t, err)

	require.Len(t, data, 5)
	for n, want := range []string{"pool_0", "pool_1", "pool_3", "pool_4", "pool_5"} {
		assert.Equal(t, want, data[n].Pool.PoolAddress)
		assert.True(t, d("0.5").Equal(data[n].Resources[0].UnitValue))
	}
	assert.Greater(t, reader.peak.Load(), int32(1))
}

func TestValuePoolUnits(t *testing.T) {
	pool := PoolUnitPool{Name: "Basic: LSULP/XRD", PoolAddress: "pool_a", LPResource: "resource_lp_a"}
	data := []PoolUnitData{NewPoolUnitData(pool, d("100"), []gateway.FungibleAmount{
		{ResourceAddress: xrd, Amount: d("200")},
		{ResourceAddress: lsulp, Amount: d("100")},
		{ResourceAddress: other, Amount: d("1000")},
	})}
	holdings := NewHoldings()
	holdings.SetFungibles("account_a", []gateway.FungibleAmount{{ResourceAddress: "resource_lp_a", Amount: d("10")}})
	holdings.SetFungibles("account_b", []gateway.FungibleAmount{{ResourceAddress: xrd, Amount: d("10")}})

	res := ValuePoolUnits(data, holdings, []string{"account_a", "account_b"}, testFilter())

	// 10 LP = 20 XRD + 10 LSULP (x1.5) + worthless tokens.
	assert.True(t, d("35").Equal(res.Total("account_a")), res.Total("account_a").String())
	require.Len(t, res.Breakdown["account_a"], 1)
	assert.Equal(t, PoolSimple, res.Breakdown["account_a"][0].PoolKind)
	assert.Equal(t, "pool_a", res.Breakdown["account_a"][0].Component)
	_, ok := res.Totals["account_b"]
	assert.False(t, ok)
}

func precisionReceipt(liquidity string, left, right int64) *gateway.Value {
	return &gateway.Value{Kind: "Tuple", Fields: []gateway.Value{
		scalar("Decimal", "liquidity", liquidity),
		scalar("I32", "left_bound", strconv.FormatInt(left, 10)),
		scalar("I32", "right_bound", strconv.FormatInt(right, 10)),
	}}
}

func TestValuePrecision(t *testing.T) {
	pool := PrecisionPool{Name: "xUSDC/XRD", Version: "V1", Component: "component_p", LPResource: "resource_receipt", TokenX: other, TokenY: xrd, DivisibilityX: 6, DivisibilityY: 18}
	// Price above the whole range: the position is entirely token y (XRD).
	states := map[string]PrecisionState{"resource_receipt": {Pool: pool, PriceSqrt: d("2")}}
	holdings := NewHoldings()
	holdings.NonFungibles["account_a"] = []gateway.NonFungibleResource{{
		ResourceAddress: "resource_receipt",
		Items: []gateway.NonFungible{
			{ID: "#1#", Data: precisionReceipt("100", 0, 0)},
			{ID: "#2#", Data: precisionReceipt("0", -10, 10)},
			{ID: "#3#", Burned: true, Data: precisionReceipt("100", -10, 10)},
			{ID: "#4#", Data: precisionReceipt("1000", -100, 100)},
		},
	}}

	res := ValuePrecision(zaptest.NewLogger(t), states, holdings, testFilter())

	x, y := states["resource_receipt"].Amounts(LiquidityPosition{Liquidity: d("1000"), LeftBound: -100, RightBound: 100})
	assert.True(t, x.IsZero())
	assert.True(t, y.IsPositive())
	assert.True(t, y.Equal(res.Total("account_a")))
	require.Len(t, res.Breakdown["account_a"], 1)
	assert.Equal(t, "Ociswap Precision V1: xUSDC/XRD", res.Breakdown["account_a"][0].PoolName)
}

func TestParseLiquidityPosition_MissingField(t *testing.T) {
	_, err := ParseLiquidityPosition(gateway.Value{Kind: "Tuple", Fields: []gateway.Value{scalar("Decimal", "liquidity", "1")}})
	assert.Error(t, err)
}

func i(s string) fixedpoint.I192 { return fixedpoint.MustParse(s) }

func testShapeState() ShapeState {
	return ShapeState{
		Pool:             ShapePool{Name: "LSULP/XRD", Component: "component_s", TokenX: lsulp, TokenY: xrd, LiquidityReceipt: "resource_shape"},
		HasCurrentTick:   true,
		CurrentTick:      100,
		ActiveX:          i("40"),
		ActiveY:          i("60"),
		ActiveTotalClaim: i("10"),
		Bins: map[int64]Bin{
			90:  {Amount: i("30"), TotalClaim: i("3")},
			110: {Amount: i("9"), TotalClaim: i("9")},
		},
	}
}

func TestShapeState_Resolve(t *testing.T) {
	s := testShapeState()

	x, y := s.Resolve(map[int64]fixedpoint.I192{
		90:  i("1"), // 1/3 of 30 y
		100: i("5"), // half of the active bin
		110: i("3"), // 3/9 of 9 x
		120: i("7"), // no such bin
	})

	// 1/3 truncates to 0.333333333333333333, times 30 = 9.99999999999999999.
	assert.Equal(t, "39.999999999999999990", y.String())
	assert.Equal(t, "22.999999999999999997", x.String())
}

func TestShapeState_NoCurrentTick(t *testing.T) {
	s := testShapeState()
	s.HasCurrentTick = false

	x, y := s.Resolve(map[int64]fixedpoint.I192{100: i("5")})

	assert.True(t, x.IsZero())
	assert.True(t, y.IsZero())
}

func TestShapeState_EmptyActiveClaimIsZero(t *testing.T) {
	s := testShapeState()
	s.ActiveTotalClaim = fixedpoint.Zero()

	x, y := s.Resolve(map[int64]fixedpoint.I192{100: i("5")})

	assert.True(t, x.IsZero())
	assert.True(t, y.IsZero())
}

func TestParseShapeState(t *testing.T) {
	state := gateway.Value{Kind: "Tuple", Fields: []gateway.Value{
		scalar("U32", "bin_span", "50"),
		{Kind: "Tuple", FieldName: "tick_index", Fields: []gateway.Value{
			scalar("Own", "kvs", "internal_keyvaluestore_ticks"),
			{Kind: "Enum", FieldName: "current", VariantID: "1", VariantName: "Some", Fields: []gateway.Value{
				{Kind: "Tuple", Fields: []gateway.Value{scalar("U32", "", "27000")}},
			}},
		}},
		scalar("Own", "bin_map", "internal_keyvaluestore_bins"),
		scalar("Decimal", "active_x", "1.5"),
		scalar("Decimal", "active_y", "2.5"),
		scalar("Decimal", "active_total_claim", "4"),
	}}

	s, binMap, err := ParseShapeState(ShapePool{Name: "p"}, state)

	require.NoError(t, err)
	assert.Equal(t, "internal_keyvaluestore_bins", binMap)
	assert.True(t, s.HasCurrentTick)
	assert.Equal(t, int64(27000), s.CurrentTick)
	assert.Equal(t, int64(50), s.BinSpan)
	assert.True(t, i("2.5").Equal(s.ActiveY))
}

func TestParseBinEntryAndClaims(t *testing.T) {
	tick, bin, err := ParseBinEntry(gateway.KeyValueEntry{
		Key:   gateway.Value{Kind: "Tuple", Fields: []gateway.Value{scalar("U32", "", "26950")}},
		Value: gateway.Value{Kind: "Tuple", Fields: []gateway.Value{scalar("Decimal", "amount", "12"), scalar("Decimal", "total_claim", "3")}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(26950), tick)
	assert.True(t, i("12").Equal(bin.Amount))

	claims, err := ParseLiquidityClaims(gateway.Value{Kind: "Tuple", Fields: []gateway.Value{{
		Kind:      "Map",
		FieldName: "liquidity_claims",
		Entries: []gateway.MapEntry{
			{Key: scalar("U32", "", "26950"), Value: scalar("Decimal", "", "1.25")},
		},
	}}})
	require.NoError(t, err)
	assert.True(t, i("1.25").Equal(claims[26950]))
}

func TestValueShape(t *testing.T) {
	states := map[string]ShapeState{"resource_shape": testShapeState()}
	holdings := NewHoldings()
	claims := gateway.Value{Kind: "Tuple", Fields: []gateway.Value{{
		Kind:      "Map",
		FieldName: "liquidity_claims",
		Entries:   []gateway.MapEntry{{Key: scalar("U32", "", "100"), Value: scalar("Decimal", "", "5")}},
	}}}
	holdings.NonFungibles["account_a"] = []gateway.NonFungibleResource{{
		ResourceAddress: "resource_shape",
		Items:           []gateway.NonFungible{{ID: "#1#", Data: &claims}},
	}}

	res := ValueShape(zaptest.NewLogger(t), states, holdings, testFilter())

	// Half the active bin: 20 LSULP (x1.5) + 30 XRD.
	assert.True(t, d("60").Equal(res.Total("account_a")), res.Total("account_a").String())
	assert.Equal(t, "CaviarNine Shape: LSULP/XRD", res.Breakdown["account_a"][0].PoolName)
	assert.Equal(t, PoolShape, res.Breakdown["account_a"][0].PoolKind)
}
