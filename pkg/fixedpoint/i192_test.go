package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TruncatesTowardZero(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "1.000000000000000000"},
		{"1.000000000000000001", "1.000000000000000001"},
		{"1.0000000000000000019", "1.000000000000000001"},
		{"-1.0000000000000000019", "-1.000000000000000001"},
		{"0.0000000000000000009", "0.000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			v, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse("abc")
	require.Error(t, err)
}

func TestAdd_KeepsSmallestUnit(t *testing.T) {
	a := MustParse("1.000000000000000001")
	assert.True(t, a.Add(MustParse("0")).Equal(a))
	assert.Equal(t, "1.000000000000000001", a.Add(Zero()).String())
}

func TestDiv_ByZeroIsZero(t *testing.T) {
	assert.True(t, MustParse("0.1").Div(Zero()).IsZero())
	assert.True(t, MustParse("0.1").Div(I192{}).Equal(Zero()))
}

func TestMul_TruncatesEveryStep(t *testing.T) {
	third := One().Div(MustParse("3"))
	assert.Equal(t, "0.333333333333333333", third.String())
	// 0.333333333333333333 * 3 does not climb back to 1.
	assert.Equal(t, "0.999999999999999999", third.Mul(MustParse("3")).String())

	tiny := MustParse("0.000000000000000001")
	assert.True(t, tiny.Mul(MustParse("0.5")).IsZero())

	neg := MustParse("-0.000000000000000001").Mul(MustParse("0.5"))
	assert.True(t, neg.IsZero(), "truncation is toward zero, not floor")
}

func TestDiv_Share(t *testing.T) {
	claim := MustParse("25")
	total := MustParse("100")
	amount := MustParse("40")
	share := claim.Div(total)
	assert.Equal(t, "0.250000000000000000", share.String())
	assert.Equal(t, "10.000000000000000000", share.Mul(amount).String())
}

func TestZeroValueIsUsable(t *testing.T) {
	var z I192
	assert.True(t, z.IsZero())
	assert.Equal(t, "0.000000000000000000", z.String())
	assert.Equal(t, "2.000000000000000000", z.Add(MustParse("2")).String())
}

func TestDecimalRoundTrip(t *testing.T) {
	v := MustParse("123.456")
	assert.Equal(t, "123.456", v.Decimal().String())
	assert.True(t, FromDecimal(v.Decimal()).Equal(v))
}
