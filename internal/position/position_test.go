package position

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"

	"clmmCore/internal/fixedpoint"
	"clmmCore/internal/tickmath"
)

func q96Frac(num, den uint64) *uint256.Int {
	v := new(uint256.Int).Mul(fixedpoint.Q96, uint256.NewInt(num))
	return v.Div(v, uint256.NewInt(den))
}

func TestTokenAmountsRangeSplit(t *testing.T) {
	lower := q96Frac(1, 2)
	upper := q96Frac(2, 1)
	liquidityValue := uint256.NewInt(1_000_000)

	// Below the range the position is entirely token0.
	amount0, amount1 := TokenAmounts(q96Frac(1, 4), lower, upper, liquidityValue)
	if amount0.IsZero() {
		t.Fatalf("below range: amount0 should be positive")
	}
	if !amount1.IsZero() {
		t.Fatalf("below range: amount1 = %s, want 0", amount1.Dec())
	}

	// At the lower bound still entirely token0.
	_, amount1 = TokenAmounts(lower, lower, upper, liquidityValue)
	if !amount1.IsZero() {
		t.Fatalf("at lower bound: amount1 = %s, want 0", amount1.Dec())
	}

	// Above the range the position is entirely token1.
	amount0, amount1 = TokenAmounts(q96Frac(4, 1), lower, upper, liquidityValue)
	if !amount0.IsZero() {
		t.Fatalf("above range: amount0 = %s, want 0", amount0.Dec())
	}
	if amount1.IsZero() {
		t.Fatalf("above range: amount1 should be positive")
	}

	// Inside the range both sides are strictly positive.
	amount0, amount1 = TokenAmounts(q96Frac(1, 1), lower, upper, liquidityValue)
	if amount0.IsZero() || amount1.IsZero() {
		t.Fatalf("inside range: amounts = (%s, %s), want both positive", amount0.Dec(), amount1.Dec())
	}
	if !amount0.Eq(uint256.NewInt(500_000)) || !amount1.Eq(uint256.NewInt(500_000)) {
		t.Fatalf("inside range split = (%s, %s), want (500000, 500000)", amount0.Dec(), amount1.Dec())
	}
}

func TestTokenAmountsOrderIndependent(t *testing.T) {
	lower := q96Frac(3, 4)
	upper := q96Frac(3, 2)
	price := q96Frac(1, 1)
	liquidityValue := uint256.NewInt(42_000_000)

	a0, a1 := TokenAmounts(price, lower, upper, liquidityValue)
	b0, b1 := TokenAmounts(price, upper, lower, liquidityValue)
	if !a0.Eq(b0) || !a1.Eq(b1) {
		t.Fatalf("TokenAmounts order-dependent: (%s,%s) != (%s,%s)", a0.Dec(), a1.Dec(), b0.Dec(), b1.Dec())
	}
}

func TestImpermanentLossAtParity(t *testing.T) {
	price := q96Frac(1, 1)
	if got := ImpermanentLoss(price, price); got.Sign() != 0 {
		t.Fatalf("IL at unchanged price = %s, want 0", got.String())
	}
}

func TestImpermanentLossNegativeOnDivergence(t *testing.T) {
	initial := q96Frac(1, 1)

	for _, current := range []*uint256.Int{q96Frac(4, 1), q96Frac(1, 4), q96Frac(3, 2)} {
		got := ImpermanentLoss(current, initial)
		if got.Sign() >= 0 {
			t.Fatalf("IL for diverged price should be negative, got %s", got.String())
		}
	}

	// r=4: IL = 2*2/(1+4) - 1 = -0.2, i.e. -Q96/5.
	got := ImpermanentLoss(q96Frac(4, 1), initial)
	want := new(big.Int).Neg(new(big.Int).Div(fixedpoint.Q96.ToBig(), big.NewInt(5)))
	diff := new(big.Int).Sub(got, want)
	diff.Abs(diff)
	// Allow the division flooring.
	if diff.Cmp(big.NewInt(2)) > 0 {
		t.Fatalf("IL(r=4) = %s, want about %s", got.String(), want.String())
	}
}

func TestImpermanentLossZeroInitialPrice(t *testing.T) {
	if got := ImpermanentLoss(q96Frac(1, 1), new(uint256.Int)); got.Sign() != 0 {
		t.Fatalf("IL with zero initial price = %s, want 0", got.String())
	}
}

func TestInRange(t *testing.T) {
	lower := tickmath.SqrtRatioAtTick(-100)
	upper := tickmath.SqrtRatioAtTick(100)

	if !InRange(fixedpoint.Q96, lower, upper) {
		t.Fatalf("price at tick 0 should be inside (-100, 100)")
	}
	if InRange(tickmath.SqrtRatioAtTick(150), lower, upper) {
		t.Fatalf("price at tick 150 should be outside (-100, 100)")
	}
	// Upper bound is exclusive.
	if InRange(upper, lower, upper) {
		t.Fatalf("price at the upper bound should be out of range")
	}
	// Bounds normalize.
	if !InRange(fixedpoint.Q96, upper, lower) {
		t.Fatalf("reversed bounds should still report in range")
	}
}

func TestShare(t *testing.T) {
	if got := Share(uint256.NewInt(250), uint256.NewInt(1_000)); !got.Eq(uint256.NewInt(2_500)) {
		t.Fatalf("share = %s bps, want 2500", got.Dec())
	}
	if got := Share(uint256.NewInt(250), new(uint256.Int)); !got.IsZero() {
		t.Fatalf("share of empty pool = %s, want 0", got.Dec())
	}
	if got := Share(uint256.NewInt(1_000), uint256.NewInt(1_000)); !got.Eq(uint256.NewInt(10_000)) {
		t.Fatalf("full share = %s bps, want 10000", got.Dec())
	}
}
