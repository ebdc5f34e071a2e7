// Package liquidity converts between liquidity values and token amounts over
// a sqrt-price range. Every function accepts its range bounds in either
// order: bounds are normalized to (min, max) up front, so swapped arguments
// produce identical results. Degenerate inputs (zero-width ranges, zero
// divisors) resolve to 0.
package liquidity

import (
	"github.com/holiman/uint256"

	"clmmCore/internal/fixedpoint"
)

// sortRange returns the bounds of a price range in (lower, upper) order.
func sortRange(a, b *uint256.Int) (*uint256.Int, *uint256.Int) {
	if a.Gt(b) {
		return b, a
	}
	return a, b
}

// ForAmount0 derives the liquidity a deposit of amount0 token0 provides over
// the range (a, b).
//
// L = amount0 * (a*b/Q96) / (b-a)
func ForAmount0(a, b, amount0 *uint256.Int) *uint256.Int {
	lower, upper := sortRange(a, b)

	intermediate := fixedpoint.MulDiv(lower, upper, fixedpoint.Q96)
	width := fixedpoint.SatSub(upper, lower)
	return fixedpoint.MulDiv(amount0, intermediate, width)
}

// ForAmount1 derives the liquidity a deposit of amount1 token1 provides over
// the range (a, b).
//
// L = amount1 * Q96 / (b-a)
func ForAmount1(a, b, amount1 *uint256.Int) *uint256.Int {
	lower, upper := sortRange(a, b)

	width := fixedpoint.SatSub(upper, lower)
	return fixedpoint.MulDiv(amount1, fixedpoint.Q96, width)
}

// ForAmounts derives the liquidity a two-sided deposit provides over the
// range (a, b), dispatching on where sqrtPrice sits relative to the range:
// below it only token0 matters, above it only token1, and inside it the
// smaller of the two single-sided values wins so the position is never
// under-collateralized on either side.
//
// When the bounds arrive reversed the amounts are reversed with them, since
// the token orientation of the range flips too.
func ForAmounts(sqrtPrice, a, b, amount0, amount1 *uint256.Int) *uint256.Int {
	lower, upper := a, b
	if a.Gt(b) {
		lower, upper = b, a
		amount0, amount1 = amount1, amount0
	}

	switch {
	case !sqrtPrice.Gt(lower):
		return ForAmount0(lower, upper, amount0)
	case sqrtPrice.Lt(upper):
		liquidity0 := ForAmount0(sqrtPrice, upper, amount0)
		liquidity1 := ForAmount1(lower, sqrtPrice, amount1)
		if liquidity0.Lt(liquidity1) {
			return liquidity0
		}
		return liquidity1
	default:
		return ForAmount1(lower, upper, amount1)
	}
}

// Amount0 returns the token0 amount a liquidity value represents over the
// range (a, b).
//
// amount0 = L * Q96 * (b-a) / (a*b)
func Amount0(a, b, liquidityValue *uint256.Int) *uint256.Int {
	lower, upper := sortRange(a, b)
	if lower.IsZero() {
		return new(uint256.Int)
	}

	shifted := fixedpoint.Trunc128(new(uint256.Int).Lsh(liquidityValue, 96))
	width := fixedpoint.SatSub(upper, lower)
	scaled := fixedpoint.MulDiv(shifted, width, upper)
	return scaled.Div(scaled, lower)
}

// Amount1 returns the token1 amount a liquidity value represents over the
// range (a, b).
//
// amount1 = L * (b-a) / Q96
func Amount1(a, b, liquidityValue *uint256.Int) *uint256.Int {
	lower, upper := sortRange(a, b)

	width := fixedpoint.SatSub(upper, lower)
	return fixedpoint.MulDiv(liquidityValue, width, fixedpoint.Q96)
}
