// Package position values a concentrated-liquidity position: the token
// amounts it currently represents, whether it is earning fees, its share of
// pool liquidity, and its impermanent loss against an entry price. All
// functions are pure; position lifecycle and storage belong to the caller.
package position

import (
	"math/big"

	"github.com/holiman/uint256"

	"clmmCore/internal/fixedpoint"
	"clmmCore/internal/liquidity"
	"clmmCore/internal/tickmath"
)

var (
	two      = uint256.NewInt(2)
	basisMax = uint256.NewInt(10000)
)

// TokenAmounts splits a position's liquidity into its token0 and token1
// amounts at the given pool sqrt-price: entirely token0 below the range,
// entirely token1 above it, and a mixed split inside it. The range bounds
// may arrive in either order.
func TokenAmounts(sqrtPrice, a, b, liquidityValue *uint256.Int) (*uint256.Int, *uint256.Int) {
	lower, upper := a, b
	if a.Gt(b) {
		lower, upper = b, a
	}

	var amount0, amount1 *uint256.Int
	switch {
	case !sqrtPrice.Gt(lower):
		amount0 = liquidity.Amount0(lower, upper, liquidityValue)
		amount1 = new(uint256.Int)
	case sqrtPrice.Lt(upper):
		amount0 = liquidity.Amount0(sqrtPrice, upper, liquidityValue)
		amount1 = liquidity.Amount1(lower, sqrtPrice, liquidityValue)
	default:
		amount0 = new(uint256.Int)
		amount1 = liquidity.Amount1(lower, upper, liquidityValue)
	}

	return amount0, amount1
}

// ImpermanentLoss returns the value lost relative to holding, as a signed
// Q96-scaled delta:
//
//	IL = 2*sqrt(r)/(1+r) - 1, r = currentPrice/initialPrice
//
// Both prices are Q96 linear prices. sqrt(r) in Q96 is the exact integer
// root of the ratio shifted up to the 2^192 scale. The result is 0 at r=1
// and negative whenever the prices diverge; a zero initial price yields 0.
func ImpermanentLoss(currentPrice, initialPrice *uint256.Int) *big.Int {
	if initialPrice.IsZero() {
		return new(big.Int)
	}

	ratio := fixedpoint.MulDiv(currentPrice, fixedpoint.Q96, initialPrice)

	sqrtRatio := fixedpoint.Sqrt(new(uint256.Int).Lsh(ratio, 96))

	numerator := fixedpoint.SatMul(two, sqrtRatio)
	denominator := new(uint256.Int).Add(fixedpoint.Q96, ratio)
	ilRatio := fixedpoint.MulDiv(numerator, fixedpoint.Q96, denominator)

	return new(big.Int).Sub(ilRatio.ToBig(), fixedpoint.Q96.ToBig())
}

// InRange reports whether the pool sqrt-price sits inside the position's
// range, compared at tick granularity: in range means tick(lower) <= tick(p)
// < tick(upper). Bounds may arrive in either order.
func InRange(sqrtPrice, lower, upper *uint256.Int) bool {
	if lower.Gt(upper) {
		lower, upper = upper, lower
	}

	currentTick := tickmath.TickAtSqrtRatio(sqrtPrice)
	lowerTick := tickmath.TickAtSqrtRatio(lower)
	upperTick := tickmath.TickAtSqrtRatio(upper)

	return currentTick >= lowerTick && currentTick < upperTick
}

// Share returns the position's share of pool liquidity in basis points
// (10000 = 100%). A pool with zero liquidity yields 0.
func Share(positionLiquidity, poolLiquidity *uint256.Int) *uint256.Int {
	if poolLiquidity.IsZero() {
		return new(uint256.Int)
	}
	return fixedpoint.MulDiv(positionLiquidity, basisMax, poolLiquidity)
}
