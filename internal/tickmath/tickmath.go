// Package tickmath converts between discrete ticks and Q96 sqrt-prices.
// Out-of-domain inputs resolve to the sentinel 0, never to a panic; callers
// must check for 0 before treating a result as a valid price.
package tickmath

import (
	"github.com/holiman/uint256"

	"clmmCore/internal/fixedpoint"
)

// SqrtRatioAtTick returns sqrt(1.0001^tick) in Q96 representation.
//
// |tick| is binary-decomposed against the sqrtMultipliers table, which covers
// every bit of the tick domain; positive ticks multiply by the selected
// entries, negative ticks divide by them, so the reciprocal is built without
// a 128-bit-overflowing intermediate. The result is clamped to
// [MinSqrtRatio, MaxSqrtRatio]; ticks outside [MinTick, MaxTick] yield 0.
func SqrtRatioAtTick(tick int32) *uint256.Int {
	if tick < MinTick || tick > MaxTick {
		return new(uint256.Int)
	}
	if tick == 0 {
		return fixedpoint.Q96.Clone()
	}

	absTick := uint32(tick)
	if tick < 0 {
		absTick = uint32(-tick)
	}

	ratio := fixedpoint.Q96.Clone()
	rest := absTick
	for k := 0; rest > 0 && k < len(sqrtMultipliers); k++ {
		if rest&1 != 0 {
			if tick > 0 {
				ratio = fixedpoint.MulDiv(ratio, sqrtMultipliers[k], multiplierScale)
			} else {
				ratio = fixedpoint.MulDiv(ratio, multiplierScale, sqrtMultipliers[k])
			}
		}
		rest >>= 1
	}

	if ratio.Lt(MinSqrtRatio) {
		return MinSqrtRatio.Clone()
	}
	if ratio.Gt(MaxSqrtRatio) {
		return MaxSqrtRatio.Clone()
	}
	return ratio
}

// TickAtSqrtRatio returns the greatest tick whose sqrt-price is at most
// sqrtPrice (floor semantics), found by binary search with SqrtRatioAtTick
// as the comparator. Inputs outside [MinSqrtRatio, MaxSqrtRatio] yield 0.
func TickAtSqrtRatio(sqrtPrice *uint256.Int) int32 {
	if sqrtPrice.Lt(MinSqrtRatio) || sqrtPrice.Gt(MaxSqrtRatio) {
		return 0
	}

	lo, hi := MinTick, MaxTick
	for i := 0; i < tickSearchIterations && hi-lo > 1; i++ {
		mid := (lo + hi) / 2
		if !SqrtRatioAtTick(mid).Gt(sqrtPrice) {
			lo = mid
		} else {
			hi = mid
		}
	}

	if !SqrtRatioAtTick(hi).Gt(sqrtPrice) {
		return hi
	}
	return lo
}

// SqrtPriceFromPrice converts a Q96 linear price into a Q96 sqrt-price,
// floor(sqrt(price * 2^96)). The shifted product fits the 256-bit
// intermediate for any 128-bit price, so the root is exact.
func SqrtPriceFromPrice(price *uint256.Int) *uint256.Int {
	if price.IsZero() {
		return new(uint256.Int)
	}
	return fixedpoint.Sqrt(new(uint256.Int).Lsh(price, 96))
}

// PriceFromSqrtPrice converts a Q96 sqrt-price into the Q96 linear price.
func PriceFromSqrtPrice(sqrtPrice *uint256.Int) *uint256.Int {
	return fixedpoint.MulDiv(sqrtPrice, sqrtPrice, fixedpoint.Q96)
}
