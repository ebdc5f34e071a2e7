// Package swapmath computes the sqrt-price reached after a swap step. The
// formulas mirror unsigned 128-bit arithmetic: intermediate products wrap
// modulo 2^128 and the wrap is detected by dividing back, which routes
// oversized inputs onto a reduced-precision fallback path instead of
// trapping. Division by zero follows the engine-wide convention and yields 0.
package swapmath

import (
	"github.com/holiman/uint256"

	"clmmCore/internal/fixedpoint"
)

// NextSqrtPriceFromAmount0RoundingUp returns the sqrt-price after amount of
// token0 is added to (add=true, price decreases) or removed from (add=false,
// price increases) liquidity at sqrtPrice.
//
// The exact path computes L*Q96 * sqrtPrice / (L*Q96 ± amount*sqrtPrice).
// When amount*sqrtPrice does not fit in 128 bits the add direction falls
// back to L*Q96 / (L*Q96/sqrtPrice + amount), which loses at most the
// flooring error of the inner division; the remove direction has no safe
// fallback and yields the 0 sentinel.
func NextSqrtPriceFromAmount0RoundingUp(sqrtPrice, liquidityValue, amount *uint256.Int, add bool) *uint256.Int {
	if amount.IsZero() {
		return sqrtPrice.Clone()
	}

	numerator1 := fixedpoint.Trunc128(new(uint256.Int).Lsh(liquidityValue, 96))
	product := fixedpoint.Trunc128(new(uint256.Int).Mul(amount, sqrtPrice))
	check := new(uint256.Int).Div(product, amount)

	if add {
		if check.Eq(sqrtPrice) {
			denominator := fixedpoint.Trunc128(new(uint256.Int).Add(numerator1, product))
			if !denominator.Lt(numerator1) {
				return fixedpoint.MulDiv(numerator1, sqrtPrice, denominator)
			}
		}

		// Reduced-precision fallback for oversized amount*sqrtPrice.
		denominator := new(uint256.Int).Div(numerator1, sqrtPrice)
		denominator.Add(denominator, amount)
		return new(uint256.Int).Div(numerator1, denominator)
	}

	if check.Eq(sqrtPrice) && numerator1.Gt(product) {
		denominator := new(uint256.Int).Sub(numerator1, product)
		return fixedpoint.MulDiv(numerator1, sqrtPrice, denominator)
	}

	// Removing more token0 than the liquidity holds has no valid price.
	return new(uint256.Int)
}

// NextSqrtPriceFromAmount1RoundingDown returns the sqrt-price after amount of
// token1 is added to (add=true, price increases) or removed from (add=false,
// price decreases) liquidity at sqrtPrice.
//
// The quotient amount*Q96/L is computed exactly while amount<<96 fits in 128
// bits and through the MulDiv fallback otherwise. Zero liquidity yields the
// 0 sentinel; draining more token1 than the price can give up also yields 0.
func NextSqrtPriceFromAmount1RoundingDown(sqrtPrice, liquidityValue, amount *uint256.Int, add bool) *uint256.Int {
	if liquidityValue.IsZero() {
		return new(uint256.Int)
	}

	var quotient *uint256.Int
	if !amount.Gt(new(uint256.Int).Rsh(fixedpoint.MaxU128, 96)) {
		quotient = new(uint256.Int).Lsh(amount, 96)
		quotient.Div(quotient, liquidityValue)
	} else {
		quotient = fixedpoint.MulDiv(amount, fixedpoint.Q96, liquidityValue)
	}

	if add {
		return fixedpoint.SatAdd(sqrtPrice, quotient)
	}

	if sqrtPrice.Gt(quotient) {
		return new(uint256.Int).Sub(sqrtPrice, quotient)
	}
	return new(uint256.Int)
}
