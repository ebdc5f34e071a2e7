package swapmath

import (
	"github.com/holiman/uint256"

	"clmmCore/internal/fixedpoint"
	"clmmCore/internal/liquidity"
)

// feeDenominator scales fee rates given in basis points.
var feeDenominator = uint256.NewInt(10000)

// StepResult describes the outcome of a swap step confined to one tick range.
type StepResult struct {
	// NextSqrtPrice is the pool sqrt-price after the step.
	NextSqrtPrice *uint256.Int
	// AmountIn is the input consumed, fee included.
	AmountIn *uint256.Int
	// AmountOut is the output produced.
	AmountOut *uint256.Int
	// FeeAmount is the fee taken from the input.
	FeeAmount *uint256.Int
}

// SwapWithinTick quotes a swap step between the current sqrt-price and a
// target sqrt-price, without crossing the target. zeroForOne means token0 in,
// token1 out (price moves down toward the target); otherwise token1 in,
// token0 out. feeBps is the fee rate in basis points. The step consumes at
// most amountRemaining of input and never moves past the target price.
func SwapWithinTick(current, target, liquidityValue, amountRemaining *uint256.Int, feeBps uint32, zeroForOne bool) StepResult {
	var amountMax *uint256.Int
	if zeroForOne {
		amountMax = liquidity.Amount0(target, current, liquidityValue)
	} else {
		amountMax = liquidity.Amount1(current, target, liquidityValue)
	}

	amountIn := amountRemaining.Clone()
	if amountMax.Lt(amountIn) {
		amountIn = amountMax.Clone()
	}

	feeAmount := fixedpoint.MulDiv(amountIn, uint256.NewInt(uint64(feeBps)), feeDenominator)
	amountAfterFee := fixedpoint.SatSub(amountIn, feeAmount)

	var next *uint256.Int
	if amountIn.Eq(amountMax) {
		next = target.Clone()
	} else if zeroForOne {
		next = NextSqrtPriceFromAmount0RoundingUp(current, liquidityValue, amountAfterFee, true)
	} else {
		next = NextSqrtPriceFromAmount1RoundingDown(current, liquidityValue, amountAfterFee, true)
	}

	var amountOut *uint256.Int
	if zeroForOne {
		amountOut = liquidity.Amount1(next, current, liquidityValue)
	} else {
		amountOut = liquidity.Amount0(current, next, liquidityValue)
	}

	return StepResult{
		NextSqrtPrice: next,
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		FeeAmount:     feeAmount,
	}
}
