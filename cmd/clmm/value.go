package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"clmmCore/internal/model"
	"clmmCore/internal/tickmath"
	"clmmCore/internal/valuation"
)

type conversion struct {
	Tick         int32  `json:"tick"`
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	PriceX96     string `json:"price_x96"`
}

func runConvert(cmd *cobra.Command, _ []string) error {
	tickSet := cmd.Flags().Changed("tick")
	sqrtStr, _ := cmd.Flags().GetString("sqrt-price")
	priceStr, _ := cmd.Flags().GetString("price")

	var sqrtPrice *uint256.Int
	switch {
	case tickSet:
		tick, _ := cmd.Flags().GetInt32("tick")
		sqrtPrice = tickmath.SqrtRatioAtTick(tick)
		if sqrtPrice.IsZero() {
			return fmt.Errorf("tick %d is outside [%d, %d]", tick, tickmath.MinTick, tickmath.MaxTick)
		}
	case sqrtStr != "":
		parsed, err := uint256.FromDecimal(sqrtStr)
		if err != nil {
			return fmt.Errorf("parse sqrt-price: %w", err)
		}
		if parsed.Lt(tickmath.MinSqrtRatio) || parsed.Gt(tickmath.MaxSqrtRatio) {
			return fmt.Errorf("sqrt-price %s is outside the valid ratio range", sqrtStr)
		}
		sqrtPrice = parsed
	case priceStr != "":
		parsed, err := uint256.FromDecimal(priceStr)
		if err != nil {
			return fmt.Errorf("parse price: %w", err)
		}
		sqrtPrice = tickmath.SqrtPriceFromPrice(parsed)
		if sqrtPrice.IsZero() {
			return fmt.Errorf("price %s has no representable sqrt-price", priceStr)
		}
	default:
		return fmt.Errorf("one of --tick, --sqrt-price or --price is required")
	}

	result := conversion{
		Tick:         tickmath.TickAtSqrtRatio(sqrtPrice),
		SqrtPriceX96: sqrtPrice.Dec(),
		PriceX96:     tickmath.PriceFromSqrtPrice(sqrtPrice).Dec(),
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func runValue(cmd *cobra.Command, _ []string) error {
	sqrtStr, _ := cmd.Flags().GetString("sqrt-price")
	poolLiq, _ := cmd.Flags().GetString("pool-liquidity")
	lower, _ := cmd.Flags().GetString("lower")
	upper, _ := cmd.Flags().GetString("upper")
	liq, _ := cmd.Flags().GetString("liquidity")
	entry, _ := cmd.Flags().GetString("entry-price")

	if sqrtStr == "" {
		return fmt.Errorf("sqrt-price is required")
	}
	if lower == "" || upper == "" {
		return fmt.Errorf("lower and upper bounds are required")
	}
	if liq == "" {
		return fmt.Errorf("liquidity is required")
	}

	record := model.Position{
		PriceLowerX96: lower,
		PriceUpperX96: upper,
		Liquidity:     liq,
		EntryPriceX96: entry,
	}
	pool := model.PoolState{
		SqrtPriceX96: sqrtStr,
		Liquidity:    poolLiq,
	}

	report, err := valuation.Evaluate(record, pool, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
