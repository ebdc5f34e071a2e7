package model

import (
	"encoding/json"
)

// Position is the stored description of a concentrated-liquidity position.
// Numeric fields are decimal strings: Q96 sqrt-prices for the bounds, a Q96
// linear price for the entry price, plain integers otherwise. The engine
// itself never holds these records; they stream through the valuation
// toolkit as plain values.
type Position struct {
	ID                 string `json:"id"`
	Owner              string `json:"owner"`
	PoolID             string `json:"pool_id"`
	PriceLowerX96      string `json:"price_lower_x96"`
	PriceUpperX96      string `json:"price_upper_x96"`
	Liquidity          string `json:"liquidity"`
	EntryPriceX96      string `json:"entry_price_x96,omitempty"`
	FeeGrowth0Snapshot string `json:"fee_growth_0_snapshot,omitempty"`
	FeeGrowth1Snapshot string `json:"fee_growth_1_snapshot,omitempty"`
}

// MarshalJSON ensures Position is encoded with stable field names.
func (p Position) MarshalJSON() ([]byte, error) {
	type Alias Position
	return json.Marshal(Alias(p))
}

// UnmarshalJSON decodes a Position from JSON.
func (p *Position) UnmarshalJSON(data []byte) error {
	type Alias Position
	var a Alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Position(a)
	return nil
}
