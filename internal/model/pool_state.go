package model

// PoolState is a snapshot of the pool-side inputs the valuation needs: the
// current Q96 sqrt-price with its tick, total pool liquidity, and the fee
// rate. It either comes from CLI flags or from a live slot0/liquidity read.
type PoolState struct {
	PoolAddress  string `json:"pool_address,omitempty"`
	SqrtPriceX96 string `json:"sqrt_price_x96"`
	Tick         int32  `json:"tick"`
	Liquidity    string `json:"liquidity"`
	FeePips      uint32 `json:"fee_pips,omitempty"`
	BlockNumber  uint64 `json:"block_number,omitempty"`
}
