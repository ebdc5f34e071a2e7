package model

// ValuationReport is the computed value of one position at one pool price.
// Amounts and the share are decimal strings; the impermanent loss is a
// signed decimal string at Q96 scale and is empty when the position record
// carries no entry price.
type ValuationReport struct {
	PositionID         string `json:"position_id"`
	Owner              string `json:"owner"`
	PoolID             string `json:"pool_id"`
	Amount0            string `json:"amount0"`
	Amount1            string `json:"amount1"`
	InRange            bool   `json:"in_range"`
	ShareBps           string `json:"share_bps"`
	ImpermanentLossX96 string `json:"impermanent_loss_x96,omitempty"`
	SqrtPriceX96       string `json:"sqrt_price_x96"`
	Tick               int32  `json:"tick"`
	EvaluatedAt        string `json:"evaluated_at"`
}
