package domain

import "github.com/shopspring/decimal"

// Holding is a per-asset aggregate derived from the ledger. It is recomputed
// on every read and never stored.
type Holding struct {
	AssetName         string          `json:"assetName"`
	TotalTokens       int64           `json:"totalTokens"`
	TotalInvested     decimal.Decimal `json:"totalInvested"`
	CurrentValue      decimal.Decimal `json:"currentValue"`
	ProfitLoss        decimal.Decimal `json:"profitLoss"`
	ProfitLossPercent decimal.Decimal `json:"profitLossPercent"`
}
