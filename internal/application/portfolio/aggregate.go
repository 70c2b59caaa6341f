package portfolio

import (
	"maps"
	"slices"

	"ryzer-backend/internal/domain"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregate folds transactions into one holding per asset name. Buyers are
// not distinguished; filter txs first for a single buyer's view.
func Aggregate(txs []domain.Transaction, v Valuer) map[string]domain.Holding {
	out := make(map[string]domain.Holding)
	for _, tx := range txs {
		h := out[tx.AssetName]
		h.AssetName = tx.AssetName
		h.TotalTokens += tx.Quantity
		h.TotalInvested = h.TotalInvested.Add(tx.TotalPrice)
		h.CurrentValue = h.CurrentValue.Add(v.Value(tx))
		out[tx.AssetName] = h
	}
	for name, h := range out {
		h.ProfitLoss = h.CurrentValue.Sub(h.TotalInvested)
		h.ProfitLossPercent = percentOf(h.ProfitLoss, h.TotalInvested)
		out[name] = h
	}
	return out
}

// percentOf reports zero when base is zero.
func percentOf(part, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return part.Div(base).Mul(hundred)
}

// Summary is a portfolio with its totals. Holdings are sorted by asset name.
type Summary struct {
	Holdings               []domain.Holding
	TotalInvested          decimal.Decimal
	TotalCurrentValue      decimal.Decimal
	TotalProfitLoss        decimal.Decimal
	TotalProfitLossPercent decimal.Decimal
}

func Summarize(holdings map[string]domain.Holding) Summary {
	s := Summary{Holdings: make([]domain.Holding, 0, len(holdings))}
	for _, name := range slices.Sorted(maps.Keys(holdings)) {
		h := holdings[name]
		s.Holdings = append(s.Holdings, h)
		s.TotalInvested = s.TotalInvested.Add(h.TotalInvested)
		s.TotalCurrentValue = s.TotalCurrentValue.Add(h.CurrentValue)
	}
	s.TotalProfitLoss = s.TotalCurrentValue.Sub(s.TotalInvested)
	s.TotalProfitLossPercent = percentOf(s.TotalProfitLoss, s.TotalInvested)
	return s
}
