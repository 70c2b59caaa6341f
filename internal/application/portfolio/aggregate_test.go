package portfolio

import (
	"context"
	"errors"
	"testing"

	"ryzer-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id int64, asset, buyer string, qty, total int64) domain.Transaction {
	return domain.Transaction{
		ID:         id,
		AssetName:  asset,
		Buyer:      buyer,
		Quantity:   qty,
		TotalPrice: decimal.NewFromInt(total),
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAggregate_SumsPerAssetName(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "X", "Alice", 1, 1000),
		tx(2, "X", "Bob", 2, 2000),
		tx(3, "Y", "Alice", 5, 500),
	}

	got := Aggregate(txs, AtCost)
	require.Len(t, got, 2)

	x := got["X"]
	assert.Equal(t, "X", x.AssetName)
	assert.Equal(t, int64(3), x.TotalTokens)
	assert.True(t, x.TotalInvested.Equal(dec(3000)))
	assert.True(t, x.CurrentValue.Equal(dec(3000)))
	assert.True(t, x.ProfitLoss.IsZero())
	assert.True(t, x.ProfitLossPercent.IsZero())

	assert.Equal(t, int64(5), got["Y"].TotalTokens)
}

func TestAggregate_ProfitLossFromValuer(t *testing.T) {
	txs := []domain.Transaction{tx(1, "X", "Alice", 1, 1000), tx(2, "X", "Alice", 2, 2000)}
	tenPercent := ValuerFunc(func(t domain.Transaction) decimal.Decimal {
		return t.TotalPrice.Mul(decimal.NewFromFloat(1.1))
	})

	x := Aggregate(txs, tenPercent)["X"]
	assert.True(t, x.CurrentValue.Equal(dec(3300)), x.CurrentValue.String())
	assert.True(t, x.ProfitLoss.Equal(dec(300)), x.ProfitLoss.String())
	assert.True(t, x.ProfitLossPercent.Equal(dec(10)), x.ProfitLossPercent.String())
}

func TestAggregate_ZeroInvestedReportsZeroPercent(t *testing.T) {
	x := Aggregate([]domain.Transaction{tx(1, "Free", "Alice", 3, 0)}, HashNoise{})["Free"]
	assert.True(t, x.TotalInvested.IsZero())
	assert.True(t, x.ProfitLossPercent.IsZero())
}

func TestAggregate_Empty(t *testing.T) {
	assert.Empty(t, Aggregate(nil, AtCost))
}

func TestHashNoise_DeterministicAndBounded(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "X", "Alice", 1, 1000),
		tx(2, "X", "Bob", 2, 2000),
		tx(3, "Y", "Carol", 4, 4000),
	}
	first := Aggregate(txs, HashNoise{})
	second := Aggregate(txs, HashNoise{})

	for name, h := range first {
		assert.True(t, h.CurrentValue.Equal(second[name].CurrentValue))
		assert.True(t, h.CurrentValue.GreaterThanOrEqual(h.TotalInvested))
		ceiling := h.TotalInvested.Mul(decimal.NewFromFloat(1.1))
		assert.True(t, h.CurrentValue.LessThan(ceiling))
	}
}

func TestRandomNoise_UsesDraw(t *testing.T) {
	v := RandomNoise{Float64: func() float64 { return 0.5 }}
	got := v.Value(tx(1, "X", "Alice", 1, 1000))
	assert.True(t, got.Equal(dec(1050)), got.String())
}

func TestNewValuer(t *testing.T) {
	v, err := NewValuer("", 0)
	require.NoError(t, err)
	assert.IsType(t, HashNoise{}, v)

	v, err = NewValuer(ValuationRandom, 0.2)
	require.NoError(t, err)
	rn, ok := v.(RandomNoise)
	require.True(t, ok)
	assert.True(t, rn.Max.Equal(decimal.NewFromFloat(0.2)))

	_, err = NewValuer("oracle", 0)
	assert.Error(t, err)
}

func TestSummarize_SortedWithTotals(t *testing.T) {
	txs := []domain.Transaction{
		tx(1, "Villa", "Alice", 1, 1000),
		tx(2, "Apartment", "Bob", 1, 3000),
	}
	double := ValuerFunc(func(t domain.Transaction) decimal.Decimal { return t.TotalPrice.Mul(dec(2)) })

	s := Summarize(Aggregate(txs, double))
	require.Len(t, s.Holdings, 2)
	assert.Equal(t, "Apartment", s.Holdings[0].AssetName)
	assert.Equal(t, "Villa", s.Holdings[1].AssetName)
	assert.True(t, s.TotalInvested.Equal(dec(4000)))
	assert.True(t, s.TotalCurrentValue.Equal(dec(8000)))
	assert.True(t, s.TotalProfitLoss.Equal(dec(4000)))
	assert.True(t, s.TotalProfitLossPercent.Equal(dec(100)))
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(map[string]domain.Holding{})
	assert.Empty(t, s.Holdings)
	assert.NotNil(t, s.Holdings)
	assert.True(t, s.TotalProfitLossPercent.IsZero())
}

type fakeLedger struct {
	txs []domain.Transaction
	err error
}

func (f *fakeLedger) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	return f.txs, f.err
}

func (f *fakeLedger) ListByBuyer(ctx context.Context, buyer string) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for _, t := range f.txs {
		if t.Buyer == buyer {
			out = append(out, t)
		}
	}
	return out, f.err
}

func TestServiceView_AllBuyersAndSingleBuyer(t *testing.T) {
	lister := &fakeLedger{txs: []domain.Transaction{
		tx(1, "X", "Alice", 1, 1000),
		tx(2, "X", "Bob", 2, 2000),
	}}
	svc := &Service{Ledger: lister, Valuer: AtCost}
	ctx := context.Background()

	all, err := svc.View(ctx, "")
	require.NoError(t, err)
	require.Len(t, all.Holdings, 1)
	assert.Equal(t, int64(3), all.Holdings[0].TotalTokens)

	alice, err := svc.View(ctx, " Alice ")
	require.NoError(t, err)
	require.Len(t, alice.Holdings, 1)
	assert.Equal(t, int64(1), alice.Holdings[0].TotalTokens)
	assert.True(t, alice.TotalInvested.Equal(dec(1000)))

	nobody, err := svc.View(ctx, "Zed")
	require.NoError(t, err)
	assert.Empty(t, nobody.Holdings)
}

func TestServiceView_LedgerError(t *testing.T) {
	svc := &Service{Ledger: &fakeLedger{err: errors.New("boom")}}

	_, err := svc.View(context.Background(), "")
	assert.EqualError(t, err, "boom")
}
