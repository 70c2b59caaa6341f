package portfolio

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand"

	"ryzer-backend/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	ValuationHash   = "hash"
	ValuationRandom = "random"
)

// DefaultMaxNoise caps the simulated appreciation at 10%.
var DefaultMaxNoise = decimal.NewFromFloat(0.10)

var one = decimal.NewFromInt(1)

// Valuer prices a single ledger entry at its current value. There is no live
// pricing feed, so every implementation here is a simulation.
type Valuer interface {
	Value(tx domain.Transaction) decimal.Decimal
}

// ValuerFunc adapts a plain function to Valuer.
type ValuerFunc func(tx domain.Transaction) decimal.Decimal

func (f ValuerFunc) Value(tx domain.Transaction) decimal.Decimal {
	return f(tx)
}

// AtCost values every entry at what was paid for it.
var AtCost = ValuerFunc(func(tx domain.Transaction) decimal.Decimal {
	return tx.TotalPrice
})

// HashNoise applies a markup in [0, Max) derived from the transaction id, so
// the same ledger always values the same way.
type HashNoise struct {
	Max decimal.Decimal
}

func (h HashNoise) Value(tx domain.Transaction) decimal.Decimal {
	limit := h.Max
	if limit.IsZero() {
		limit = DefaultMaxNoise
	}
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(tx.ID))
	f := fnv.New64a()
	_, _ = f.Write(buf[:])
	frac := decimal.NewFromInt(int64(f.Sum64() % 1_000_000)).Div(decimal.NewFromInt(1_000_000))
	return tx.TotalPrice.Mul(one.Add(frac.Mul(limit)))
}

// RandomNoise draws a fresh markup in [0, Max) on every call. Two reads of the
// same ledger disagree.
type RandomNoise struct {
	Max     decimal.Decimal
	Float64 func() float64
}

func (r RandomNoise) Value(tx domain.Transaction) decimal.Decimal {
	limit := r.Max
	if limit.IsZero() {
		limit = DefaultMaxNoise
	}
	draw := r.Float64
	if draw == nil {
		draw = rand.Float64
	}
	noise := decimal.NewFromFloat(draw()).Mul(limit)
	return tx.TotalPrice.Mul(one.Add(noise))
}

// NewValuer builds the valuation policy named by mode.
func NewValuer(mode string, maxNoise float64) (Valuer, error) {
	limit := DefaultMaxNoise
	if maxNoise > 0 {
		limit = decimal.NewFromFloat(maxNoise)
	}
	switch mode {
	case "", ValuationHash:
		return HashNoise{Max: limit}, nil
	case ValuationRandom:
		return RandomNoise{Max: limit}, nil
	default:
		return nil, fmt.Errorf("unknown valuation mode %q", mode)
	}
}
