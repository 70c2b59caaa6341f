package portfolio

import (
	"context"
	"strings"

	"ryzer-backend/internal/domain"
)

// TransactionLister is the read side of the ledger.
type TransactionLister interface {
	ListAll(ctx context.Context) ([]domain.Transaction, error)
	ListByBuyer(ctx context.Context, buyer string) ([]domain.Transaction, error)
}

type Service struct {
	Ledger TransactionLister
	Valuer Valuer
}

// View aggregates the ledger into a portfolio. With an empty buyer every
// purchase counts; otherwise only that buyer's purchases do.
func (s *Service) View(ctx context.Context, buyer string) (Summary, error) {
	var (
		txs []domain.Transaction
		err error
	)
	if name := strings.TrimSpace(buyer); name != "" {
		txs, err = s.Ledger.ListByBuyer(ctx, name)
	} else {
		txs, err = s.Ledger.ListAll(ctx)
	}
	if err != nil {
		return Summary{}, err
	}

	v := s.Valuer
	if v == nil {
		v = HashNoise{}
	}
	return Summarize(Aggregate(txs, v)), nil
}
