package ledger

import (
	"context"
	"time"

	"ryzer-backend/internal/domain"

	"gorm.io/gorm"
)

// Service is the append-only purchase ledger. Entries are never updated or
// deleted.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Append stores entry under the next sequential id and stamps its creation
// time. Any id set by the caller is ignored.
func (s *Service) Append(ctx context.Context, entry domain.Transaction) (domain.Transaction, error) {
	entry.ID = 0
	entry.CreatedAt = s.now()
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return domain.Transaction{}, err
	}
	return entry, nil
}

// ListAll returns every transaction, most recent first. Ordering is by id,
// not timestamp, so entries appended within the same clock tick keep their
// append order.
func (s *Service) ListAll(ctx context.Context) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := s.DB.WithContext(ctx).Order("id DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}

// ListByBuyer is ListAll restricted to one buyer display name.
func (s *Service) ListByBuyer(ctx context.Context, buyer string) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := s.DB.WithContext(ctx).Where("buyer = ?", buyer).Order("id DESC").Find(&txs).Error; err != nil {
		return nil, err
	}
	return txs, nil
}
