package trading

import (
	"context"
	"sync"
	"time"

	"ryzer-backend/internal/application/assetevents"
	"ryzer-backend/internal/application/catalog"
	"ryzer-backend/internal/application/ledger"
	"ryzer-backend/internal/domain"
	"ryzer-backend/internal/pkg/validation"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is the purchase engine, the only writer of asset supply and the
// ledger. A Service must not be copied after first use.
type Service struct {
	DB  *gorm.DB
	Now func() time.Time

	mu sync.Mutex
}

// Receipt is the outcome of a committed purchase.
type Receipt struct {
	Transaction     domain.Transaction
	RemainingSupply int64
}

// Buy validates the request, then decrements supply, appends the ledger
// entry and records the supply event as one commit. Either all three happen
// or none does.
func (s *Service) Buy(ctx context.Context, assetID, quantity int64, buyerName string) (*Receipt, error) {
	if quantity < 1 {
		return nil, &ValidationError{Err: catalog.ErrInvalidQuantity}
	}
	buyer, ok := validation.BuyerName(buyerName)
	if !ok {
		return nil, &ValidationError{Err: ErrBuyerNameRequired}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var receipt *Receipt
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assets := &catalog.Service{DB: tx}
		asset, err := assets.GetAsset(ctx, assetID)
		if err != nil {
			return err
		}
		if quantity > asset.Supply {
			return &catalog.InsufficientSupplyError{Available: asset.Supply}
		}

		remaining, err := assets.DecrementSupply(ctx, asset.ID, quantity)
		if err != nil {
			return err
		}

		entries := &ledger.Service{DB: tx, Now: s.Now}
		stored, err := entries.Append(ctx, domain.Transaction{
			AssetID:    asset.ID,
			AssetName:  asset.Name,
			Buyer:      buyer,
			Quantity:   quantity,
			TotalPrice: asset.Price.Mul(decimal.NewFromInt(quantity)),
		})
		if err != nil {
			return err
		}

		event, err := assetevents.SupplyDecremented(asset.ID, stored.ID, buyer, quantity, asset.Supply, remaining)
		if err != nil {
			return err
		}
		if _, err := (&assetevents.Service{DB: tx}).Record(ctx, event); err != nil {
			return err
		}

		receipt = &Receipt{Transaction: stored, RemainingSupply: remaining}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
