package assetevents

import (
	"context"
	"encoding/json"

	"ryzer-backend/internal/application/catalog"
	"ryzer-backend/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// SupplyDecremented builds the audit event for a purchase that took quantity
// tokens from an asset.
func SupplyDecremented(assetID, transactionID int64, actor string, quantity, before, after int64) (domain.AssetEvent, error) {
	data, err := json.Marshal(map[string]interface{}{
		"quantity":      quantity,
		"supply_before": before,
		"supply_after":  after,
	})
	if err != nil {
		return domain.AssetEvent{}, err
	}
	return domain.AssetEvent{
		AssetID:       assetID,
		EventType:     domain.EventSupplyDecremented,
		TransactionID: &transactionID,
		Actor:         actor,
		EventData:     datatypes.JSON(data),
	}, nil
}

func (s *Service) Record(ctx context.Context, event domain.AssetEvent) (domain.AssetEvent, error) {
	event.ID = 0
	if err := s.DB.WithContext(ctx).Create(&event).Error; err != nil {
		return domain.AssetEvent{}, err
	}
	return event, nil
}

// ListForAsset returns the asset's events, newest first.
func (s *Service) ListForAsset(ctx context.Context, assetID int64) ([]domain.AssetEvent, error) {
	assets := &catalog.Service{DB: s.DB}
	if _, err := assets.GetAsset(ctx, assetID); err != nil {
		return nil, err
	}

	var events []domain.AssetEvent
	if err := s.DB.WithContext(ctx).Where("asset_id = ?", assetID).Order("id DESC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
