package catalog

import (
	"context"
	"errors"

	"ryzer-backend/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service reads and mutates the asset catalog. It works on whatever handle it
// is given, so a caller holding a transaction can build one over tx.
type Service struct {
	DB *gorm.DB
}

// DefaultAssets is the catalog every fresh store starts with.
func DefaultAssets() []domain.Asset {
	return []domain.Asset{
		{ID: 1, Name: "Luxury Apartment in Mumbai", Price: decimal.NewFromInt(100000), Supply: 50, Location: "Mumbai, India", Category: "Residential"},
		{ID: 2, Name: "Beachfront Villa in Goa", Price: decimal.NewFromInt(250000), Supply: 20, Location: "Goa, India", Category: "Residential"},
		{ID: 3, Name: "Commercial Space in Bangalore", Price: decimal.NewFromInt(150000), Supply: 35, Location: "Bangalore, India", Category: "Commercial"},
		{ID: 4, Name: "Penthouse in Delhi", Price: decimal.NewFromInt(300000), Supply: 15, Location: "Delhi, India", Category: "Residential"},
	}
}

// Seed inserts assets when the catalog is empty. An already populated
// catalog is left untouched.
func (s *Service) Seed(ctx context.Context, assets []domain.Asset) error {
	if len(assets) == 0 {
		return nil
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&domain.Asset{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.DB.WithContext(ctx).Create(&assets).Error
}

// ListAssets returns every asset ordered by id.
func (s *Service) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (s *Service) GetAsset(ctx context.Context, id int64) (domain.Asset, error) {
	var asset domain.Asset
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Asset{}, ErrAssetNotFound
		}
		return domain.Asset{}, err
	}
	return asset, nil
}

// DecrementSupply removes quantity tokens from the asset and returns the
// remaining supply. The guard lives in the UPDATE itself, so two writers can
// never both take the last tokens even without an outer lock.
func (s *Service) DecrementSupply(ctx context.Context, id, quantity int64) (int64, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	res := s.DB.WithContext(ctx).Model(&domain.Asset{}).
		Where("id = ? AND supply >= ?", id, quantity).
		UpdateColumn("supply", gorm.Expr("supply - ?", quantity))
	if res.Error != nil {
		return 0, res.Error
	}

	asset, err := s.GetAsset(ctx, id)
	if err != nil {
		return 0, err
	}
	if res.RowsAffected == 0 {
		return 0, &InsufficientSupplyError{Available: asset.Supply}
	}
	return asset.Supply, nil
}
