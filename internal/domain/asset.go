package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Asset is a tokenized property in the catalog. Supply counts the tokens still
// available for purchase and never goes below zero.
type Asset struct {
	ID        int64           `gorm:"column:id;primaryKey" json:"id"`
	Name      string          `gorm:"column:name;not null" json:"name"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(18,2);not null" json:"price"`
	Supply    int64           `gorm:"column:supply;not null;check:supply >= 0" json:"supply"`
	Location  string          `gorm:"column:location;not null" json:"location"`
	Category  string          `gorm:"column:type;not null" json:"type"`
	CreatedAt time.Time       `gorm:"column:createdAt" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"column:updatedAt" json:"updatedAt"`
}

func (Asset) TableName() string {
	return "Assets"
}
