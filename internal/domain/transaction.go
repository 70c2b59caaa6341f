package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one committed purchase. Rows are append-only: the id is
// assigned on insert and grows with append order, so it doubles as the
// ledger's total order when two purchases share a timestamp.
type Transaction struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AssetID    int64           `gorm:"column:asset_id;not null;index" json:"asset_id"`
	AssetName  string          `gorm:"column:asset_name;not null" json:"asset_name"`
	Buyer      string          `gorm:"column:buyer;not null;index" json:"buyer"`
	Quantity   int64           `gorm:"column:quantity;not null" json:"quantity"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:decimal(18,2);not null" json:"total_price"`
	CreatedAt  time.Time       `gorm:"column:createdAt" json:"timestamp"`
}

func (Transaction) TableName() string {
	return "Transactions"
}
