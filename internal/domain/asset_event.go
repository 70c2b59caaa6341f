package domain

import (
	"time"

	"gorm.io/datatypes"
)

const EventSupplyDecremented = "SUPPLY_DECREMENTED"

// AssetEvent is the audit trail of supply changes, written in the same commit
// as the change itself.
type AssetEvent struct {
	ID            int64          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AssetID       int64          `gorm:"column:asset_id;not null;index" json:"asset_id"`
	EventType     string         `gorm:"column:event_type;type:varchar(30);not null" json:"event_type"`
	TransactionID *int64         `gorm:"column:transaction_id" json:"transaction_id"`
	Actor         string         `gorm:"column:actor" json:"actor"`
	EventData     datatypes.JSON `gorm:"column:event_data;not null" json:"event_data"`
	CreatedAt     time.Time      `gorm:"column:createdAt" json:"createdAt"`
}

func (AssetEvent) TableName() string {
	return "AssetEvents"
}
