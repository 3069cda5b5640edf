package models

import "time"

// ItemCatalogEntryModel is one canonical item description. The serial ID
// gives insertion order.
type ItemCatalogEntryModel struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	Description string    `gorm:"type:varchar(500);not null;uniqueIndex:idx_item_catalog_entries_description"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemCatalogEntryModel) TableName() string {
	return "item_catalog_entries"
}
