package models

import "time"

// BillSequenceModel tracks the highest number handed out by a named sequence.
type BillSequenceModel struct {
	Name      string    `gorm:"type:varchar(50);primaryKey"`
	LastValue int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (BillSequenceModel) TableName() string {
	return "bill_sequences"
}

// AllModels lists every model in migration order
func AllModels() []any {
	return []any{
		&InvoiceModel{},
		&InvoiceItemModel{},
		&ItemCatalogEntryModel{},
		&BillSequenceModel{},
	}
}
