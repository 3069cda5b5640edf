package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/gstbill/internal/domain/invoice"
	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/catering/gstbill/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// InvoiceSequenceName is the bill_sequences row backing invoice numbers
const InvoiceSequenceName = "invoice"

// GormBillNumberAllocator allocates bill numbers from the bill_sequences
// table. The stored last_value only ever grows, so deleting the newest
// invoice never frees its number.
type GormBillNumberAllocator struct {
	db       *gorm.DB
	invoices *GormInvoiceRepository
	sequence string
}

// NewGormBillNumberAllocator creates a new GormBillNumberAllocator
func NewGormBillNumberAllocator(db *gorm.DB) *GormBillNumberAllocator {
	return &GormBillNumberAllocator{
		db:       db,
		invoices: NewGormInvoiceRepository(db),
		sequence: InvoiceSequenceName,
	}
}

// Next returns one past the highest number reserved or stored
func (a *GormBillNumberAllocator) Next(ctx context.Context) (string, error) {
	last, err := a.lastValue(ctx)
	if err != nil {
		return "", err
	}

	// Rows stored before the sequence table existed, or renamed through an
	// update, can sit above last_value.
	maxSeq, err := a.invoices.MaxBillSequence(ctx)
	if err != nil {
		return "", err
	}

	return invoice.FormatBillNumber(max(last, maxSeq) + 1), nil
}

func (a *GormBillNumberAllocator) lastValue(ctx context.Context) (int64, error) {
	var seq models.BillSequenceModel
	err := a.db.WithContext(ctx).
		Where("name = ?", a.sequence).
		Limit(1).
		Find(&seq).Error
	if err != nil {
		return 0, translateError(err, "", "", "Failed to read bill sequence")
	}
	return seq.LastValue, nil
}

// Reserve advances the sequence to billNo if billNo is above it.
// The compare-and-set makes concurrent reservations of one number
// succeed exactly once.
func (a *GormBillNumberAllocator) Reserve(ctx context.Context, billNo string) error {
	n, ok := invoice.ParseBillNumber(billNo)
	if !ok {
		return shared.NewValidationError(fmt.Sprintf("Bill number %q is not a positive whole number", billNo))
	}

	now := time.Now()
	db := a.db.WithContext(ctx)

	if err := db.Exec(
		"INSERT INTO bill_sequences (name, last_value, updated_at) VALUES (?, 0, ?) ON CONFLICT (name) DO NOTHING",
		a.sequence, now,
	).Error; err != nil {
		return translateError(err, "", "", "Failed to reserve bill number")
	}

	result := db.Model(&models.BillSequenceModel{}).
		Where("name = ? AND last_value < ?", a.sequence, n).
		Updates(map[string]any{"last_value": n, "updated_at": now})
	if result.Error != nil {
		return translateError(result.Error, "", "", "Failed to reserve bill number")
	}
	if result.RowsAffected == 0 {
		return shared.NewConflictError(fmt.Sprintf("Bill number %s is already taken", billNo))
	}
	return nil
}

// Ensure GormBillNumberAllocator implements invoice.BillNumberAllocator
var _ invoice.BillNumberAllocator = (*GormBillNumberAllocator)(nil)
