package invoice

import (
	"context"
	"time"

	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/google/uuid"
)

// ListFilter narrows an invoice listing. Empty fields do not filter.
// Results are ordered by date, newest first, unless SortBy says otherwise.
type ListFilter struct {
	shared.Filter
	BillNo       string
	CustomerName string // case-insensitive substring
	GSTNo        string
	From         *time.Time
	To           *time.Time
	SortBy       string
	SortOrder    string
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByBillNo finds an invoice by its bill number
	FindByBillNo(ctx context.Context, billNo string) (*Invoice, error)

	// FindAll lists invoices newest first and returns the unpaged total
	FindAll(ctx context.Context, filter ListFilter) ([]Invoice, int64, error)

	// Create inserts a new invoice with its items.
	// Returns a ConflictError if the bill number is already taken.
	Create(ctx context.Context, inv *Invoice) error

	// Update replaces an invoice and its items.
	// Returns a ConflictError if the new bill number is already taken.
	Update(ctx context.Context, inv *Invoice) error

	// Delete removes an invoice and returns it as it was
	Delete(ctx context.Context, id uuid.UUID) (*Invoice, error)
}

// BillNumberAllocator hands out bill numbers that never repeat, even after
// the invoice holding the highest number is deleted.
type BillNumberAllocator interface {
	// Next returns the bill number the next commit should try. It does not
	// consume the number.
	Next(ctx context.Context) (string, error)

	// Reserve marks billNo as used. Returns a ConflictError if billNo is not
	// above every number handed out so far.
	Reserve(ctx context.Context, billNo string) error
}
