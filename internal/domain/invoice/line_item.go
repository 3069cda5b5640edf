package invoice

import (
	"errors"
	"fmt"
	"strings"

	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// LineItemInput is the clerk-entered part of a line. Derived values are
// never accepted from callers.
type LineItemInput struct {
	Description string
	HSNCode     string
	Quantity    int
	Rate        decimal.Decimal
	IGST        decimal.Decimal
}

// LineItem is one priced row of an invoice
type LineItem struct {
	Description string
	HSNCode     string
	Quantity    int
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	CGST        decimal.Decimal
	SGST        decimal.Decimal
	IGST        decimal.Decimal
	Total       decimal.Decimal
}

// NewLineItem validates input and derives the line's money values
func NewLineItem(in LineItemInput) (LineItem, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return LineItem{}, shared.NewValidationError("Item description is required")
	}
	// The rate column holds two places; anything finer would be rounded on
	// save and no longer match the stored amount.
	if !in.Rate.Equal(in.Rate.Round(MoneyPlaces)) {
		return LineItem{}, shared.NewValidationError("Rate cannot have more than 2 decimal places")
	}

	totals, err := ComputeLine(in.Quantity, in.Rate, in.IGST)
	if err != nil {
		return LineItem{}, err
	}

	return LineItem{
		Description: description,
		HSNCode:     strings.TrimSpace(in.HSNCode),
		Quantity:    in.Quantity,
		Rate:        in.Rate,
		Amount:      totals.Amount,
		CGST:        totals.CGST,
		SGST:        totals.SGST,
		IGST:        totals.IGST,
		Total:       totals.Total,
	}, nil
}

// Input returns the clerk-entered fields of the line
func (li LineItem) Input() LineItemInput {
	return LineItemInput{
		Description: li.Description,
		HSNCode:     li.HSNCode,
		Quantity:    li.Quantity,
		Rate:        li.Rate,
		IGST:        li.IGST,
	}
}

// RecomputeItems rebuilds every line from its inputs so stale or tampered
// derived values can never reach storage.
func RecomputeItems(items []LineItem) ([]LineItem, error) {
	out := make([]LineItem, 0, len(items))
	for i, item := range items {
		li, err := NewLineItem(item.Input())
		if err != nil {
			var de *shared.DomainError
			if errors.As(err, &de) {
				return nil, shared.NewValidationError(fmt.Sprintf("Item %d: %s", i+1, de.Message))
			}
			return nil, err
		}
		out = append(out, li)
	}
	return out, nil
}
