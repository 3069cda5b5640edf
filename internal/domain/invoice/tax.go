package invoice

import (
	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of decimal places every stored amount carries
const MoneyPlaces = 2

// Intra-state GST is split evenly between the central and state components.
var (
	CGSTRate = decimal.RequireFromString("0.09")
	SGSTRate = decimal.RequireFromString("0.09")
)

// LineTotals holds the derived money values of one line item
type LineTotals struct {
	Amount decimal.Decimal
	CGST   decimal.Decimal
	SGST   decimal.Decimal
	IGST   decimal.Decimal
	Total  decimal.Decimal
}

// Totals holds the aggregate values of an invoice
type Totals struct {
	SubTotal decimal.Decimal
	Total    decimal.Decimal
}

// round2 rounds half away from zero, which is half-up for the
// non-negative values produced here.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ComputeLine derives amount, CGST, SGST and total for a line.
// Each value is rounded once, at the moment it is produced.
func ComputeLine(quantity int, rate, igst decimal.Decimal) (LineTotals, error) {
	if quantity < 1 {
		return LineTotals{}, shared.NewValidationError("Quantity must be at least 1")
	}
	if rate.IsNegative() {
		return LineTotals{}, shared.NewValidationError("Rate cannot be negative")
	}
	if igst.IsNegative() {
		return LineTotals{}, shared.NewValidationError("IGST cannot be negative")
	}

	amount := round2(decimal.NewFromInt(int64(quantity)).Mul(rate))
	cgst := round2(amount.Mul(CGSTRate))
	sgst := round2(amount.Mul(SGSTRate))
	igst = round2(igst)

	return LineTotals{
		Amount: amount,
		CGST:   cgst,
		SGST:   sgst,
		IGST:   igst,
		Total:  round2(amount.Add(cgst).Add(sgst).Add(igst)),
	}, nil
}

// Aggregate sums already-rounded line values; no further rounding is applied.
func Aggregate(items []LineItem) Totals {
	totals := Totals{SubTotal: decimal.Zero, Total: decimal.Zero}
	for _, item := range items {
		totals.SubTotal = totals.SubTotal.Add(item.Amount)
		totals.Total = totals.Total.Add(item.Total)
	}
	return totals
}
