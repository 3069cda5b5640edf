package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Commit-time validation messages shown to the clerk
const (
	MsgCustomerNameRequired    = "Customer Name is mandatory."
	MsgCustomerAddressRequired = "Customer Address is mandatory."
	MsgGSTNoRequired           = "GST Number is mandatory."
	MsgItemsRequired           = "At least one item should be added to the invoice."
)

// Customer is the billed party
type Customer struct {
	Name    string
	Address string
	GSTNo   string
}

// Trimmed returns the customer with surrounding whitespace removed
func (c Customer) Trimmed() Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Address: strings.TrimSpace(c.Address),
		GSTNo:   strings.TrimSpace(c.GSTNo),
	}
}

// Invoice is a committed tax invoice
type Invoice struct {
	shared.BaseEntity
	BillNo   string
	Date     time.Time
	Customer Customer
	Items    []LineItem
	SubTotal decimal.Decimal
	Total    decimal.Decimal
}

// ValidateForCommit checks the fields a clerk must fill before an invoice
// can be stored. Checks run in form order and stop at the first failure.
func ValidateForCommit(customer Customer, itemCount int) error {
	c := customer.Trimmed()
	switch {
	case c.Name == "":
		return shared.NewValidationError(MsgCustomerNameRequired)
	case c.Address == "":
		return shared.NewValidationError(MsgCustomerAddressRequired)
	case c.GSTNo == "":
		return shared.NewValidationError(MsgGSTNoRequired)
	case itemCount == 0:
		return shared.NewValidationError(MsgItemsRequired)
	}
	return nil
}

// NewInvoice creates an invoice, re-deriving every line and the totals
func NewInvoice(billNo string, date time.Time, customer Customer, items []LineItem) (*Invoice, error) {
	inv := &Invoice{BaseEntity: shared.NewBaseEntity()}
	if err := inv.apply(billNo, date, customer, items); err != nil {
		return nil, err
	}
	return inv, nil
}

// Update replaces the editable fields and recomputes totals
func (inv *Invoice) Update(billNo string, date time.Time, customer Customer, items []LineItem) error {
	if err := inv.apply(billNo, date, customer, items); err != nil {
		return err
	}
	inv.Touch()
	return nil
}

func (inv *Invoice) apply(billNo string, date time.Time, customer Customer, items []LineItem) error {
	billNo = strings.TrimSpace(billNo)
	if billNo == "" {
		return shared.NewValidationError("Bill number is required")
	}
	if len(items) == 0 {
		return shared.NewValidationError(MsgItemsRequired)
	}

	lines, err := RecomputeItems(items)
	if err != nil {
		return err
	}

	if date.IsZero() {
		date = time.Now()
	}

	totals := Aggregate(lines)
	inv.BillNo = billNo
	inv.Date = date
	inv.Customer = customer.Trimmed()
	inv.Items = lines
	inv.SubTotal = totals.SubTotal
	inv.Total = totals.Total
	return nil
}

// BillSequence returns the numeric value of the bill number, or 0 when the
// bill number is not a positive integer.
func (inv *Invoice) BillSequence() int64 {
	n, ok := ParseBillNumber(inv.BillNo)
	if !ok {
		return 0
	}
	return n
}

// Descriptions returns the item descriptions in line order
func (inv *Invoice) Descriptions() []string {
	return descriptions(inv.Items)
}

// VerifyTotals checks that the stored totals equal a full recomputation
func (inv *Invoice) VerifyTotals() error {
	return verifyTotals(inv.Items, inv.SubTotal, inv.Total)
}

// ParseBillNumber parses a positive decimal bill number
func ParseBillNumber(billNo string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(billNo), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// FormatBillNumber renders a bill sequence value as a bill number
func FormatBillNumber(n int64) string {
	return strconv.FormatInt(n, 10)
}

func descriptions(items []LineItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Description)
	}
	return out
}

func verifyTotals(items []LineItem, subTotal, total decimal.Decimal) error {
	want := Aggregate(items)
	if !want.SubTotal.Equal(subTotal) {
		return fmt.Errorf("subtotal %s does not match sum of amounts %s", subTotal, want.SubTotal)
	}
	if !want.Total.Equal(total) {
		return fmt.Errorf("total %s does not match sum of line totals %s", total, want.Total)
	}
	return nil
}
