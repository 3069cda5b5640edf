package invoice

import (
	"fmt"
	"strings"

	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MsgInvalidItem is returned when a candidate line is incomplete
const MsgInvalidItem = "Please fill out all fields and ensure rate and quantity are positive numbers."

// Draft is the in-progress invoice a clerk is building. It is a value:
// Reduce never mutates the draft it is given.
type Draft struct {
	BillNo   string
	Customer Customer
	Items    []LineItem
	SubTotal decimal.Decimal
	Total    decimal.Decimal
}

// NewDraft returns an empty draft
func NewDraft() Draft {
	return Draft{
		Items:    []LineItem{},
		SubTotal: decimal.Zero,
		Total:    decimal.Zero,
	}
}

// Verify checks the running totals against a full recomputation
func (d Draft) Verify() error {
	return verifyTotals(d.Items, d.SubTotal, d.Total)
}

// Descriptions returns the item descriptions in line order
func (d Draft) Descriptions() []string {
	return descriptions(d.Items)
}

func (d Draft) clone() Draft {
	items := make([]LineItem, len(d.Items))
	copy(items, d.Items)
	d.Items = items
	return d
}

// Action is a draft transition
type Action interface {
	apply(Draft) (Draft, error)
}

// CustomerField names an editable customer attribute
type CustomerField string

// Customer fields accepted by SetCustomerField
const (
	FieldName    CustomerField = "name"
	FieldAddress CustomerField = "address"
	FieldGSTNo   CustomerField = "gstNo"
)

// SetCustomerField replaces one customer attribute. Values are checked at
// commit, not here.
type SetCustomerField struct {
	Field CustomerField
	Value string
}

func (a SetCustomerField) apply(d Draft) (Draft, error) {
	switch a.Field {
	case FieldName:
		d.Customer.Name = a.Value
	case FieldAddress:
		d.Customer.Address = a.Value
	case FieldGSTNo:
		d.Customer.GSTNo = a.Value
	default:
		return d, shared.NewValidationError(fmt.Sprintf("Unknown customer field %q", a.Field))
	}
	return d, nil
}

// AddItem appends a priced line
type AddItem struct {
	Candidate LineItemInput
}

func (a AddItem) apply(d Draft) (Draft, error) {
	c := a.Candidate
	if strings.TrimSpace(c.Description) == "" || c.Quantity <= 0 || !c.Rate.IsPositive() {
		return d, shared.NewValidationError(MsgInvalidItem)
	}

	item, err := NewLineItem(c)
	if err != nil {
		return d, err
	}

	d.Items = append(d.Items, item)
	d.SubTotal = d.SubTotal.Add(item.Amount)
	d.Total = d.Total.Add(item.Total)
	return d, nil
}

// RemoveItem drops the line at Index. An out-of-range index is a no-op.
type RemoveItem struct {
	Index int
}

func (a RemoveItem) apply(d Draft) (Draft, error) {
	if a.Index < 0 || a.Index >= len(d.Items) {
		return d, nil
	}

	removed := d.Items[a.Index]
	d.Items = append(d.Items[:a.Index], d.Items[a.Index+1:]...)
	d.SubTotal = d.SubTotal.Sub(removed.Amount)
	d.Total = d.Total.Sub(removed.Total)
	return d, nil
}

// SetBillNo overwrites the bill number placeholder
type SetBillNo struct {
	Value string
}

func (a SetBillNo) apply(d Draft) (Draft, error) {
	d.BillNo = a.Value
	return d, nil
}

// Reduce applies action to state and returns the next state.
// On error the original state is returned unchanged.
func Reduce(state Draft, action Action) (Draft, error) {
	if action == nil {
		return state, shared.NewValidationError("Action is required")
	}
	next, err := action.apply(state.clone())
	if err != nil {
		return state, err
	}
	return next, nil
}

// ReduceAll folds actions over state, stopping at the first error
func ReduceAll(state Draft, actions ...Action) (Draft, error) {
	for _, action := range actions {
		next, err := Reduce(state, action)
		if err != nil {
			return state, err
		}
		state = next
	}
	return state, nil
}
