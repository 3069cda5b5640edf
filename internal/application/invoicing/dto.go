package invoicing

import (
	"strings"
	"time"

	"github.com/catering/gstbill/internal/domain/invoice"
	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerRequest carries the customer block of an invoice. Presence is
// checked at commit with the clerk-facing messages, not by binding tags.
type CustomerRequest struct {
	Name    string `json:"name" binding:"max=200"`
	Address string `json:"address" binding:"max=2000"`
	GSTNo   string `json:"gstNo" binding:"max=32"`
}

// LineItemRequest is one clerk-entered line. Amount, taxes and total are
// always derived server-side.
type LineItemRequest struct {
	Description string           `json:"description" binding:"max=500"`
	HSNCode     string           `json:"hsnCode" binding:"max=20"`
	Quantity    int              `json:"quantity"`
	Rate        decimal.Decimal  `json:"rate"`
	IGST        *decimal.Decimal `json:"igst"`
}

func (r LineItemRequest) input() invoice.LineItemInput {
	in := invoice.LineItemInput{
		Description: r.Description,
		HSNCode:     r.HSNCode,
		Quantity:    r.Quantity,
		Rate:        r.Rate,
		IGST:        decimal.Zero,
	}
	if r.IGST != nil {
		in.IGST = *r.IGST
	}
	return in
}

// CreateInvoiceRequest is the body of POST /invoices and /invoices/preview.
// BillNo is the client's placeholder; the server assigns the real number.
type CreateInvoiceRequest struct {
	BillNo   string            `json:"billNo" binding:"max=50"`
	Date     *time.Time        `json:"date"`
	Customer CustomerRequest   `json:"customer"`
	Items    []LineItemRequest `json:"items" binding:"max=500,dive"`
}

// UpdateInvoiceRequest is the body of PUT /invoices/{id}
type UpdateInvoiceRequest struct {
	BillNo   string            `json:"billNo" binding:"max=50"`
	Date     *time.Time        `json:"date"`
	Customer CustomerRequest   `json:"customer"`
	Items    []LineItemRequest `json:"items" binding:"max=500,dive"`
}

// ListInvoicesQuery holds the query string of GET /invoices.
// From and To accept YYYY-MM-DD or RFC 3339; a bare date for To covers the
// whole day.
type ListInvoicesQuery struct {
	BillNo       string `form:"billNo" binding:"max=50"`
	CustomerName string `form:"customerName" binding:"max=200"`
	GSTNo        string `form:"gstNo" binding:"max=32"`
	From         string `form:"from"`
	To           string `form:"to"`
	Page         int    `form:"page" binding:"omitempty,min=1"`
	PageSize     int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	SortBy       string `form:"sort_by" binding:"omitempty,oneof=date bill_seq customer_name total created_at updated_at"`
	SortOrder    string `form:"sort_order" binding:"omitempty,oneof=asc desc ASC DESC"`
}

const dateOnly = "2006-01-02"

// ToFilter converts the query into a repository filter
func (q ListInvoicesQuery) ToFilter() (invoice.ListFilter, error) {
	f := invoice.ListFilter{
		Filter:       shared.Filter{Page: q.Page, PageSize: q.PageSize},
		BillNo:       q.BillNo,
		CustomerName: q.CustomerName,
		GSTNo:        q.GSTNo,
		SortBy:       q.SortBy,
		SortOrder:    q.SortOrder,
	}

	from, _, err := parseBound(q.From, "from")
	if err != nil {
		return f, err
	}
	to, bare, err := parseBound(q.To, "to")
	if err != nil {
		return f, err
	}
	if to != nil && bare {
		end := to.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return f, shared.NewValidationError("from must not be after to")
	}
	f.From, f.To = from, to
	return f, nil
}

func parseBound(value, name string) (*time.Time, bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, false, nil
	}
	if t, err := time.Parse(dateOnly, value); err == nil {
		return &t, true, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, false, shared.NewValidationError(name + " must be a date (YYYY-MM-DD) or RFC 3339 timestamp")
	}
	return &t, false, nil
}

// CustomerResponse is the customer block of an invoice
type CustomerResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	GSTNo   string `json:"gstNo"`
}

// LineItemResponse is one priced line
type LineItemResponse struct {
	Description string          `json:"description"`
	HSNCode     string          `json:"hsnCode"`
	Quantity    int             `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	CGST        decimal.Decimal `json:"cgst"`
	SGST        decimal.Decimal `json:"sgst"`
	IGST        decimal.Decimal `json:"igst"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse represents a stored invoice in API responses
type InvoiceResponse struct {
	ID        uuid.UUID          `json:"id"`
	BillNo    string             `json:"billNo"`
	Date      time.Time          `json:"date"`
	Customer  CustomerResponse   `json:"customer"`
	Items     []LineItemResponse `json:"items"`
	SubTotal  decimal.Decimal    `json:"subTotal"`
	Total     decimal.Decimal    `json:"total"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// DraftResponse is a computed, unsaved invoice
type DraftResponse struct {
	BillNo   string             `json:"billNo"`
	Customer CustomerResponse   `json:"customer"`
	Items    []LineItemResponse `json:"items"`
	SubTotal decimal.Decimal    `json:"subTotal"`
	Total    decimal.Decimal    `json:"total"`
}

// NextBillNumberResponse is the body of GET /next-bill-number
type NextBillNumberResponse struct {
	BillNo string `json:"billNo"`
}

// CatalogResponse lists item catalog entries
type CatalogResponse struct {
	Items []string `json:"items"`
}

// ToInvoiceResponse converts a domain invoice
func ToInvoiceResponse(inv *invoice.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:        inv.ID,
		BillNo:    inv.BillNo,
		Date:      inv.Date,
		Customer:  toCustomerResponse(inv.Customer),
		Items:     toLineItemResponses(inv.Items),
		SubTotal:  inv.SubTotal,
		Total:     inv.Total,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
}

// ToInvoiceResponses converts a page of invoices
func ToInvoiceResponses(invoices []invoice.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		out[i] = ToInvoiceResponse(&invoices[i])
	}
	return out
}

// ToDraftResponse converts a draft
func ToDraftResponse(d invoice.Draft) DraftResponse {
	return DraftResponse{
		BillNo:   d.BillNo,
		Customer: toCustomerResponse(d.Customer),
		Items:    toLineItemResponses(d.Items),
		SubTotal: d.SubTotal,
		Total:    d.Total,
	}
}

func toCustomerResponse(c invoice.Customer) CustomerResponse {
	return CustomerResponse{Name: c.Name, Address: c.Address, GSTNo: c.GSTNo}
}

func toLineItemResponses(items []invoice.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, len(items))
	for i, li := range items {
		out[i] = LineItemResponse{
			Description: li.Description,
			HSNCode:     li.HSNCode,
			Quantity:    li.Quantity,
			Rate:        li.Rate,
			Amount:      li.Amount,
			CGST:        li.CGST,
			SGST:        li.SGST,
			IGST:        li.IGST,
			Total:       li.Total,
		}
	}
	return out
}
