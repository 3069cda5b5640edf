package models

import (
	"time"

	"github.com/catering/gstbill/internal/domain/invoice"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	BaseModel
	BillNo          string             `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_bill_no"`
	BillSeq         int64              `gorm:"not null;default:0;index:idx_invoices_bill_seq"`
	Date            time.Time          `gorm:"not null;index:idx_invoices_date"`
	CustomerName    string             `gorm:"column:customer_name;type:varchar(200);not null;default:''"`
	CustomerAddress string             `gorm:"column:customer_address;type:text;not null;default:''"`
	CustomerGSTNo   string             `gorm:"column:customer_gst_no;type:varchar(32);not null;default:''"`
	SubTotal        decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0"`
	Total           decimal.Decimal    `gorm:"type:decimal(14,2);not null;default:0"`
	Items           []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice.
func (m *InvoiceModel) ToDomain() *invoice.Invoice {
	inv := &invoice.Invoice{
		BaseEntity: m.BaseModel.ToDomain(),
		BillNo:     m.BillNo,
		Date:       m.Date,
		Customer: invoice.Customer{
			Name:    m.CustomerName,
			Address: m.CustomerAddress,
			GSTNo:   m.CustomerGSTNo,
		},
		SubTotal: m.SubTotal,
		Total:    m.Total,
		Items:    make([]invoice.LineItem, len(m.Items)),
	}
	for i := range m.Items {
		inv.Items[i] = m.Items[i].ToDomain()
	}
	return inv
}

// FromDomain populates the persistence model from a domain Invoice.
// Items are numbered in slice order.
func (m *InvoiceModel) FromDomain(inv *invoice.Invoice) {
	m.FromDomainBaseEntity(inv.BaseEntity)
	m.BillNo = inv.BillNo
	m.BillSeq = inv.BillSequence()
	m.Date = inv.Date.UTC()
	m.CustomerName = inv.Customer.Name
	m.CustomerAddress = inv.Customer.Address
	m.CustomerGSTNo = inv.Customer.GSTNo
	m.SubTotal = inv.SubTotal
	m.Total = inv.Total
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = InvoiceItemModelFromDomain(inv.ID, i+1, item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice.
func InvoiceModelFromDomain(inv *invoice.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for one invoice line.
type InvoiceItemModel struct {
	ID          uint64          `gorm:"primaryKey;autoIncrement"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_invoice_items_line,priority:1"`
	LineNo      int             `gorm:"not null;uniqueIndex:idx_invoice_items_line,priority:2"`
	Description string          `gorm:"type:varchar(500);not null"`
	HSNCode     string          `gorm:"column:hsn_code;type:varchar(20);not null;default:''"`
	Quantity    int             `gorm:"not null"`
	Rate        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	CGST        decimal.Decimal `gorm:"column:cgst;type:decimal(14,2);not null"`
	SGST        decimal.Decimal `gorm:"column:sgst;type:decimal(14,2);not null"`
	IGST        decimal.Decimal `gorm:"column:igst;type:decimal(14,2);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(14,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain LineItem.
func (m *InvoiceItemModel) ToDomain() invoice.LineItem {
	return invoice.LineItem{
		Description: m.Description,
		HSNCode:     m.HSNCode,
		Quantity:    m.Quantity,
		Rate:        m.Rate,
		Amount:      m.Amount,
		CGST:        m.CGST,
		SGST:        m.SGST,
		IGST:        m.IGST,
		Total:       m.Total,
	}
}

// InvoiceItemModelFromDomain creates the persistence model for line lineNo.
func InvoiceItemModelFromDomain(invoiceID uuid.UUID, lineNo int, item invoice.LineItem) InvoiceItemModel {
	return InvoiceItemModel{
		InvoiceID:   invoiceID,
		LineNo:      lineNo,
		Description: item.Description,
		HSNCode:     item.HSNCode,
		Quantity:    item.Quantity,
		Rate:        item.Rate,
		Amount:      item.Amount,
		CGST:        item.CGST,
		SGST:        item.SGST,
		IGST:        item.IGST,
		Total:       item.Total,
	}
}
