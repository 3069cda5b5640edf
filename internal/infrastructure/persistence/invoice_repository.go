package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/catering/gstbill/internal/domain/invoice"
	"github.com/catering/gstbill/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInvoiceRepository implements invoice.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("line_no ASC")
}

// FindByID finds an invoice by its ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "Invoice not found", "", "Failed to load invoice")
	}
	return model.ToDomain(), nil
}

// FindByBillNo finds an invoice by its bill number
func (r *GormInvoiceRepository) FindByBillNo(ctx context.Context, billNo string) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("bill_no = ?", billNo).
		First(&model).Error; err != nil {
		return nil, translateError(err,
			fmt.Sprintf("Invoice with bill number %s not found", billNo), "", "Failed to load invoice")
	}
	return model.ToDomain(), nil
}

// FindAll lists invoices matching filter and returns the unpaged total
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter invoice.ListFilter) ([]invoice.Invoice, int64, error) {
	page := filter.Filter.Normalize()
	base := func() *gorm.DB {
		return r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}), filter)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "", "", "Failed to count invoices")
	}

	sortField := ValidateSortField(filter.SortBy, InvoiceSortFields, "date")
	sortOrder := ValidateSortOrder(filter.SortOrder)

	var rows []models.InvoiceModel
	if err := base().
		Preload("Items", orderedItems).
		Order(sortField + " " + sortOrder).
		Order("bill_seq " + sortOrder).
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, translateError(err, "", "", "Failed to list invoices")
	}

	invoices := make([]invoice.Invoice, len(rows))
	for i := range rows {
		invoices[i] = *rows[i].ToDomain()
	}
	return invoices, total, nil
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter invoice.ListFilter) *gorm.DB {
	if billNo := strings.TrimSpace(filter.BillNo); billNo != "" {
		query = query.Where("bill_no = ?", billNo)
	}
	if name := strings.TrimSpace(filter.CustomerName); name != "" {
		query = query.Where(`LOWER(customer_name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(name))+"%")
	}
	if gstNo := strings.TrimSpace(filter.GSTNo); gstNo != "" {
		query = query.Where("customer_gst_no = ?", gstNo)
	}
	if filter.From != nil {
		query = query.Where("date >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		query = query.Where("date <= ?", filter.To.UTC())
	}
	return query
}

// Create inserts a new invoice with its items
func (r *GormInvoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(model).Error
	})
	return translateError(err, "",
		fmt.Sprintf("Bill number %s is already taken", inv.BillNo), "Failed to save invoice")
}

// Update replaces the invoice row and all of its items
func (r *GormInvoiceRepository) Update(ctx context.Context, inv *invoice.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.InvoiceModel{}).
			Where("id = ?", model.ID).
			Updates(map[string]any{
				"bill_no":          model.BillNo,
				"bill_seq":         model.BillSeq,
				"date":             model.Date,
				"customer_name":    model.CustomerName,
				"customer_address": model.CustomerAddress,
				"customer_gst_no":  model.CustomerGSTNo,
				"sub_total":        model.SubTotal,
				"total":            model.Total,
				"updated_at":       model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Where("invoice_id = ?", model.ID).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
	return translateError(err, "Invoice not found",
		fmt.Sprintf("Bill number %s is already taken", inv.BillNo), "Failed to update invoice")
}

// Delete removes an invoice with its items and returns it as it was
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	var model models.InvoiceModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items", orderedItems).First(&model, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItemModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.InvoiceModel{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, translateError(err, "Invoice not found", "", "Failed to delete invoice")
	}
	return model.ToDomain(), nil
}

// MaxBillSequence returns the largest numeric bill number stored, or 0
func (r *GormInvoiceRepository) MaxBillSequence(ctx context.Context) (int64, error) {
	var maxSeq int64
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("COALESCE(MAX(bill_seq), 0)").
		Scan(&maxSeq).Error; err != nil {
		return 0, translateError(err, "", "", "Failed to read bill numbers")
	}
	return maxSeq, nil
}

// Ensure GormInvoiceRepository implements invoice.InvoiceRepository
var _ invoice.InvoiceRepository = (*GormInvoiceRepository)(nil)
