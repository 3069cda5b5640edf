package invoicing

import (
	"context"
	"errors"
	"fmt"

	"github.com/catering/gstbill/internal/domain/invoice"
	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/catering/gstbill/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InvoiceService handles invoice-related business operations
type InvoiceService struct {
	repo      invoice.InvoiceRepository
	allocator invoice.BillNumberAllocator
	committer *CommitService
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	repo invoice.InvoiceRepository,
	allocator invoice.BillNumberAllocator,
	committer *CommitService,
) *InvoiceService {
	return &InvoiceService{
		repo:      repo,
		allocator: allocator,
		committer: committer,
	}
}

// Create commits a new invoice. replayed is true when idempotencyKey matched
// an earlier completed request and the stored invoice was returned instead.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest, idempotencyKey string) (resp *InvoiceResponse, replayed bool, err error) {
	draft, err := buildDraft(req)
	if err != nil {
		return nil, false, err
	}

	var opts []CommitOption
	if req.Date != nil {
		opts = append(opts, WithDate(*req.Date))
	}

	inv, replayed, err := s.committer.CommitIdempotent(ctx, idempotencyKey, draft, opts...)
	if err != nil {
		return nil, false, err
	}
	out := ToInvoiceResponse(inv)
	return &out, replayed, nil
}

// Preview computes the draft a create request would produce without storing
// anything or touching the bill sequence.
func (s *InvoiceService) Preview(ctx context.Context, req CreateInvoiceRequest) (*DraftResponse, error) {
	draft, err := buildDraft(req)
	if err != nil {
		return nil, err
	}
	if err := draft.Verify(); err != nil {
		// reducer drift; never expected
		logger.L(ctx).Error("Draft totals inconsistent", zap.Error(err))
		return nil, err
	}
	out := ToDraftResponse(draft)
	return &out, nil
}

// buildDraft replays a request through the draft reducer so previews and
// commits price lines the same way.
func buildDraft(req CreateInvoiceRequest) (invoice.Draft, error) {
	draft, err := invoice.ReduceAll(invoice.NewDraft(),
		invoice.SetBillNo{Value: req.BillNo},
		invoice.SetCustomerField{Field: invoice.FieldName, Value: req.Customer.Name},
		invoice.SetCustomerField{Field: invoice.FieldAddress, Value: req.Customer.Address},
		invoice.SetCustomerField{Field: invoice.FieldGSTNo, Value: req.Customer.GSTNo},
	)
	if err != nil {
		return draft, err
	}

	for i, item := range req.Items {
		draft, err = invoice.Reduce(draft, invoice.AddItem{Candidate: item.input()})
		if err != nil {
			return draft, itemError(i, err)
		}
	}
	return draft, nil
}

func itemError(index int, err error) error {
	var de *shared.DomainError
	if errors.As(err, &de) && de.Code == shared.CodeValidation {
		return shared.NewValidationError(fmt.Sprintf("Item %d: %s", index+1, de.Message))
	}
	return err
}

// GetByID retrieves an invoice by ID
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToInvoiceResponse(inv)
	return &out, nil
}

// GetByBillNo retrieves an invoice by bill number
func (s *InvoiceService) GetByBillNo(ctx context.Context, billNo string) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByBillNo(ctx, billNo)
	if err != nil {
		if shared.IsNotFound(err) {
			return nil, shared.NewNotFoundError(fmt.Sprintf("Invoice with bill number %s not found", billNo))
		}
		return nil, err
	}
	out := ToInvoiceResponse(inv)
	return &out, nil
}

// List returns one page of invoices, newest first by default
func (s *InvoiceService) List(ctx context.Context, query ListInvoicesQuery) (shared.Paginated[InvoiceResponse], error) {
	filter, err := query.ToFilter()
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}
	filter.Filter = filter.Filter.Normalize()

	invoices, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}
	return shared.NewPaginated(ToInvoiceResponses(invoices), total, filter.Page, filter.PageSize), nil
}

// Update replaces an invoice's bill number, date, customer and items.
// Lines are re-priced; the item catalog is left alone.
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	items := make([]invoice.LineItem, 0, len(req.Items))
	for i, item := range req.Items {
		li, err := invoice.NewLineItem(item.input())
		if err != nil {
			return nil, itemError(i, err)
		}
		items = append(items, li)
	}

	date := inv.Date
	if req.Date != nil {
		date = *req.Date
	}
	customer := invoice.Customer{
		Name:    req.Customer.Name,
		Address: req.Customer.Address,
		GSTNo:   req.Customer.GSTNo,
	}

	previous := inv.BillNo
	if err := inv.Update(req.BillNo, date, customer, items); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, inv); err != nil {
		return nil, err
	}

	if previous != inv.BillNo {
		logger.L(ctx).Info("Invoice renumbered",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("from", previous),
			zap.String("to", inv.BillNo),
		)
	}
	out := ToInvoiceResponse(inv)
	return &out, nil
}

// Delete removes an invoice and returns it as it was. Its bill number is
// not handed out again.
func (s *InvoiceService) Delete(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("Invoice deleted",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("bill_no", inv.BillNo),
	)
	out := ToInvoiceResponse(inv)
	return &out, nil
}

// NextBillNumber returns the bill number the next commit will try
func (s *InvoiceService) NextBillNumber(ctx context.Context) (*NextBillNumberResponse, error) {
	billNo, err := s.allocator.Next(ctx)
	if err != nil {
		return nil, err
	}
	return &NextBillNumberResponse{BillNo: billNo}, nil
}
