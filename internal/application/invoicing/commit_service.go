package invoicing

import (
	"context"
	"fmt"
	"time"

	"github.com/catering/gstbill/internal/domain/invoice"
	"github.com/catering/gstbill/internal/domain/shared"
	"github.com/catering/gstbill/internal/infrastructure/logger"
	"github.com/catering/gstbill/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Commit defaults
const (
	DefaultMaxCommitAttempts = 10
	DefaultIdempotencyTTL    = 24 * time.Hour
)

// CommitService turns a draft into a stored invoice: validate, merge the
// item descriptions into the catalog, allocate a bill number and persist.
//
// The catalog merge and the invoice insert are not one transaction. A
// failure after the merge leaves the catalog updated without an invoice;
// the merge is idempotent, so retrying the commit converges.
type CommitService struct {
	repo        invoice.InvoiceRepository
	allocator   invoice.BillNumberAllocator
	catalog     *CatalogService
	idempotency shared.IdempotencyStore
	metrics     *telemetry.InvoiceMetrics

	maxAttempts    int
	idempotencyTTL time.Duration
	now            func() time.Time
}

// CommitServiceOption configures a CommitService
type CommitServiceOption func(*CommitService)

// WithMaxAttempts bounds the allocate-and-insert retries
func WithMaxAttempts(n int) CommitServiceOption {
	return func(s *CommitService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithIdempotencyStore enables Idempotency-Key handling
func WithIdempotencyStore(store shared.IdempotencyStore, ttl time.Duration) CommitServiceOption {
	return func(s *CommitService) {
		s.idempotency = store
		if ttl > 0 {
			s.idempotencyTTL = ttl
		}
	}
}

// WithMetrics records commit outcomes
func WithMetrics(m *telemetry.InvoiceMetrics) CommitServiceOption {
	return func(s *CommitService) {
		s.metrics = m
	}
}

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) CommitServiceOption {
	return func(s *CommitService) {
		s.now = now
	}
}

// NewCommitService creates a CommitService
func NewCommitService(
	repo invoice.InvoiceRepository,
	allocator invoice.BillNumberAllocator,
	catalogService *CatalogService,
	opts ...CommitServiceOption,
) *CommitService {
	s := &CommitService{
		repo:           repo,
		allocator:      allocator,
		catalog:        catalogService,
		maxAttempts:    DefaultMaxCommitAttempts,
		idempotencyTTL: DefaultIdempotencyTTL,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CommitOption adjusts a single commit
type CommitOption func(*commitOptions)

type commitOptions struct {
	date time.Time
}

// WithDate sets the invoice date instead of the current time
func WithDate(date time.Time) CommitOption {
	return func(o *commitOptions) {
		if !date.IsZero() {
			o.date = date
		}
	}
}

// Commit validates draft and stores it as a new invoice under a freshly
// allocated bill number. The draft's own bill number is only a placeholder.
//
// Errors are a ValidationError before anything is written, a ConflictError
// when no free bill number could be reserved within the attempt bound, or a
// PersistenceError for storage failures.
func (s *CommitService) Commit(ctx context.Context, draft invoice.Draft, opts ...CommitOption) (*invoice.Invoice, error) {
	started := time.Now()
	o := commitOptions{date: s.now()}
	for _, opt := range opts {
		opt(&o)
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "invoice", "commit",
		attribute.Int(telemetry.SpanAttrItemCount, len(draft.Items)))
	defer span.End()
	log := logger.L(ctx)

	var (
		inv *invoice.Invoice
		err error
	)
	telemetry.WithOperationLabel(ctx, "invoice.commit", func(ctx context.Context) {
		inv, err = s.commit(ctx, draft, o)
	})

	switch {
	case err == nil:
		telemetry.SetAttributes(span,
			telemetry.SpanAttrBillNo, inv.BillNo,
			telemetry.SpanAttrInvoiceID, inv.ID.String(),
		)
		s.metrics.RecordCommit(ctx, telemetry.CommitOutcomeCommitted, time.Since(started))
		s.metrics.RecordInvoiceTotal(ctx, inv.Total)
		log.Info("Invoice committed",
			zap.String("bill_no", inv.BillNo),
			zap.String("invoice_id", inv.ID.String()),
			zap.String("total", inv.Total.StringFixed(2)),
		)
	case shared.IsValidation(err):
		s.metrics.RecordCommit(ctx, telemetry.CommitOutcomeInvalid, time.Since(started))
	case shared.IsConflict(err):
		telemetry.RecordError(span, err)
		s.metrics.RecordCommit(ctx, telemetry.CommitOutcomeExhausted, time.Since(started))
		log.Warn("Invoice commit gave up on bill number allocation", zap.Error(err))
	default:
		telemetry.RecordError(span, err)
		s.metrics.RecordCommit(ctx, telemetry.CommitOutcomeFailed, time.Since(started))
		log.Error("Invoice commit failed", zap.Error(err))
	}
	return inv, err
}

func (s *CommitService) commit(ctx context.Context, draft invoice.Draft, o commitOptions) (*invoice.Invoice, error) {
	log := logger.L(ctx)

	customer := draft.Customer.Trimmed()
	if err := invoice.ValidateForCommit(customer, len(draft.Items)); err != nil {
		return nil, err
	}
	items, err := invoice.RecomputeItems(draft.Items)
	if err != nil {
		return nil, err
	}

	if _, err := s.catalog.Add(ctx, invoice.Draft{Items: items}.Descriptions()); err != nil {
		return nil, err
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		billNo, err := s.allocator.Next(ctx)
		if err != nil {
			return nil, err
		}
		if attempt == 1 && draft.BillNo != "" && draft.BillNo != billNo {
			log.Debug("Draft bill number superseded",
				zap.String("placeholder", draft.BillNo),
				zap.String("bill_no", billNo),
			)
		}

		if err := s.allocator.Reserve(ctx, billNo); err != nil {
			if shared.IsConflict(err) {
				s.retrying(ctx, billNo, attempt, "reserve")
				continue
			}
			return nil, err
		}

		inv, err := invoice.NewInvoice(billNo, o.date, customer, items)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, inv); err != nil {
			if shared.IsConflict(err) {
				s.retrying(ctx, billNo, attempt, "insert")
				continue
			}
			return nil, err
		}
		return inv, nil
	}

	return nil, shared.NewConflictError(
		fmt.Sprintf("Could not allocate a free bill number after %d attempts, please retry", s.maxAttempts))
}

func (s *CommitService) retrying(ctx context.Context, billNo string, attempt int, stage string) {
	s.metrics.RecordBillNumberConflict(ctx)
	telemetry.AddEvent(trace.SpanFromContext(ctx), "bill_number_conflict",
		telemetry.SpanAttrBillNo, billNo,
		telemetry.SpanAttrAttempt, attempt,
		"stage", stage,
	)
	logger.L(ctx).Warn("Bill number taken, retrying",
		zap.String("bill_no", billNo),
		zap.Int("attempt", attempt),
		zap.String("stage", stage),
	)
}

// CommitIdempotent commits draft at most once per key. A repeat of a
// completed key returns the stored invoice with replayed set; a repeat while
// the first request is still running is a ConflictError. A failed commit
// frees the key. An empty key, or no configured store, is a plain Commit.
func (s *CommitService) CommitIdempotent(ctx context.Context, key string, draft invoice.Draft, opts ...CommitOption) (inv *invoice.Invoice, replayed bool, err error) {
	if key == "" || s.idempotency == nil {
		inv, err = s.Commit(ctx, draft, opts...)
		return inv, false, err
	}

	claimed, err := s.idempotency.Claim(ctx, key, s.idempotencyTTL)
	if err != nil {
		return nil, false, shared.NewPersistenceError("Failed to check idempotency key", err)
	}
	if !claimed {
		inv, err = s.replay(ctx, key)
		return inv, err == nil, err
	}

	inv, err = s.Commit(ctx, draft, opts...)
	if err != nil {
		// the request may already be cancelled; the claim must still go
		if relErr := s.idempotency.Release(context.WithoutCancel(ctx), key); relErr != nil {
			logger.L(ctx).Warn("Failed to release idempotency key", zap.Error(relErr))
		}
		return nil, false, err
	}

	if err := s.idempotency.Complete(context.WithoutCancel(ctx), key, inv.ID.String(), s.idempotencyTTL); err != nil {
		logger.L(ctx).Warn("Failed to record idempotency key result",
			zap.String("invoice_id", inv.ID.String()), zap.Error(err))
	}
	return inv, false, nil
}

func (s *CommitService) replay(ctx context.Context, key string) (*invoice.Invoice, error) {
	resultID, found, err := s.idempotency.Lookup(ctx, key)
	if err != nil {
		return nil, shared.NewPersistenceError("Failed to check idempotency key", err)
	}
	if !found || resultID == "" {
		return nil, shared.NewConflictError("A request with this Idempotency-Key is already in progress")
	}

	id, err := uuid.Parse(resultID)
	if err != nil {
		return nil, shared.NewPersistenceError("Corrupt idempotency record", err)
	}
	inv, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCommit(ctx, telemetry.CommitOutcomeReplayed, 0)
	logger.L(ctx).Info("Replayed invoice commit",
		zap.String("bill_no", inv.BillNo),
		zap.String("invoice_id", inv.ID.String()),
	)
	return inv, nil
}
