package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// CommitOutcome labels how a commit attempt ended
type CommitOutcome string

const (
	CommitOutcomeCommitted CommitOutcome = "committed"
	CommitOutcomeReplayed  CommitOutcome = "replayed"
	CommitOutcomeInvalid   CommitOutcome = "invalid"
	CommitOutcomeExhausted CommitOutcome = "exhausted"
	CommitOutcomeFailed    CommitOutcome = "failed"
)

// Metric attribute keys
var (
	AttrOutcome = attribute.Key("outcome")
	AttrBackend = attribute.Key("backend")
)

// InvoiceMetrics records billing activity. A nil *InvoiceMetrics is valid
// and records nothing.
type InvoiceMetrics struct {
	commits         *Counter
	billNoConflicts *Counter
	catalogAdded    *Counter
	commitDuration  *Histogram
	invoiceAmount   *Histogram
}

// NewInvoiceMetrics registers the billing instruments on meter
func NewInvoiceMetrics(meter metric.Meter) (*InvoiceMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	var (
		m   InvoiceMetrics
		err error
	)
	if m.commits, err = NewCounter(meter,
		"gstbill_invoice_commit_total", "Invoice commit attempts by outcome", "{commit}"); err != nil {
		return nil, err
	}
	if m.billNoConflicts, err = NewCounter(meter,
		"gstbill_bill_number_conflict_total", "Bill number reservations lost to a concurrent commit", "{conflict}"); err != nil {
		return nil, err
	}
	if m.catalogAdded, err = NewCounter(meter,
		"gstbill_catalog_entries_added_total", "New item catalog entries", "{entry}"); err != nil {
		return nil, err
	}
	if m.commitDuration, err = NewHistogram(meter, HistogramOpts{
		Name:        "gstbill_invoice_commit_duration_seconds",
		Description: "Time spent committing an invoice",
		Unit:        "s",
		Boundaries:  CommitDurationBuckets,
	}); err != nil {
		return nil, err
	}
	if m.invoiceAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "gstbill_invoice_total_amount",
		Description: "Grand total of committed invoices",
		Unit:        "{INR}",
		Boundaries:  InvoiceAmountBuckets,
	}); err != nil {
		return nil, err
	}
	return &m, nil
}

// RecordCommit counts one finished commit and its latency
func (m *InvoiceMetrics) RecordCommit(ctx context.Context, outcome CommitOutcome, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commits.Inc(ctx, AttrOutcome.String(string(outcome)))
	m.commitDuration.RecordDuration(ctx, elapsed, AttrOutcome.String(string(outcome)))
}

// RecordBillNumberConflict counts a lost reservation that triggered a retry
func (m *InvoiceMetrics) RecordBillNumberConflict(ctx context.Context) {
	if m == nil {
		return
	}
	m.billNoConflicts.Inc(ctx)
}

// RecordInvoiceTotal records the grand total of a committed invoice
func (m *InvoiceMetrics) RecordInvoiceTotal(ctx context.Context, total decimal.Decimal) {
	if m == nil {
		return
	}
	m.invoiceAmount.Record(ctx, total.InexactFloat64())
}

// RecordCatalogAdded counts entries newly added to the item catalog
func (m *InvoiceMetrics) RecordCatalogAdded(ctx context.Context, backend string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.catalogAdded.Add(ctx, int64(n), AttrBackend.String(backend))
}
