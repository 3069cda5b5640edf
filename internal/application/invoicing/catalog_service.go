package invoicing

import (
	"context"

	"github.com/catering/gstbill/internal/domain/catalog"
	"github.com/catering/gstbill/internal/infrastructure/logger"
	"github.com/catering/gstbill/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// CatalogService maintains the set of item descriptions used for
// autocomplete.
type CatalogService struct {
	store   catalog.Store
	backend string
	metrics *telemetry.InvoiceMetrics
}

// NewCatalogService creates a CatalogService over store. backend names the
// store in logs and metrics.
func NewCatalogService(store catalog.Store, backend string, metrics *telemetry.InvoiceMetrics) *CatalogService {
	return &CatalogService{store: store, backend: backend, metrics: metrics}
}

// Add merges descriptions into the catalog and returns how many were new.
// Descriptions are canonicalized first, so adding the same set twice, or two
// sets in either order, ends in the same catalog.
func (s *CatalogService) Add(ctx context.Context, descriptions []string) (int, error) {
	entries := catalog.CanonicalSet(descriptions)
	if len(entries) == 0 {
		return 0, nil
	}

	added, err := s.store.AddAll(ctx, entries)
	if err != nil {
		return 0, err
	}

	s.metrics.RecordCatalogAdded(ctx, s.backend, added)
	if added > 0 {
		logger.L(ctx).Debug("Item catalog updated",
			zap.String("backend", s.backend),
			zap.Int("offered", len(entries)),
			zap.Int("added", added),
		)
	}
	return added, nil
}

// Suggest returns catalog entries starting with prefix. Prefixes shorter
// than catalog.MinSuggestPrefix yield an empty list.
func (s *CatalogService) Suggest(ctx context.Context, prefix string) ([]string, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "suggest",
		attribute.String(telemetry.SpanAttrCatalogPrefix, prefix))
	defer span.End()

	canonical := catalog.Canonicalize(prefix)
	if !catalog.Suggestible(canonical) {
		return []string{}, nil
	}

	matches, err := s.store.MatchPrefix(ctx, canonical)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if matches == nil {
		matches = []string{}
	}
	return matches, nil
}

// List returns the whole catalog
func (s *CatalogService) List(ctx context.Context) ([]string, error) {
	entries, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []string{}
	}
	return entries, nil
}
