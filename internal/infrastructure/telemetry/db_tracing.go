package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultSlowQueryThreshold marks queries slower than this on their span
const DefaultSlowQueryThreshold = 200 * time.Millisecond

// DBTracingConfig controls GORM instrumentation
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool // keep bound variables in db.statement
	SlowQueryThresh time.Duration
	DBSystem        string // postgresql, sqlite
}

type queryStartKey struct{}

// RegisterDBTracing installs the otelgorm plugin on db and adds callbacks
// that annotate each statement span with row counts and slow-query markers.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled")
		return nil
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultSlowQueryThreshold
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	if err := registerQueryCallbacks(db, markQueryStart, annotateQuerySpan(cfg.SlowQueryThresh)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Bool("log_full_sql", cfg.LogFullSQL),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

// registerQueryCallbacks hooks before and after every statement kind
func registerQueryCallbacks(db *gorm.DB, before, after func(*gorm.DB)) error {
	cb := db.Callback()
	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("gstbill:before_create", before) },
		func() error { return cb.Create().After("gorm:create").Register("gstbill:after_create", after) },
		func() error { return cb.Query().Before("gorm:query").Register("gstbill:before_query", before) },
		func() error { return cb.Query().After("gorm:query").Register("gstbill:after_query", after) },
		func() error { return cb.Update().Before("gorm:update").Register("gstbill:before_update", before) },
		func() error { return cb.Update().After("gorm:update").Register("gstbill:after_update", after) },
		func() error { return cb.Delete().Before("gorm:delete").Register("gstbill:before_delete", before) },
		func() error { return cb.Delete().After("gorm:delete").Register("gstbill:after_delete", after) },
		func() error { return cb.Row().Before("gorm:row").Register("gstbill:before_row", before) },
		func() error { return cb.Row().After("gorm:row").Register("gstbill:after_row", after) },
		func() error { return cb.Raw().Before("gorm:raw").Register("gstbill:before_raw", before) },
		func() error { return cb.Raw().After("gorm:raw").Register("gstbill:after_raw", after) },
	}
	for _, register := range steps {
		if err := register(); err != nil {
			return err
		}
	}
	return nil
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func annotateQuerySpan(threshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.RecordError(db.Error)
			span.SetStatus(codes.Error, db.Error.Error())
		}

		start, ok := ctx.Value(queryStartKey{}).(time.Time)
		if !ok {
			return
		}
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
