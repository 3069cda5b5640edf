package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/catering/gstbill/internal/application/invoicing"
	"github.com/catering/gstbill/internal/infrastructure/cache"
	"github.com/catering/gstbill/internal/infrastructure/config"
	"github.com/catering/gstbill/internal/infrastructure/persistence"
	"github.com/catering/gstbill/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testAPI wires real services over in-memory SQLite
type testAPI struct {
	engine *gin.Engine
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		SQLitePath:  ":memory:",
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotency.Close() })

	repo := persistence.NewGormInvoiceRepository(db.DB)
	allocator := persistence.NewGormBillNumberAllocator(db.DB)
	catalogService := invoicing.NewCatalogService(persistence.NewGormCatalogStore(db.DB), config.CatalogBackendDatabase, nil)
	committer := invoicing.NewCommitService(repo, allocator, catalogService,
		invoicing.WithIdempotencyStore(idempotency, invoicing.DefaultIdempotencyTTL))
	invoiceHandler := NewInvoiceHandler(invoicing.NewInvoiceService(repo, allocator, committer))
	catalogHandler := NewCatalogHandler(catalogService)

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())

	api := engine.Group("/api/v1")
	api.POST("/invoices", invoiceHandler.Create)
	api.GET("/invoices", invoiceHandler.List)
	api.POST("/invoices/preview", invoiceHandler.Preview)
	api.GET("/invoices/bill/:billNo", invoiceHandler.GetByBillNo)
	api.GET("/invoices/:id", invoiceHandler.Get)
	api.PUT("/invoices/:id", invoiceHandler.Update)
	api.DELETE("/invoices/:id", invoiceHandler.Delete)
	api.GET("/next-bill-number", invoiceHandler.NextBillNumber)
	api.GET("/item-catalog", catalogHandler.List)
	api.GET("/item-catalog/suggestions", catalogHandler.Suggestions)

	return &testAPI{engine: engine}
}

func (a *testAPI) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) APIResponse[T] {
	t.Helper()
	var resp APIResponse[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp
}

func thaliBody() map[string]any {
	return map[string]any{
		"billNo": "1",
		"customer": map[string]any{
			"name":    "Sharma Caterers",
			"address": "12 MG Road, Pune",
			"gstNo":   "27ABCDE1234F1Z5",
		},
		"items": []map[string]any{
			{"description": "Veg Thali", "hsnCode": "996331", "quantity": 2, "rate": "100"},
			{"description": "Lassi", "hsnCode": "996331", "quantity": 1, "rate": "50"},
		},
	}
}
