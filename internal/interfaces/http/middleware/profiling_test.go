package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"runtime/pprof"
	"testing"

	"github.com/catering/gstbill/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestDefaultProfilingConfig(t *testing.T) {
	cfg := DefaultProfilingConfig()

	assert.True(t, cfg.Enabled)
	assert.Contains(t, cfg.SkipPathPrefixes, "/health")
	assert.Contains(t, cfg.SkipPathPrefixes, "/swagger")
}

func labelsOf(ctx context.Context) (method, route string) {
	method, _ = pprof.Label(ctx, telemetry.ProfilingLabelMethod)
	route, _ = pprof.Label(ctx, telemetry.ProfilingLabelRoute)
	return method, route
}

func TestProfiling(t *testing.T) {
	var gotMethod, gotRoute string
	router := gin.New()
	router.Use(Profiling(DefaultProfilingConfig()))
	handler := func(c *gin.Context) {
		gotMethod, gotRoute = labelsOf(c.Request.Context())
		c.Status(http.StatusOK)
	}
	router.GET("/api/v1/invoices/:id", handler)
	router.GET("/health", handler)

	t.Run("labels api routes", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/invoices/42", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "GET", gotMethod)
		assert.Equal(t, "/api/v1/invoices/:id", gotRoute)
	})

	t.Run("skips health", func(t *testing.T) {
		gotMethod, gotRoute = "x", "x"
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Empty(t, gotMethod)
		assert.Empty(t, gotRoute)
	})
}

func TestProfiling_Disabled(t *testing.T) {
	called := false
	router := gin.New()
	router.Use(Profiling(ProfilingConfig{Enabled: false}))
	router.GET("/x", func(c *gin.Context) {
		called = true
		method, _ := labelsOf(c.Request.Context())
		assert.Empty(t, method)
		c.Status(http.StatusOK)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.True(t, called)
}
