package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/catering/gstbill/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func bodyRouter(limit int64) *gin.Engine {
	router := gin.New()
	router.Use(BodyLimit(limit))
	router.POST("/test", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func TestBodyLimit(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		bodyRouter(10).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("short")))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("declared length too large", func(t *testing.T) {
		w := httptest.NewRecorder()
		bodyRouter(4).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("much too long")))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeRequestTooLarge)
	})

	t.Run("streamed body capped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", io.NopCloser(strings.NewReader("much too long")))
		req.ContentLength = -1
		w := httptest.NewRecorder()
		bodyRouter(4).ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		w := httptest.NewRecorder()
		bodyRouter(0).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("anything goes")))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
