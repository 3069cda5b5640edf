package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/catering/gstbill/internal/interfaces/http/dto"
	"github.com/catering/gstbill/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// healthCheckTimeout bounds each dependency probe
const healthCheckTimeout = 2 * time.Second

// HealthCheck probes one dependency
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// HealthHandler reports service and dependency status
type HealthHandler struct {
	BaseHandler
	version   string
	startTime time.Time
	checks    []HealthCheck
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{
		version:   version,
		startTime: time.Now(),
		checks:    checks,
	}
}

// HealthResponse is the body of GET /health
// @name HandlerHealthResponse
type HealthResponse struct {
	Status       string            `json:"status" example:"healthy"`
	Version      string            `json:"version" example:"1.0.0"`
	Uptime       string            `json:"uptime" example:"1h30m45s"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health godoc
// @ID           getHealth
// @Summary      Service health
// @Description  Pings the database and, when configured, Redis. Any failing dependency turns the answer into 503.
// @Tags         system
// @Produce      json
// @Success      200 {object} APIResponse[HealthResponse]
// @Failure      503 {object} APIResponse[HealthResponse]
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	resp := HealthResponse{
		Status:       "healthy",
		Version:      h.version,
		Uptime:       time.Since(h.startTime).Round(time.Second).String(),
		Dependencies: make(map[string]string, len(h.checks)),
	}

	status := http.StatusOK
	for _, check := range h.checks {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
		err := check.Check(ctx)
		cancel()

		if err != nil {
			resp.Dependencies[check.Name] = "down: " + err.Error()
			resp.Status = "unhealthy"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Dependencies[check.Name] = "up"
	}

	if status != http.StatusOK {
		c.JSON(status, dto.Response{
			Success: false,
			Data:    resp,
			Error: &dto.ErrorInfo{
				Code:      dto.ErrCodeUnavailable,
				Message:   "One or more dependencies are down",
				RequestID: middleware.GetRequestID(c),
			},
		})
		return
	}
	c.JSON(status, dto.NewSuccessResponse(resp))
}
