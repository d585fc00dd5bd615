package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Upstream  string    `json:"upstream"`
}

// UpstreamStatus reports whether the generation client can be used.
type UpstreamStatus interface {
	Enabled() bool
}

type HealthHandler struct {
	serviceName string
	version     string
	upstream    UpstreamStatus
}

func NewHealthHandler(serviceName, version string, upstream UpstreamStatus) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		upstream:    upstream,
	}
}

// HealthCheck never calls the upstream; it only reports whether a key is configured.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	upstream := "disabled"
	if h.upstream != nil && h.upstream.Enabled() {
		upstream = "configured"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Upstream:  upstream,
	})
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
