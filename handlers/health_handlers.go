package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vit0-9/whois_api/models"
)

// Version is reported by the health endpoint. Set it with
// -ldflags "-X github.com/vit0-9/whois_api/handlers.Version=...".
var Version = "dev"

type HealthHandler struct {
	started time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{started: time.Now()}
}

// HealthCheckHandler godoc
// @Summary      Health Check
// @Description  Reports that the lookup service is up.
// @Tags         Monitoring
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /api/v1/health [get]
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:  "UP",
		Version: Version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	})
}
