package handler

import (
	"net/http"
	"time"

	"catalog-service/pkg/database"
	"catalog-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthHandler reports liveness and, on request, database reachability
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// HealthCheck handles GET /health. ?check=db also pings the database.
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	log := logger.FromEcho(c)

	response := map[string]interface{}{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	}

	if c.QueryParam("check") == "db" {
		if err := database.Ping(h.db); err != nil {
			log.Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			response["db_error"] = "Failed to ping database"
			return c.JSON(http.StatusServiceUnavailable, response)
		}
		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
