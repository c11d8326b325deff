package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/SscSPs/cari_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

// healthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.Envelope
// @Failure 503 {object} dto.Envelope
// @Router /health [get]
func healthCheck(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, dto.OK(healthResponse{Status: "ok"}))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			middleware.GetLoggerFromCtx(c.Request.Context()).Error("Health check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, dto.Envelope{
				Success: false,
				Data:    healthResponse{Status: "degraded", Database: "unreachable"},
				Error:   "database unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, dto.OK(healthResponse{Status: "ok", Database: "ok"}))
	}
}
