package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/SscSPs/cari_ledger/internal/dto"
	"github.com/SscSPs/cari_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// baseHandler holds the response helpers shared by every handler.
type baseHandler struct {
	// hideInternalErrors replaces 5xx error details with a generic message.
	hideInternalErrors bool
}

// statusForError maps the application error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrDuplicate),
		errors.Is(err, apperrors.ErrHasDependents):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError logs err and writes the error envelope. fallback is used as the
// client-facing message for server errors in production.
func (h baseHandler) respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusForError(err)
	msg := err.Error()

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		if h.hideInternalErrors {
			msg = fallback
		}
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, dto.Fail(msg))
}

// respondBindError writes a 400 for a request that could not be decoded.
func (h baseHandler) respondBindError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.Fail("Invalid request format: "+err.Error()))
}
