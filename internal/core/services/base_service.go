package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/cari_ledger/internal/apperrors"
	"github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cari_ledger/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning message with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// withTx runs fn inside a transaction obtained from txm. The transaction is committed when fn
// returns nil and rolled back otherwise.
func (s *BaseService) withTx(ctx context.Context, txm repositories.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := txm.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction")
		return err
	}
	defer func() {
		if rbErr := txm.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := txm.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction")
		return err
	}
	return nil
}

// logWriteFailure logs unexpected failures at error level and business-rule rejections at debug.
func (s *BaseService) logWriteFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate) || errors.Is(err, apperrors.ErrHasDependents) {
		s.LogDebug(ctx, msg, append(keyvals, slog.String("reason", err.Error()))...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}
