package services

import (
	"context"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	"github.com/SscSPs/cari_ledger/internal/dto"
)

// SettingSvcFacade defines the settings store operations.
type SettingSvcFacade interface {
	GetSetting(ctx context.Context, name string) (*domain.Setting, error)
	SetSetting(ctx context.Context, req dto.SettingRequest) (*domain.Setting, error)
	DeleteSetting(ctx context.Context, name string) error
	ListSettings(ctx context.Context) ([]domain.Setting, error)
	ListSettingsByCategory(ctx context.Context, category string) ([]domain.Setting, error)
	// BulkSetSettings writes every item independently and reports per-item results.
	BulkSetSettings(ctx context.Context, reqs []dto.SettingRequest) []domain.BulkSettingResult
	// InitializeDefaults inserts the default settings that do not exist yet.
	InitializeDefaults(ctx context.Context) (int, error)
}
