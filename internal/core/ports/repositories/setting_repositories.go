package repositories

import (
	"context"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
)

// SettingRepository defines persistence operations for settings.
type SettingRepository interface {
	FindSettingByName(ctx context.Context, name string) (*domain.Setting, error)
	ListSettings(ctx context.Context) ([]domain.Setting, error)
	ListSettingsByCategory(ctx context.Context, category string) ([]domain.Setting, error)

	// UpsertSetting inserts or replaces a setting by name.
	UpsertSetting(ctx context.Context, setting domain.Setting) error

	// InsertSettingIfMissing inserts the setting only if no row with its name exists.
	// It reports whether a row was inserted.
	InsertSettingIfMissing(ctx context.Context, setting domain.Setting) (bool, error)

	DeleteSetting(ctx context.Context, name string) error
}

// SettingCache is an optional read-through cache in front of SettingRepository.
type SettingCache interface {
	Get(ctx context.Context, name string) (*domain.Setting, bool, error)
	Set(ctx context.Context, setting domain.Setting) error
	Invalidate(ctx context.Context, names ...string) error
}
