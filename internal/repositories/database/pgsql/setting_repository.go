package pgsql

import (
	"context"

	"github.com/SscSPs/cari_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/cari_ledger/internal/models"
	"github.com/SscSPs/cari_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingColumns = `name, value, setting_type, category, description, created_at, updated_at`

type PgxSettingRepository struct {
	BaseRepository
}

func newPgxSettingRepository(pool *pgxpool.Pool) *PgxSettingRepository {
	return &PgxSettingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingRepository = (*PgxSettingRepository)(nil)

func (r *PgxSettingRepository) FindSettingByName(ctx context.Context, name string) (*domain.Setting, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+settingColumns+` FROM settings WHERE name = $1`, name)
	if err != nil {
		return nil, mapReadError(err, "setting "+name, "query setting")
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Setting])
	if err != nil {
		return nil, mapReadError(err, "setting "+name, "scan setting")
	}
	s := mapping.ToDomainSetting(m)
	return &s, nil
}

func (r *PgxSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	return r.list(ctx, `SELECT `+settingColumns+` FROM settings ORDER BY category ASC, name ASC`)
}

func (r *PgxSettingRepository) ListSettingsByCategory(ctx context.Context, category string) ([]domain.Setting, error) {
	return r.list(ctx, `SELECT `+settingColumns+` FROM settings WHERE category = $1 ORDER BY name ASC`, category)
}

func (r *PgxSettingRepository) list(ctx context.Context, query string, args ...any) ([]domain.Setting, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(err, "settings", "list settings")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Setting])
	if err != nil {
		return nil, mapReadError(err, "settings", "scan settings")
	}
	return mapping.ToDomainSettingSlice(ms), nil
}

// UpsertSetting inserts the setting or replaces every field except created_at.
func (r *PgxSettingRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	m := mapping.ToModelSetting(setting)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO settings (`+settingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE
		SET value = EXCLUDED.value, setting_type = EXCLUDED.setting_type, category = EXCLUDED.category,
		    description = EXCLUDED.description, updated_at = EXCLUDED.updated_at`,
		m.Name, m.Value, m.SettingType, m.Category, m.Description, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "upsert setting")
	}
	return nil
}

// InsertSettingIfMissing inserts the setting unless its name exists and reports whether it did.
func (r *PgxSettingRepository) InsertSettingIfMissing(ctx context.Context, setting domain.Setting) (bool, error) {
	m := mapping.ToModelSetting(setting)
	tag, err := r.Pool.Exec(ctx, `
		INSERT INTO settings (`+settingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO NOTHING`,
		m.Name, m.Value, m.SettingType, m.Category, m.Description, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return false, mapWriteError(err, "insert default setting")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxSettingRepository) DeleteSetting(ctx context.Context, name string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM settings WHERE name = $1`, name)
	if err != nil {
		return mapWriteError(err, "delete setting")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "setting "+name, "delete setting")
	}
	return nil
}
