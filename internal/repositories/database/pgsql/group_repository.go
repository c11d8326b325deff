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

const groupColumns = `group_id, name, created_at, created_by, last_updated_at, last_updated_by`

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for group data.
func newPgxGroupRepository(pool *pgxpool.Pool) *PgxGroupRepository {
	return &PgxGroupRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

func (r *PgxGroupRepository) findOne(ctx context.Context, q querier, what string, query string, args ...any) (*domain.Group, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapReadError(err, what, "query group")
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Group])
	if err != nil {
		return nil, mapReadError(err, what, "scan group")
	}
	g := mapping.ToDomainGroup(m)
	return &g, nil
}

// FindGroupByID retrieves a group by its ID.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	return r.findOne(ctx, r.Pool, "group "+groupID,
		`SELECT `+groupColumns+` FROM account_groups WHERE group_id = $1`, groupID)
}

// FindGroupByName retrieves a group by its exact name.
func (r *PgxGroupRepository) FindGroupByName(ctx context.Context, name string) (*domain.Group, error) {
	return r.findOne(ctx, r.Pool, "group "+name,
		`SELECT `+groupColumns+` FROM account_groups WHERE name = $1`, name)
}

// ListGroups retrieves all groups ordered by name.
func (r *PgxGroupRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+groupColumns+` FROM account_groups ORDER BY name ASC`)
	if err != nil {
		return nil, mapReadError(err, "groups", "list groups")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Group])
	if err != nil {
		return nil, mapReadError(err, "groups", "scan groups")
	}
	return mapping.ToDomainGroupSlice(ms), nil
}

// FindGroupByIDForUpdate selects a group and locks its row until tx ends.
func (r *PgxGroupRepository) FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error) {
	return r.findOne(ctx, tx, "group "+groupID,
		`SELECT `+groupColumns+` FROM account_groups WHERE group_id = $1 FOR UPDATE`, groupID)
}

// FindGroupByIDForShare selects a group and holds a shared lock on its row until tx ends.
func (r *PgxGroupRepository) FindGroupByIDForShare(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error) {
	return r.findOne(ctx, tx, "group "+groupID,
		`SELECT `+groupColumns+` FROM account_groups WHERE group_id = $1 FOR SHARE`, groupID)
}

const countLinkedAccountsSQL = `SELECT COUNT(*) FROM accounts WHERE group_id = $1 AND is_active = TRUE`

// CountLinkedAccounts counts active accounts in the group.
func (r *PgxGroupRepository) CountLinkedAccounts(ctx context.Context, groupID string) (int64, error) {
	return countLinkedAccounts(ctx, r.Pool, groupID)
}

// CountLinkedAccountsInTx counts active accounts in the group using tx.
func (r *PgxGroupRepository) CountLinkedAccountsInTx(ctx context.Context, tx pgx.Tx, groupID string) (int64, error) {
	return countLinkedAccounts(ctx, tx, groupID)
}

func countLinkedAccounts(ctx context.Context, q querier, groupID string) (int64, error) {
	var count int64
	if err := q.QueryRow(ctx, countLinkedAccountsSQL, groupID).Scan(&count); err != nil {
		return 0, mapReadError(err, "group "+groupID, "count linked accounts")
	}
	return count, nil
}

// SaveGroup inserts a new group.
func (r *PgxGroupRepository) SaveGroup(ctx context.Context, group domain.Group) error {
	m := mapping.ToModelGroup(group)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO account_groups (`+groupColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		m.GroupID, m.Name, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "save group")
	}
	return nil
}

// UpdateGroup renames a group.
func (r *PgxGroupRepository) UpdateGroup(ctx context.Context, group domain.Group) error {
	m := mapping.ToModelGroup(group)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE account_groups
		SET name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE group_id = $1`,
		m.GroupID, m.Name, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "update group")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "group "+group.GroupID, "update group")
	}
	return nil
}

// DeleteGroup hard-deletes a group. Inactive accounts still pointing at it are detached by
// the ON DELETE SET NULL foreign key.
func (r *PgxGroupRepository) DeleteGroup(ctx context.Context, tx pgx.Tx, groupID string) error {
	tag, err := tx.Exec(ctx, `DELETE FROM account_groups WHERE group_id = $1`, groupID)
	if err != nil {
		return mapWriteError(err, "delete group")
	}
	if tag.RowsAffected() == 0 {
		return mapReadError(pgx.ErrNoRows, "group "+groupID, "delete group")
	}
	return nil
}
