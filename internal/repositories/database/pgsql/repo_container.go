package pgsql

import (
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:    NewTransactionManager(dbPool),
		GroupRepo:    newPgxGroupRepository(dbPool),
		AccountRepo:  newPgxAccountRepository(dbPool),
		MovementRepo: newPgxMovementRepository(dbPool),
		SettingRepo:  newPgxSettingRepository(dbPool),
	}
}
