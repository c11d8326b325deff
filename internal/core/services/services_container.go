package services

import (
	portsrepo "github.com/SscSPs/cari_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cari_ledger/internal/core/ports/services"
	"github.com/SscSPs/cari_ledger/internal/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// settingCache and m may be nil.
func NewServiceContainer(repos portsrepo.RepositoryProvider, settingCache portsrepo.SettingCache, m *metrics.Metrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Group = NewGroupService(repos.TxManager, repos.GroupRepo)

	// Active movements are the only records that block an account delete.
	movementDependents := portssvc.DependencyCounterFunc(repos.MovementRepo.CountActiveMovementsByAccountInTx)
	container.Account = NewAccountService(
		repos.TxManager,
		repos.AccountRepo,
		WithGroupLocks(repos.GroupRepo),
		WithDependencyCounters(movementDependents),
	)

	container.Ledger = NewLedgerService(
		repos.TxManager,
		repos.AccountRepo,
		repos.MovementRepo,
		WithLedgerMetrics(m),
	)

	settingOpts := []SettingServiceOption{}
	if settingCache != nil {
		settingOpts = append(settingOpts, WithSettingCache(settingCache))
	}
	container.Setting = NewSettingService(repos.SettingRepo, settingOpts...)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.GroupSvcFacade   = (*groupService)(nil)
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.SettingSvcFacade = (*settingService)(nil)
)
