package services

import (
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	portssvc "github.com/peerfx/peerfx_backend/internal/core/ports/services"
	"github.com/peerfx/peerfx_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The notifier is injected so the websocket hub stays optional; pass
// portssvc.NoopNotifier when broadcasting is disabled.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider, notifier portssvc.Notifier) *portssvc.ServiceContainer {
	if notifier == nil {
		notifier = portssvc.NoopNotifier{}
	}

	container := &portssvc.ServiceContainer{}

	container.Audit = NewAuditService(repos.AuditRepo, repos.UserRepo)
	container.User = NewUserService(repos.UserRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo, repos.UserRepo)
	container.Balance = NewBalanceService(repos.BalanceRepo, repos.CurrencyRepo, container.Audit)
	container.Exchange = NewExchangeService(
		repos.ExchangeRepo,
		repos.TransactionRepo,
		repos.CurrencyRepo,
		repos.UserRepo,
		container.Audit,
		notifier,
	)
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.ExchangeRepo)
	container.Chat = NewChatService(repos.ChatRepo, repos.ExchangeRepo, repos.UserRepo, notifier)

	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}
