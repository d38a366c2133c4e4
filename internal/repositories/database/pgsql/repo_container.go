package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgx-backed repositories sharing one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(pool),
		CurrencyRepo:    newPgxCurrencyRepository(pool),
		BalanceRepo:     newPgxBalanceRepository(pool),
		ExchangeRepo:    newPgxExchangeRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		ChatRepo:        newPgxChatRepository(pool),
		AuditRepo:       newPgxAuditRepository(pool),
	}
}
