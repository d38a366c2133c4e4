package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	"github.com/peerfx/peerfx_backend/internal/models"
	"github.com/peerfx/peerfx_backend/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxBalanceRepository struct {
	BaseRepository
}

func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

const balanceColumns = `user_id, currency_code, amount, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxBalanceRepository) FindBalancesByUserID(ctx context.Context, userID string) ([]domain.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE user_id = $1 ORDER BY currency_code;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for user %s: %w", userID, err)
	}
	defer rows.Close()

	balances := []models.Balance{}
	for rows.Next() {
		var m models.Balance
		if err := rows.Scan(&m.UserID, &m.CurrencyCode, &m.Amount, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances = append(balances, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}

	return mapping.ToDomainBalanceSlice(balances), nil
}

func (r *PgxBalanceRepository) FindBalance(ctx context.Context, userID, currencyCode string) (*domain.Balance, error) {
	query := `SELECT ` + balanceColumns + ` FROM balances WHERE user_id = $1 AND currency_code = $2;`
	var m models.Balance
	err := r.Pool.QueryRow(ctx, query, userID, currencyCode).Scan(
		&m.UserID, &m.CurrencyCode, &m.Amount, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find balance (%s, %s): %w", userID, currencyCode, err)
	}
	balance := mapping.ToDomainBalance(m)
	return &balance, nil
}

// CreditBalance upserts the (user, currency) row and adds amount to it.
func (r *PgxBalanceRepository) CreditBalance(ctx context.Context, userID, currencyCode string, amount decimal.Decimal, actorID string) (*domain.Balance, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO balances (user_id, currency_code, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $4, $5)
		ON CONFLICT (user_id, currency_code) DO UPDATE SET
			amount = balances.amount + EXCLUDED.amount,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
		RETURNING ` + balanceColumns + `;
	`
	var m models.Balance
	err := r.Pool.QueryRow(ctx, query, userID, currencyCode, amount, now, actorID).Scan(
		&m.UserID, &m.CurrencyCode, &m.Amount, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to credit balance (%s, %s): %w", userID, currencyCode, err)
	}
	balance := mapping.ToDomainBalance(m)
	return &balance, nil
}
