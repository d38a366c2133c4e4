package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	"github.com/peerfx/peerfx_backend/internal/middleware"
	"github.com/peerfx/peerfx_backend/internal/models"
	"github.com/peerfx/peerfx_backend/internal/utils/mapping"
	"github.com/peerfx/peerfx_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

type PgxExchangeRepository struct {
	BaseRepository
}

func newPgxExchangeRepository(pool *pgxpool.Pool) portsrepo.ExchangeRepositoryFacade {
	return &PgxExchangeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ExchangeRepositoryFacade = (*PgxExchangeRepository)(nil)

const requestColumns = `exchange_request_id, requester_id, from_currency_code, to_currency_code, amount, desired_rate, priority, status, selected_offer_id, created_at, created_by, last_updated_at, last_updated_by`

const offerColumns = `rate_offer_id, exchange_request_id, bidder_id, rate, total_amount, status, created_at, created_by, last_updated_at, last_updated_by`

func scanRequest(row pgx.Row) (*models.ExchangeRequest, error) {
	var m models.ExchangeRequest
	err := row.Scan(
		&m.ExchangeRequestID,
		&m.RequesterID,
		&m.FromCurrencyCode,
		&m.ToCurrencyCode,
		&m.Amount,
		&m.DesiredRate,
		&m.Priority,
		&m.Status,
		&m.SelectedOfferID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanOffer(row pgx.Row) (*models.RateOffer, error) {
	var m models.RateOffer
	err := row.Scan(
		&m.RateOfferID,
		&m.ExchangeRequestID,
		&m.BidderID,
		&m.Rate,
		&m.TotalAmount,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxExchangeRepository) SaveRequest(ctx context.Context, request domain.ExchangeRequest) error {
	m := mapping.ToModelExchangeRequest(request)
	query := `
		INSERT INTO exchange_requests (exchange_request_id, requester_id, from_currency_code, to_currency_code, amount, desired_rate, priority, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRequestID,
		m.RequesterID,
		m.FromCurrencyCode,
		m.ToCurrencyCode,
		m.Amount,
		m.DesiredRate,
		m.Priority,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: exchange request %s", apperrors.ErrDuplicate, request.ExchangeRequestID)
		}
		return fmt.Errorf("failed to save exchange request: %w", err)
	}
	return nil
}

func (r *PgxExchangeRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ExchangeRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM exchange_requests WHERE exchange_request_id = $1;`
	m, err := scanRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange request %s: %w", requestID, err)
	}
	request := mapping.ToDomainExchangeRequest(*m)
	return &request, nil
}

func (r *PgxExchangeRepository) ListRequests(ctx context.Context, status *domain.ExchangeRequestStatus, limit int, nextToken *string) ([]domain.ExchangeRequest, *string, error) {
	args := []interface{}{}
	query := `SELECT ` + requestColumns + ` FROM exchange_requests`
	conditions := []string{}

	if status != nil {
		args = append(args, string(*status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt, id)
		conditions = append(conditions, fmt.Sprintf("(created_at, exchange_request_id) < ($%d, $%d)", len(args)-1, len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, exchange_request_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query exchange requests: %w", err)
	}
	defer rows.Close()

	requests := []models.ExchangeRequest{}
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan exchange request row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating exchange request rows: %w", err)
	}

	var newNextToken *string
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExchangeRequestID)
		newNextToken = &token
	}

	return mapping.ToDomainExchangeRequestSlice(requests), newNextToken, nil
}

func (r *PgxExchangeRepository) ListRequestsByRequester(ctx context.Context, requesterID string, limit int, nextToken *string) ([]domain.ExchangeRequest, *string, error) {
	args := []interface{}{requesterID}
	query := `SELECT ` + requestColumns + ` FROM exchange_requests WHERE requester_id = $1`

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt, id)
		query += fmt.Sprintf(" AND (created_at, exchange_request_id) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at DESC, exchange_request_id DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query requests for requester %s: %w", requesterID, err)
	}
	defer rows.Close()

	requests := []models.ExchangeRequest{}
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan exchange request row: %w", err)
		}
		requests = append(requests, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating exchange request rows: %w", err)
	}

	var newNextToken *string
	if len(requests) > limit {
		requests = requests[:limit]
		last := requests[len(requests)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ExchangeRequestID)
		newNextToken = &token
	}

	return mapping.ToDomainExchangeRequestSlice(requests), newNextToken, nil
}

func (r *PgxExchangeRepository) CancelRequest(ctx context.Context, requestID string, actorID string, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	claim := `
		UPDATE exchange_requests
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE exchange_request_id = $1 AND status = $5;
	`
	cmdTag, err := tx.Exec(ctx, claim, requestID, string(domain.RequestCancelled), now, actorID, string(domain.RequestActive))
	if err != nil {
		return fmt.Errorf("failed to cancel exchange request %s: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s is not active", apperrors.ErrConflict, requestID)
	}

	reject := `
		UPDATE rate_offers
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE exchange_request_id = $1 AND status = $5;
	`
	rejected, err := tx.Exec(ctx, reject, requestID, string(domain.OfferRejected), now, actorID, string(domain.OfferPending))
	if err != nil {
		return fmt.Errorf("failed to reject pending offers for request %s: %w", requestID, err)
	}
	logger.Info("cancelled exchange request", "requestID", requestID, "rejectedOffers", rejected.RowsAffected())

	return r.Commit(ctx, tx)
}

func (r *PgxExchangeRepository) SaveOffer(ctx context.Context, offer domain.RateOffer) error {
	m := mapping.ToModelRateOffer(offer)
	query := `
		INSERT INTO rate_offers (rate_offer_id, exchange_request_id, bidder_id, rate, total_amount, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.RateOfferID,
		m.ExchangeRequestID,
		m.BidderID,
		m.Rate,
		m.TotalAmount,
		m.Status,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: rate offer %s", apperrors.ErrDuplicate, offer.RateOfferID)
		}
		return fmt.Errorf("failed to save rate offer: %w", err)
	}
	return nil
}

func (r *PgxExchangeRepository) FindOfferByID(ctx context.Context, offerID string) (*domain.RateOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM rate_offers WHERE rate_offer_id = $1;`
	m, err := scanOffer(r.Pool.QueryRow(ctx, query, offerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find rate offer %s: %w", offerID, err)
	}
	offer := mapping.ToDomainRateOffer(*m)
	return &offer, nil
}

func (r *PgxExchangeRepository) FindOffersByRequestID(ctx context.Context, requestID string) ([]domain.RateOffer, error) {
	query := `SELECT ` + offerColumns + ` FROM rate_offers WHERE exchange_request_id = $1 ORDER BY created_at DESC, rate_offer_id DESC;`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query offers for request %s: %w", requestID, err)
	}
	defer rows.Close()

	offers := []models.RateOffer{}
	for rows.Next() {
		m, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rate offer row: %w", err)
		}
		offers = append(offers, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rate offer rows: %w", err)
	}

	return mapping.ToDomainRateOfferSlice(offers), nil
}

// SettleOffer runs the whole accept-offer unit of work in one transaction.
// The conditional claim on the request row decides the winner under concurrency:
// whichever transaction flips ACTIVE -> COMPLETED first wins, every other
// attempt sees zero rows affected and fails with ErrConflict before touching
// balances or the ledger.
func (r *PgxExchangeRepository) SettleOffer(ctx context.Context, requestID string, offerID string, entries []domain.Transaction, balanceChanges map[domain.BalanceKey]decimal.Decimal, actorID string, now time.Time) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	// 1. Claim the request. Zero rows means it is no longer ACTIVE.
	claim := `
		UPDATE exchange_requests
		SET status = $3, selected_offer_id = $2, last_updated_at = $4, last_updated_by = $5
		WHERE exchange_request_id = $1 AND status = $6;
	`
	cmdTag, err := tx.Exec(ctx, claim, requestID, offerID, string(domain.RequestCompleted), now, actorID, string(domain.RequestActive))
	if err != nil {
		return fmt.Errorf("failed to claim exchange request %s: %w", requestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s is not active", apperrors.ErrConflict, requestID)
	}

	// 2. Accept the chosen offer, guarded on PENDING.
	accept := `
		UPDATE rate_offers
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE rate_offer_id = $2 AND exchange_request_id = $1 AND status = $6;
	`
	cmdTag, err = tx.Exec(ctx, accept, requestID, offerID, string(domain.OfferAccepted), now, actorID, string(domain.OfferPending))
	if err != nil {
		return fmt.Errorf("failed to accept rate offer %s: %w", offerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: offer %s is not pending", apperrors.ErrConflict, offerID)
	}

	// 3. Reject every sibling offer still pending.
	reject := `
		UPDATE rate_offers
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE exchange_request_id = $1 AND rate_offer_id <> $2 AND status = $6;
	`
	rejected, err := tx.Exec(ctx, reject, requestID, offerID, string(domain.OfferRejected), now, actorID, string(domain.OfferPending))
	if err != nil {
		return fmt.Errorf("failed to reject sibling offers for request %s: %w", requestID, err)
	}

	// 4. Lock the affected balance rows in a deterministic order so two
	// settlements touching the same users cannot deadlock.
	keys := make([]domain.BalanceKey, 0, len(balanceChanges))
	for key := range balanceChanges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].UserID != keys[j].UserID {
			return keys[i].UserID < keys[j].UserID
		}
		return keys[i].CurrencyCode < keys[j].CurrencyCode
	})

	locked := make(map[domain.BalanceKey]decimal.Decimal, len(keys))
	ensure := `
		INSERT INTO balances (user_id, currency_code, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, 0, $3, $4, $3, $4)
		ON CONFLICT (user_id, currency_code) DO NOTHING;
	`
	lock := `SELECT amount FROM balances WHERE user_id = $1 AND currency_code = $2 FOR UPDATE;`
	for _, key := range keys {
		if _, err := tx.Exec(ctx, ensure, key.UserID, key.CurrencyCode, now, actorID); err != nil {
			return fmt.Errorf("failed to ensure balance row (%s, %s): %w", key.UserID, key.CurrencyCode, err)
		}
		var amount decimal.Decimal
		if err := tx.QueryRow(ctx, lock, key.UserID, key.CurrencyCode).Scan(&amount); err != nil {
			return fmt.Errorf("failed to lock balance row (%s, %s): %w", key.UserID, key.CurrencyCode, err)
		}
		locked[key] = amount
	}

	// 5. Apply deltas; any balance going negative aborts the whole settlement.
	for _, key := range keys {
		newAmount := locked[key].Add(balanceChanges[key])
		if newAmount.IsNegative() {
			return fmt.Errorf("%w: user %s has insufficient %s balance", apperrors.ErrInsufficientFunds, key.UserID, key.CurrencyCode)
		}
		locked[key] = newAmount
	}

	updateBalance := `
		UPDATE balances
		SET amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND currency_code = $2;
	`
	for _, key := range keys {
		if _, err := tx.Exec(ctx, updateBalance, key.UserID, key.CurrencyCode, locked[key], now, actorID); err != nil {
			return fmt.Errorf("failed to update balance (%s, %s): %w", key.UserID, key.CurrencyCode, err)
		}
	}

	// 6. Append the ledger entries with running balances computed against the
	// locked rows, applying entries in the order the service produced them.
	running := make(map[domain.BalanceKey]decimal.Decimal, len(keys))
	for _, key := range keys {
		running[key] = locked[key].Sub(balanceChanges[key])
	}

	batch := &pgx.Batch{}
	insertEntry := `
		INSERT INTO transactions (transaction_id, user_id, exchange_request_id, rate_offer_id, currency_code, amount, transaction_type, terms_accepted, running_balance, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $10, $11);
	`
	for _, entry := range entries {
		key := domain.BalanceKey{UserID: entry.UserID, CurrencyCode: entry.CurrencyCode}
		running[key] = running[key].Add(entry.SignedAmount())
		m := mapping.ToModelTransaction(entry)
		batch.Queue(insertEntry,
			m.TransactionID,
			m.UserID,
			m.ExchangeRequestID,
			m.RateOfferID,
			m.CurrencyCode,
			m.Amount,
			m.TransactionType,
			m.TermsAccepted,
			running[key],
			now,
			actorID,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close ledger batch: %w", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("settled exchange request",
		"requestID", requestID,
		"offerID", offerID,
		"ledgerEntries", len(entries),
		"rejectedOffers", rejected.RowsAffected(),
	)
	return nil
}
