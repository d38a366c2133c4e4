package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/peerfx/peerfx_backend/internal/apperrors"
	"github.com/peerfx/peerfx_backend/internal/core/domain"
	portsrepo "github.com/peerfx/peerfx_backend/internal/core/ports/repositories"
	"github.com/peerfx/peerfx_backend/internal/models"
	"github.com/peerfx/peerfx_backend/internal/utils/mapping"
	"github.com/peerfx/peerfx_backend/internal/utils/pagination"
)

type PgxChatRepository struct {
	BaseRepository
}

func newPgxChatRepository(pool *pgxpool.Pool) portsrepo.ChatRepositoryFacade {
	return &PgxChatRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ChatRepositoryFacade = (*PgxChatRepository)(nil)

const chatColumns = `message_id, exchange_request_id, sender_id, body, created_at, created_by, last_updated_at, last_updated_by`

func (r *PgxChatRepository) SaveMessage(ctx context.Context, message domain.ChatMessage) error {
	m := mapping.ToModelChatMessage(message)
	query := `
		INSERT INTO chat_messages (message_id, exchange_request_id, sender_id, body, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.MessageID,
		m.ExchangeRequestID,
		m.SenderID,
		m.Body,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: chat message %s", apperrors.ErrDuplicate, message.MessageID)
		}
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// ListMessagesByRequestID pages oldest-first so a client can replay the
// conversation in order; the cursor therefore advances forward in time.
func (r *PgxChatRepository) ListMessagesByRequestID(ctx context.Context, requestID string, limit int, nextToken *string) ([]domain.ChatMessage, *string, error) {
	args := []interface{}{requestID}
	query := `SELECT ` + chatColumns + ` FROM chat_messages WHERE exchange_request_id = $1`

	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt, id)
		query += fmt.Sprintf(" AND (created_at, message_id) > ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY created_at ASC, message_id ASC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query chat messages for request %s: %w", requestID, err)
	}
	defer rows.Close()

	messages := []models.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.MessageID, &m.ExchangeRequestID, &m.SenderID, &m.Body, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy); err != nil {
			return nil, nil, fmt.Errorf("failed to scan chat message row: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating chat message rows: %w", err)
	}

	var newNextToken *string
	if len(messages) > limit {
		messages = messages[:limit]
		last := messages[len(messages)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.MessageID)
		newNextToken = &token
	}

	return mapping.ToDomainChatMessageSlice(messages), newNextToken, nil
}
