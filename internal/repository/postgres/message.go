package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
)

type MessageStore struct {
	pool *pgxpool.Pool
}

func NewMessageStore(pool *pgxpool.Pool) *MessageStore {
	return &MessageStore{pool: pool}
}

func (s *MessageStore) Append(ctx context.Context, sender, recipient uuid.UUID, content string, at time.Time) (*models.Message, error) {
	pair := repository.OrderPair(sender, recipient)

	// id is a bigserial: monotonic across the table, so it serves as the
	// per-conversation sequence number as well.
	query := `
		INSERT INTO messages (pair_lo, pair_hi, sender, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sender, content, created_at`

	var msg models.Message
	err := s.pool.QueryRow(ctx, query, pair.Lo, pair.Hi, sender, content, at).Scan(
		&msg.Seq, &msg.Sender, &msg.Content, &msg.Timestamp,
	)
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return &msg, nil
}

func (s *MessageStore) List(ctx context.Context, a, b uuid.UUID, before int64, limit int) ([]models.Message, error) {
	pair := repository.OrderPair(a, b)

	// Cursor pagination over the ascending log: the window is "newest
	// `limit` messages with id < before". The inner query selects that
	// window newest-first; the outer flips it back to oldest-first.
	query := `
		SELECT id, sender, content, created_at FROM (
			SELECT id, sender, content, created_at
			FROM messages
			WHERE pair_lo = $1 AND pair_hi = $2
			  AND ($3::bigint = 0 OR id < $3)
			ORDER BY id DESC
			LIMIT CASE WHEN $4::int > 0 THEN $4 ELSE NULL END
		) window
		ORDER BY id ASC`

	rows, err := s.pool.Query(ctx, query, pair.Lo, pair.Hi, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := make([]models.Message, 0)
	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.Seq, &msg.Sender, &msg.Content, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return messages, nil
}
