package postgres

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
	"github.com/linkup-social/linkup/internal/repository"
)

type ConnectionStore struct {
	pool *pgxpool.Pool
}

func NewConnectionStore(pool *pgxpool.Pool) *ConnectionStore {
	return &ConnectionStore{pool: pool}
}

// pairLockKey derives the advisory-lock key that serializes all request
// and connection writes for one unordered pair.
func pairLockKey(pair repository.Pair) int64 {
	h := fnv.New64a()
	h.Write(pair.Lo[:])
	h.Write(pair.Hi[:])
	return int64(h.Sum64())
}

// lockPair takes the per-pair advisory lock for the duration of tx. Row
// locks alone are not enough: under READ COMMITTED two mirrored sends
// can each miss the other's uncommitted request row.
func lockPair(ctx context.Context, tx pgx.Tx, pair repository.Pair) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, pairLockKey(pair)); err != nil {
		return fmt.Errorf("lock pair: %w", err)
	}
	return nil
}

// CreateRequest runs as one transaction so concurrent sends, accepts,
// and the mirrored-request promotion serialize per pair.
func (s *ConnectionStore) CreateRequest(ctx context.Context, requester, target uuid.UUID, at time.Time) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	pair := repository.OrderPair(requester, target)
	if err := lockPair(ctx, tx, pair); err != nil {
		return false, err
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM connections WHERE pair_lo = $1 AND pair_hi = $2)`,
		pair.Lo, pair.Hi,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check connection: %w", err)
	}
	if exists {
		return false, apperrors.ErrAlreadyConnected
	}

	// A mirrored pending request means both sides asked: consume it and
	// connect immediately.
	tag, err := tx.Exec(ctx,
		`DELETE FROM connection_requests WHERE requester = $1 AND target = $2`,
		target, requester,
	)
	if err != nil {
		return false, fmt.Errorf("check mirrored request: %w", err)
	}
	mutual := tag.RowsAffected() > 0
	if mutual {
		if err := insertConnection(ctx, tx, pair); err != nil {
			return false, err
		}
	} else {
		_, err = tx.Exec(ctx,
			`INSERT INTO connection_requests (requester, target, created_at) VALUES ($1, $2, $3)`,
			requester, target, at,
		)
		if err != nil {
			if isUniqueViolation(err, "connection_requests_pkey") {
				return false, apperrors.ErrDuplicateRequest
			}
			return false, fmt.Errorf("insert request: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return mutual, nil
}

func (s *ConnectionStore) PendingFor(ctx context.Context, target uuid.UUID) ([]models.ConnectionRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT requester, target, created_at
		FROM connection_requests
		WHERE target = $1
		ORDER BY created_at ASC`,
		target,
	)
	if err != nil {
		return nil, fmt.Errorf("list pending requests: %w", err)
	}
	defer rows.Close()

	pending := make([]models.ConnectionRequest, 0)
	for rows.Next() {
		var req models.ConnectionRequest
		if err := rows.Scan(&req.Requester, &req.Target, &req.Timestamp); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		pending = append(pending, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate requests: %w", err)
	}
	return pending, nil
}

// Accept deletes the request and inserts the connection in one
// transaction; a concurrent duplicate accept loses the DELETE race and
// observes ErrRequestNotFound.
func (s *ConnectionStore) Accept(ctx context.Context, requester, target uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	pair := repository.OrderPair(requester, target)
	if err := lockPair(ctx, tx, pair); err != nil {
		return err
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM connection_requests WHERE requester = $1 AND target = $2`,
		requester, target,
	)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}

	if err := insertConnection(ctx, tx, pair); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *ConnectionStore) Reject(ctx context.Context, requester, target uuid.UUID) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM connection_requests WHERE requester = $1 AND target = $2`,
		requester, target,
	)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

func (s *ConnectionStore) ConnectionsOf(ctx context.Context, identity uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT CASE WHEN pair_lo = $1 THEN pair_hi ELSE pair_lo END
		FROM connections
		WHERE pair_lo = $1 OR pair_hi = $1`,
		identity,
	)
	if err != nil {
		return nil, fmt.Errorf("list connections: %w", err)
	}
	defer rows.Close()

	peers := make([]uuid.UUID, 0)
	for rows.Next() {
		var peer uuid.UUID
		if err := rows.Scan(&peer); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		peers = append(peers, peer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate connections: %w", err)
	}
	return peers, nil
}

func (s *ConnectionStore) Connected(ctx context.Context, a, b uuid.UUID) (bool, error) {
	pair := repository.OrderPair(a, b)
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM connections WHERE pair_lo = $1 AND pair_hi = $2)`,
		pair.Lo, pair.Hi,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check connection: %w", err)
	}
	return exists, nil
}

func insertConnection(ctx context.Context, tx pgx.Tx, pair repository.Pair) error {
	// A formed connection leaves no pending request in either direction.
	_, err := tx.Exec(ctx,
		`DELETE FROM connection_requests
		 WHERE (requester = $1 AND target = $2) OR (requester = $2 AND target = $1)`,
		pair.Lo, pair.Hi,
	)
	if err != nil {
		return fmt.Errorf("clear pending requests: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO connections (pair_lo, pair_hi, created_at) VALUES ($1, $2, now())
		 ON CONFLICT (pair_lo, pair_hi) DO NOTHING`,
		pair.Lo, pair.Hi,
	)
	if err != nil {
		return fmt.Errorf("insert connection: %w", err)
	}
	return nil
}
