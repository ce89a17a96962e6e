package db

import (
	"context"
	"fmt"
)

// Schema notes:
//
//   - profiles.username carries the global uniqueness index; a violating
//     insert fails with 23505 and the store maps it to UsernameTaken.
//   - connections and conversations key on the canonically ordered pair
//     (pair_lo < pair_hi), so the unordered-pair invariants reduce to
//     ordinary unique constraints.
//   - connection_requests keys on the ordered (requester, target) pair:
//     at most one outstanding request per direction.
//   - messages.id is a bigserial shared across conversations; it is
//     monotonic, so per-conversation ordering falls out of ORDER BY id.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS credentials (
		identity      UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS profiles (
		identity     UUID PRIMARY KEY,
		username     TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		email        TEXT NOT NULL,
		role         TEXT NOT NULL DEFAULT 'user',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS connection_requests (
		requester  UUID NOT NULL,
		target     UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (requester, target)
	)`,
	`CREATE TABLE IF NOT EXISTS connections (
		pair_lo    UUID NOT NULL,
		pair_hi    UUID NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (pair_lo, pair_hi),
		CHECK (pair_lo < pair_hi)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_connections_hi ON connections (pair_hi)`,
	`CREATE TABLE IF NOT EXISTS messages (
		id         BIGSERIAL PRIMARY KEY,
		pair_lo    UUID NOT NULL,
		pair_hi    UUID NOT NULL,
		sender     UUID NOT NULL,
		content    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages (pair_lo, pair_hi, id)`,
}

// Migrate applies the schema idempotently at startup.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range statements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
