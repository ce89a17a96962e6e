// Package postgres holds the durable store implementations (STORE=postgres).
// The invariants the interfaces promise are enforced by the schema:
// unique indexes for the username and email registries, canonical
// pair-ordered keys for connections and conversations, and transactions
// for the multi-row transitions.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
)

// Postgres class 23505: unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation &&
		pgErr.ConstraintName == constraint
}

type ProfileStore struct {
	pool *pgxpool.Pool
}

func NewProfileStore(pool *pgxpool.Pool) *ProfileStore {
	return &ProfileStore{pool: pool}
}

func (s *ProfileStore) Create(ctx context.Context, profile models.UserProfile) (*models.UserProfile, error) {
	query := `
		INSERT INTO profiles (identity, username, display_name, email, role, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING identity, username, display_name, email, role, created_at`

	var p models.UserProfile
	err := s.pool.QueryRow(ctx, query,
		profile.Identity, profile.Username, profile.DisplayName, profile.Email, profile.Role,
	).Scan(&p.Identity, &p.Username, &p.DisplayName, &p.Email, &p.Role, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "profiles_pkey") {
			return nil, apperrors.ErrAlreadyOnboarded
		}
		if isUniqueViolation(err, "profiles_username_key") {
			return nil, apperrors.ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	return &p, nil
}

func (s *ProfileStore) Get(ctx context.Context, identity uuid.UUID) (*models.UserProfile, error) {
	return s.getWhere(ctx, "identity = $1", identity)
}

func (s *ProfileStore) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	return s.getWhere(ctx, "username = $1", username)
}

func (s *ProfileStore) getWhere(ctx context.Context, where string, arg any) (*models.UserProfile, error) {
	query := `
		SELECT identity, username, display_name, email, role, created_at
		FROM profiles
		WHERE ` + where

	var p models.UserProfile
	err := s.pool.QueryRow(ctx, query, arg).Scan(
		&p.Identity, &p.Username, &p.DisplayName, &p.Email, &p.Role, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &p, nil
}

func (s *ProfileStore) Update(ctx context.Context, identity uuid.UUID, displayName, email string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE profiles SET display_name = $2, email = $3 WHERE identity = $1`,
		identity, displayName, email,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotOnboarded
	}
	return nil
}

func (s *ProfileStore) SetRole(ctx context.Context, target uuid.UUID, role models.UserRole) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE profiles SET role = $2 WHERE identity = $1`,
		target, role,
	)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotOnboarded
	}
	return nil
}
