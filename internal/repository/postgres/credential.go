package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkup-social/linkup/internal/apperrors"
	"github.com/linkup-social/linkup/internal/models"
)

type CredentialStore struct {
	pool *pgxpool.Pool
}

func NewCredentialStore(pool *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{pool: pool}
}

func (s *CredentialStore) Create(ctx context.Context, email, passwordHash string) (*models.Credential, error) {
	query := `
		INSERT INTO credentials (identity, email, password_hash, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING identity, email, password_hash, created_at`

	var cred models.Credential
	err := s.pool.QueryRow(ctx, query, uuid.New(), email, passwordHash).Scan(
		&cred.Identity, &cred.Email, &cred.PasswordHash, &cred.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "credentials_email_key") {
			return nil, apperrors.ErrEmailRegistered
		}
		return nil, fmt.Errorf("insert credential: %w", err)
	}
	return &cred, nil
}

func (s *CredentialStore) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {
	query := `
		SELECT identity, email, password_hash, created_at
		FROM credentials
		WHERE email = $1`

	var cred models.Credential
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&cred.Identity, &cred.Email, &cred.PasswordHash, &cred.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return &cred, nil
}
