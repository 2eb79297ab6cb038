package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/matheusqueiroz92/trekmind/internal/domain"
)

// PGXPool is the slice of the pgx pool API the repository needs. Tests swap in
// a pgxmock pool.
type PGXPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

var _ Repository = (*PostgresRepository)(nil)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	GetPasswordHash(ctx context.Context, email string) (string, error)
	CreateUser(ctx context.Context, user *domain.User, passwordHash string) error
}

type PostgresRepository struct {
	logger *slog.Logger
	pgpool PGXPool
}

func NewPostgresRepository(pgpool PGXPool, logger *slog.Logger) *PostgresRepository {
	return &PostgresRepository{
		logger: logger,
		pgpool: pgpool,
	}
}

// FindByEmail returns the user for an email, or nil when no account exists.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var (
		id, name, storedEmail string
		createdAt             time.Time
	)
	err := r.pgpool.QueryRow(ctx,
		"SELECT id, name, email, created_at FROM users WHERE email = $1",
		email).Scan(&id, &name, &storedEmail, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	user, err := domain.ReconstituteUser(id, name, storedEmail, createdAt)
	if err != nil {
		return nil, fmt.Errorf("stored user is invalid: %w", err)
	}
	return user, nil
}

// GetPasswordHash returns the stored bcrypt hash for an email, or an empty
// string when the account has no password set.
func (r *PostgresRepository) GetPasswordHash(ctx context.Context, email string) (string, error) {
	var hash *string
	err := r.pgpool.QueryRow(ctx,
		"SELECT password_hash FROM users WHERE email = $1",
		email).Scan(&hash)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query password hash: %w", err)
	}
	if hash == nil {
		return "", nil
	}
	return *hash, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User, passwordHash string) error {
	var hash *string
	if passwordHash != "" {
		hash = &passwordHash
	}
	_, err := r.pgpool.Exec(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)",
		user.ID(), user.Name(), user.Email(), hash, user.CreatedAt())
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert user", slog.Any("error", err))
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}
