package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
)

var _ AccountRepo = (*PostgresAccountRepo)(nil)

// AccountRepo is the durable credential store: a mapping from username to a
// password verifier. Uniqueness of usernames is enforced by the store itself,
// never by a check-then-insert in application code.
type AccountRepo interface {
	// Create stores a new account with a HASHED password. Returns the new
	// account ID, or models.ErrConflict when the username is already taken.
	Create(ctx context.Context, username, passwordHash string) (uuid.UUID, error)
	// GetByUsername fetches the account matching exactly one row. Zero rows
	// yield models.ErrNotFound; more than one is a data-integrity violation
	// and yields models.ErrIntegrity — never "pick the first".
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresAccountRepo struct {
	logger *zap.Logger
	pgpool DB
}

func NewPostgresAccountRepo(pgpool DB, logger *zap.Logger) *PostgresAccountRepo {
	return &PostgresAccountRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// Create implements AccountRepo. Expects a HASHED password.
func (r *PostgresAccountRepo) Create(ctx context.Context, username, passwordHash string) (uuid.UUID, error) {
	var accountID uuid.UUID
	query := `INSERT INTO accounts (username, password_hash) VALUES ($1, $2) RETURNING id`
	err := r.pgpool.QueryRow(ctx, query, username, passwordHash).Scan(&accountID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return uuid.Nil, fmt.Errorf("username already exists: %w", models.ErrConflict)
		}
		r.logger.Error("Error inserting account", zap.Error(err), zap.String("username", username))
		return uuid.Nil, fmt.Errorf("database error registering account: %w", err)
	}
	return accountID, nil
}

// GetByUsername implements AccountRepo.
func (r *PostgresAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query := `SELECT id, username, password_hash, created_at FROM accounts WHERE username = $1`
	rows, err := r.pgpool.Query(ctx, query, username)
	if err != nil {
		r.logger.Error("Error fetching account by username", zap.Error(err), zap.String("username", username))
		return nil, fmt.Errorf("database error fetching account: %w", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("database error scanning account: %w", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading accounts: %w", err)
	}

	switch len(accounts) {
	case 0:
		return nil, fmt.Errorf("account %q not found: %w", username, models.ErrNotFound)
	case 1:
		return &accounts[0], nil
	default:
		// The unique constraint should make this unreachable; treat it as a
		// server-side data fault rather than resolving it silently.
		r.logger.Error("Multiple accounts matched one username",
			zap.String("username", username), zap.Int("matches", len(accounts)))
		return nil, fmt.Errorf("account lookup for %q matched %d rows: %w", username, len(accounts), models.ErrIntegrity)
	}
}
