package reviews

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
)

var _ ReviewRepo = (*PostgresReviewRepo)(nil)

// ReviewRepo owns review rows and the derived aggregates on books. The
// one-review-per-(account, book) invariant lives in the store as a unique
// constraint; Create surfaces its violation as models.ErrConflict instead of
// checking first and inserting second.
type ReviewRepo interface {
	ListForBook(ctx context.Context, isbn string) ([]models.Review, error)
	// Create inserts the review and recomputes the book's review_count and
	// average_score in one transaction.
	Create(ctx context.Context, username, isbn string, rating float64, body string) error
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

type PostgresReviewRepo struct {
	logger *zap.Logger
	pgpool DB
}

func NewPostgresReviewRepo(pgpool DB, logger *zap.Logger) *PostgresReviewRepo {
	return &PostgresReviewRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

// ListForBook implements ReviewRepo.
func (r *PostgresReviewRepo) ListForBook(ctx context.Context, isbn string) ([]models.Review, error) {
	query := `
		SELECT r.id, r.account_id, r.book_id, a.username, r.rating, r.body, r.created_at
		FROM reviews r
		JOIN accounts a ON a.id = r.account_id
		JOIN books b ON b.id = r.book_id
		WHERE b.isbn = $1
		ORDER BY r.created_at`
	rows, err := r.pgpool.Query(ctx, query, isbn)
	if err != nil {
		r.logger.Error("Error listing reviews", zap.Error(err), zap.String("isbn", isbn))
		return nil, fmt.Errorf("database error listing reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var rv models.Review
		if err := rows.Scan(&rv.ID, &rv.AccountID, &rv.BookID, &rv.Username, &rv.Rating, &rv.Body, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("database error scanning review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading reviews: %w", err)
	}
	return reviews, nil
}

// Create implements ReviewRepo. The insert and the aggregate recomputation
// share one transaction so a concurrent duplicate cannot slip between them.
func (r *PostgresReviewRepo) Create(ctx context.Context, username, isbn string, rating float64, body string) error {
	tx, err := r.pgpool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("database error starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insert := `
		INSERT INTO reviews (account_id, book_id, rating, body)
		VALUES (
			(SELECT id FROM accounts WHERE username = $1),
			(SELECT id FROM books WHERE isbn = $2),
			$3, $4
		)`
	if _, err := tx.Exec(ctx, insert, username, isbn, rating, body); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return fmt.Errorf("review already exists for this account and book: %w", models.ErrConflict)
			case "23502":
				// A NULL account_id or book_id means the subquery found no row.
				return fmt.Errorf("account or book not found: %w", models.ErrNotFound)
			}
		}
		r.logger.Error("Error inserting review", zap.Error(err), zap.String("isbn", isbn))
		return fmt.Errorf("database error inserting review: %w", err)
	}

	update := `
		UPDATE books SET review_count = agg.cnt, average_score = agg.avg
		FROM (
			SELECT COUNT(*) AS cnt, COALESCE(AVG(rating), 0) AS avg
			FROM reviews
			WHERE book_id = (SELECT id FROM books WHERE isbn = $1)
		) AS agg
		WHERE isbn = $1`
	if _, err := tx.Exec(ctx, update, isbn); err != nil {
		r.logger.Error("Error updating book aggregates", zap.Error(err), zap.String("isbn", isbn))
		return fmt.Errorf("database error updating book aggregates: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("database error committing review: %w", err)
	}
	return nil
}
