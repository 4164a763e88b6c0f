package catalog

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
)

var _ BookRepo = (*PostgresBookRepo)(nil)

// BookRepo is read access to the fixed book catalog.
type BookRepo interface {
	// Search returns every book where any of the terms appears in the title,
	// author or ISBN, case-insensitively. An empty term list yields no rows.
	Search(ctx context.Context, terms []string) ([]models.Book, error)
	// GetByISBN fetches the book matching exactly one row. Zero rows yield
	// models.ErrNotFound; more than one yields models.ErrIntegrity.
	GetByISBN(ctx context.Context, isbn string) (*models.Book, error)
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresBookRepo struct {
	logger *zap.Logger
	pgpool DB
}

func NewPostgresBookRepo(pgpool DB, logger *zap.Logger) *PostgresBookRepo {
	return &PostgresBookRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Search implements BookRepo. One OR'd query per request keeps results
// naturally deduplicated across terms.
func (r *PostgresBookRepo) Search(ctx context.Context, terms []string) ([]models.Book, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	or := sq.Or{}
	for _, term := range terms {
		pattern := "%" + term + "%"
		or = append(or,
			sq.ILike{"title": pattern},
			sq.ILike{"author": pattern},
			sq.ILike{"isbn": pattern},
		)
	}

	query, args, err := psql.
		Select("id", "title", "author", "year", "isbn", "review_count", "average_score").
		From("books").
		Where(or).
		OrderBy("title ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building search query: %w", err)
	}

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error("Error searching books", zap.Error(err))
		return nil, fmt.Errorf("database error searching books: %w", err)
	}
	defer rows.Close()

	return scanBooks(rows)
}

// GetByISBN implements BookRepo.
func (r *PostgresBookRepo) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	query := `SELECT id, title, author, year, isbn, review_count, average_score FROM books WHERE isbn = $1`
	rows, err := r.pgpool.Query(ctx, query, isbn)
	if err != nil {
		r.logger.Error("Error fetching book by ISBN", zap.Error(err), zap.String("isbn", isbn))
		return nil, fmt.Errorf("database error fetching book: %w", err)
	}
	defer rows.Close()

	books, err := scanBooks(rows)
	if err != nil {
		return nil, err
	}

	switch len(books) {
	case 0:
		return nil, fmt.Errorf("book %q not found: %w", isbn, models.ErrNotFound)
	case 1:
		return &books[0], nil
	default:
		r.logger.Error("Multiple catalog rows matched one ISBN",
			zap.String("isbn", isbn), zap.Int("matches", len(books)))
		return nil, fmt.Errorf("catalog lookup for %q matched %d rows: %w", isbn, len(books), models.ErrIntegrity)
	}
}

func scanBooks(rows pgx.Rows) ([]models.Book, error) {
	var books []models.Book
	for rows.Next() {
		var b models.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Year, &b.ISBN, &b.ReviewCount, &b.AverageScore); err != nil {
			return nil, fmt.Errorf("database error scanning book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("database error reading books: %w", err)
	}
	return books, nil
}
