package catalog

import (
	"context"
	"fmt"
	"regexp"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dvanenk/bookery/internal/app/models"
	"github.com/dvanenk/bookery/internal/observability/metrics"
)

var _ CatalogService = (*CatalogServiceImpl)(nil)

// ReviewLister is the slice of the reviews domain the book page needs.
type ReviewLister interface {
	ListForBook(ctx context.Context, isbn string) ([]models.Review, error)
}

// RatingFetcher is the external rating lookup. A nil rating means no data.
type RatingFetcher interface {
	ByISBN(ctx context.Context, isbn string) (*models.Rating, error)
}

// CatalogService defines catalog reads: search, the book detail page and the
// API summary.
type CatalogService interface {
	Search(ctx context.Context, query string) ([]models.Book, error)
	BookDetail(ctx context.Context, isbn string) (*models.Book, []models.Review, *models.Rating, error)
	Summary(ctx context.Context, isbn string) (*models.BookSummary, error)
}

type CatalogServiceImpl struct {
	logger  *zap.Logger
	repo    BookRepo
	reviews ReviewLister
	ratings RatingFetcher
}

func NewCatalogService(repo BookRepo, reviews ReviewLister, ratings RatingFetcher, logger *zap.Logger) *CatalogServiceImpl {
	return &CatalogServiceImpl{
		logger:  logger,
		repo:    repo,
		reviews: reviews,
		ratings: ratings,
	}
}

var wordSplit = regexp.MustCompile(`\W+`)

// SplitQuery breaks a raw search string into words, dropping anything that is
// not a word character.
func SplitQuery(query string) []string {
	var terms []string
	for _, fragment := range wordSplit.Split(query, -1) {
		if fragment != "" {
			terms = append(terms, fragment)
		}
	}
	return terms
}

// Search runs the fragment search across title, author and ISBN.
func (s *CatalogServiceImpl) Search(ctx context.Context, query string) ([]models.Book, error) {
	terms := SplitQuery(query)
	metrics.Get().SearchesTotal.Add(ctx, 1,
		metric.WithAttributes(attribute.Int("terms", len(terms))))
	return s.repo.Search(ctx, terms)
}

// BookDetail loads everything the book page renders. The catalog and review
// reads and the external rating lookup run concurrently; a rating failure is
// logged and degrades to absent data.
func (s *CatalogServiceImpl) BookDetail(ctx context.Context, isbn string) (*models.Book, []models.Review, *models.Rating, error) {
	var (
		book    *models.Book
		reviews []models.Review
		rating  *models.Rating
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		b, err := s.repo.GetByISBN(gctx, isbn)
		book = b
		return err
	})
	g.Go(func() error {
		rv, err := s.reviews.ListForBook(gctx, isbn)
		reviews = rv
		return err
	})
	g.Go(func() error {
		rt, err := s.ratings.ByISBN(gctx, isbn)
		if err != nil {
			s.logger.Warn("External rating lookup failed", zap.String("isbn", isbn), zap.Error(err))
			metrics.Get().RatingLookupsTotal.Add(gctx, 1,
				metric.WithAttributes(attribute.String("outcome", "error")))
			return nil
		}
		metrics.Get().RatingLookupsTotal.Add(gctx, 1,
			metric.WithAttributes(attribute.String("outcome", "ok")))
		rating = rt
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return book, reviews, rating, nil
}

// Summary builds the API payload, with the average score formatted to exactly
// one decimal digit.
func (s *CatalogServiceImpl) Summary(ctx context.Context, isbn string) (*models.BookSummary, error) {
	book, err := s.repo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return &models.BookSummary{
		Title:        book.Title,
		Author:       book.Author,
		Year:         book.Year,
		ISBN:         book.ISBN,
		ReviewCount:  book.ReviewCount,
		AverageScore: fmt.Sprintf("%.1f", book.AverageScore),
	}, nil
}
