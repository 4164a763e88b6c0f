package reviews

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
)

var _ ReviewService = (*ReviewServiceImpl)(nil)

// ReviewService defines the review-submission logic: the fine-grained
// authorization checks on top of the coarse route gate.
type ReviewService interface {
	// Submit records a review for the authenticated identity. Failure modes:
	// models.ErrForbidden when the session is anonymous or the declared
	// author is not the session's username, models.ErrConflict when a review
	// already exists for this (account, book), models.ErrNotFound when the
	// book is not in the catalog.
	Submit(ctx context.Context, identity models.Identity, declaredAuthor, isbn string, rating float64, body string) error
}

type ReviewServiceImpl struct {
	logger *zap.Logger
	repo   ReviewRepo
}

func NewReviewService(repo ReviewRepo, logger *zap.Logger) *ReviewServiceImpl {
	return &ReviewServiceImpl{logger: logger, repo: repo}
}

// Submit implements ReviewService. The uniqueness check is not done here —
// the store's constraint decides, so two racing submissions cannot both win.
func (s *ReviewServiceImpl) Submit(ctx context.Context, identity models.Identity, declaredAuthor, isbn string, rating float64, body string) error {
	l := s.logger.With(zap.String("method", "Submit"), zap.String("isbn", isbn))

	if identity.Anonymous() {
		return fmt.Errorf("not logged in: %w", models.ErrForbidden)
	}
	if declaredAuthor != identity.Username {
		l.Warn("Review author does not match session identity",
			zap.String("declared", declaredAuthor), zap.String("session", identity.Username))
		return fmt.Errorf("review author does not match the logged in user: %w", models.ErrForbidden)
	}

	if err := s.repo.Create(ctx, identity.Username, isbn, rating, body); err != nil {
		l.Warn("Review submission rejected", zap.Error(err))
		return err
	}

	l.Info("Review recorded", zap.String("username", identity.Username))
	return nil
}
