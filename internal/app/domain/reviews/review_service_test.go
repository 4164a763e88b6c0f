package reviews

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/dvanenk/bookery/internal/app/models"
)

// MockReviewRepo is a mock implementation of the ReviewRepo interface.
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) ListForBook(ctx context.Context, isbn string) ([]models.Review, error) {
	args := m.Called(ctx, isbn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

func (m *MockReviewRepo) Create(ctx context.Context, username, isbn string, rating float64, body string) error {
	args := m.Called(ctx, username, isbn, rating, body)
	return args.Error(0)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	alice := models.Identity{Username: "alice"}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockReviewRepo)
		service := NewReviewService(mockRepo, zap.NewNop())
		mockRepo.On("Create", ctx, "alice", "9780441013593", 5.0, "great").Return(nil)

		err := service.Submit(ctx, alice, "alice", "9780441013593", 5, "great")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("AnonymousSessionIsForbidden", func(t *testing.T) {
		mockRepo := new(MockReviewRepo)
		service := NewReviewService(mockRepo, zap.NewNop())

		err := service.Submit(ctx, models.Identity{}, "alice", "9780441013593", 5, "great")
		assert.ErrorIs(t, err, models.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("DeclaredAuthorMustMatchSession", func(t *testing.T) {
		mockRepo := new(MockReviewRepo)
		service := NewReviewService(mockRepo, zap.NewNop())

		err := service.Submit(ctx, alice, "mallory", "9780441013593", 5, "great")
		assert.ErrorIs(t, err, models.ErrForbidden)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("DuplicateReviewPassesThrough", func(t *testing.T) {
		mockRepo := new(MockReviewRepo)
		service := NewReviewService(mockRepo, zap.NewNop())
		mockRepo.On("Create", ctx, "alice", "9780441013593", 3.0, "again").
			Return(models.ErrConflict)

		err := service.Submit(ctx, alice, "alice", "9780441013593", 3, "again")
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("UnknownBookPassesThrough", func(t *testing.T) {
		mockRepo := new(MockReviewRepo)
		service := NewReviewService(mockRepo, zap.NewNop())
		mockRepo.On("Create", ctx, "alice", "0000000000", 3.0, "x").
			Return(models.ErrNotFound)

		err := service.Submit(ctx, alice, "alice", "0000000000", 3, "x")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}
