package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/dvanenk/bookery/internal/app/models"
)

// MockAccountRepo is a mock implementation of the AccountRepo interface.
type MockAccountRepo struct {
	mock.Mock
}

func (m *MockAccountRepo) Create(ctx context.Context, username, passwordHash string) (uuid.UUID, error) {
	args := m.Called(ctx, username, passwordHash)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockAccountRepo) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())

		mockRepo.On("Create", ctx, "alice", mock.MatchedBy(func(hash string) bool {
			// The stored verifier must validate against the raw password and
			// must not be the password itself.
			return hash != "pw1" && bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw1")) == nil
		})).Return(uuid.New(), nil)

		err := service.Register(ctx, "alice", "pw1", "pw1")
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("PasswordMismatchPrecedesEmptinessCheck", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())

		// Empty username with mismatching passwords: the mismatch wins.
		err := service.Register(ctx, "", "pw1", "pw2")
		assert.ErrorIs(t, err, models.ErrPasswordMismatch)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("EmptyFields", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())

		for _, tc := range []struct {
			name                         string
			username, password, confirm string
		}{
			{"empty username", "", "pw", "pw"},
			{"whitespace username", "   ", "pw", "pw"},
			{"empty password", "alice", "", ""},
		} {
			err := service.Register(ctx, tc.username, tc.password, tc.confirm)
			assert.ErrorIs(t, err, models.ErrBadRequest, tc.name)
		}
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("DuplicateUser", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())

		mockRepo.On("Create", ctx, "alice", mock.Anything).
			Return(uuid.Nil, models.ErrConflict)

		err := service.Register(ctx, "alice", "pw1", "pw1")
		assert.ErrorIs(t, err, models.ErrConflict)
	})
}

func TestVerify(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw1"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &models.Account{ID: uuid.New(), Username: "alice", PasswordHash: string(hash)}

	t.Run("CorrectPassword", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())
		mockRepo.On("GetByUsername", ctx, "alice").Return(account, nil)

		assert.NoError(t, service.Verify(ctx, "alice", "pw1"))
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())
		mockRepo.On("GetByUsername", ctx, "alice").Return(account, nil)

		err := service.Verify(ctx, "alice", "wrongpw")
		assert.ErrorIs(t, err, models.ErrUnauthenticated)
	})

	t.Run("UnknownUserIndistinguishableFromWrongPassword", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())
		mockRepo.On("GetByUsername", ctx, "alice").Return(account, nil)
		mockRepo.On("GetByUsername", ctx, "nobody").Return(nil, models.ErrNotFound)

		wrongPw := service.Verify(ctx, "alice", "wrongpw")
		unknown := service.Verify(ctx, "nobody", "pw1")

		assert.ErrorIs(t, wrongPw, models.ErrUnauthenticated)
		assert.ErrorIs(t, unknown, models.ErrUnauthenticated)
		// Same user-facing failure either way.
		assert.Equal(t, wrongPw.Error(), unknown.Error())
	})

	t.Run("IntegrityAnomalyIsAuthFailure", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())
		mockRepo.On("GetByUsername", ctx, "alice").Return(nil, models.ErrIntegrity)

		err := service.Verify(ctx, "alice", "pw1")
		assert.ErrorIs(t, err, models.ErrUnauthenticated)
	})

	t.Run("EmptyFields", func(t *testing.T) {
		mockRepo := new(MockAccountRepo)
		service := NewAuthService(mockRepo, zap.NewNop())

		assert.ErrorIs(t, service.Verify(ctx, "", "pw1"), models.ErrBadRequest)
		assert.ErrorIs(t, service.Verify(ctx, "alice", ""), models.ErrBadRequest)
		mockRepo.AssertNotCalled(t, "GetByUsername")
	})
}
