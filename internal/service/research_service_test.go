package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"researchops/internal/ai"
	apperrors "researchops/internal/errors"
	"researchops/internal/model"
	"researchops/internal/notify"
)

// MockResearchRepository is a mock implementation of ResearchRepository.
type MockResearchRepository struct {
	mock.Mock
}

func (m *MockResearchRepository) Create(ctx context.Context, research *model.Research) error {
	args := m.Called(ctx, research)
	return args.Error(0)
}

func (m *MockResearchRepository) ListByUser(ctx context.Context, userID uint) ([]model.Research, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Research), args.Error(1)
}

func (m *MockResearchRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockGateway is a mock implementation of CompletionGateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Answer(ctx context.Context, question, systemContext string) (string, error) {
	args := m.Called(ctx, question, systemContext)
	return args.String(0), args.Error(1)
}

// MockPublisher is a mock implementation of EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, channel, event string, payload interface{}) {
	m.Called(ctx, channel, event, payload)
}

func TestResearchService_Create(t *testing.T) {
	user := &model.User{ID: 1, Username: "demo_user"}

	t.Run("gateway success persists then publishes", func(t *testing.T) {
		mockRepo := new(MockResearchRepository)
		mockUsers := new(MockUserRepository)
		mockGateway := new(MockGateway)
		mockPublisher := new(MockPublisher)

		mockGateway.On("Answer", mock.Anything, "Howdy", ai.DefaultSystemContext).
			Return("Howdy! How can I help you today", nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Research")).Return(nil)
		mockPublisher.On("Publish", mock.Anything, notify.ResearchChannel, notify.NewResearchEvent, map[string]string{
			"question": "Howdy",
			"answer":   "Howdy! How can I help you today",
			"username": "demo_user",
		}).Return()

		service := NewResearchService(mockRepo, mockUsers, mockGateway, mockPublisher)
		research, err := service.Create(context.Background(), user, "Howdy")

		assert.NoError(t, err)
		assert.NotNil(t, research)
		assert.Equal(t, uint(1), research.UserID)
		assert.Equal(t, "Howdy", research.Question)
		assert.Equal(t, "Howdy! How can I help you today", research.Answer)

		mockGateway.AssertExpectations(t)
		mockRepo.AssertExpectations(t)
		mockPublisher.AssertExpectations(t)
	})

	t.Run("gateway unavailable aborts before persistence", func(t *testing.T) {
		mockRepo := new(MockResearchRepository)
		mockUsers := new(MockUserRepository)
		mockGateway := new(MockGateway)
		mockPublisher := new(MockPublisher)

		mockGateway.On("Answer", mock.Anything, "Howdy", ai.DefaultSystemContext).
			Return("", apperrors.ErrUpstreamUnavailable)

		service := NewResearchService(mockRepo, mockUsers, mockGateway, mockPublisher)
		research, err := service.Create(context.Background(), user, "Howdy")

		assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavailable)
		assert.Nil(t, research)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed gateway response aborts before persistence", func(t *testing.T) {
		mockRepo := new(MockResearchRepository)
		mockUsers := new(MockUserRepository)
		mockGateway := new(MockGateway)
		mockPublisher := new(MockPublisher)

		mockGateway.On("Answer", mock.Anything, "Howdy", ai.DefaultSystemContext).
			Return("", apperrors.ErrUpstreamMalformed)

		service := NewResearchService(mockRepo, mockUsers, mockGateway, mockPublisher)
		_, err := service.Create(context.Background(), user, "Howdy")

		assert.ErrorIs(t, err, apperrors.ErrUpstreamMalformed)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("persistence failure does not publish", func(t *testing.T) {
		mockRepo := new(MockResearchRepository)
		mockUsers := new(MockUserRepository)
		mockGateway := new(MockGateway)
		mockPublisher := new(MockPublisher)

		mockGateway.On("Answer", mock.Anything, "Howdy", ai.DefaultSystemContext).
			Return("an answer", nil)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Research")).
			Return(errors.New("connection lost"))

		service := NewResearchService(mockRepo, mockUsers, mockGateway, mockPublisher)
		_, err := service.Create(context.Background(), user, "Howdy")

		assert.Error(t, err)
		mockPublisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResearchService_ListForUser(t *testing.T) {
	t.Run("returns researches newest first", func(t *testing.T) {
		mockRepo := new(MockResearchRepository)
		mockUsers := new(MockUserRepository)

		now := time.Now()
		researches := []model.Research{
			{ID: 2, UserID: 1, Question: "Second", CreatedOn: now},
			{ID: 1, UserID: 1, Question: "First", CreatedOn: now.Add(-time.Hour)},
		}

		mockUsers.On("FindByIdentity", mock.Anything, "demo_user").Return(&model.User{ID: 1, Username: "demo_user"}, nil)
		mockRepo.On("ListByUser", mock.Anything, uint(1)).Return(researches, nil)

		service := NewResearchService(mockRepo, mockUsers, new(MockGateway), new(MockPublisher))
		got, err := service.ListForUser(context.Background(), "demo_user")

		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, uint(2), got[0].ID)
	})

	t.Run("unknown username", func(t *testing.T) {
		mockUsers := new(MockUserRepository)
		mockUsers.On("FindByIdentity", mock.Anything, "nonexistent").Return(nil, gorm.ErrRecordNotFound)

		service := NewResearchService(new(MockResearchRepository), mockUsers, new(MockGateway), new(MockPublisher))
		got, err := service.ListForUser(context.Background(), "nonexistent")

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
		assert.Nil(t, got)
	})

	t.Run("user with no researches returns empty, not error", func(t *testing.T) {
		mockRepo := new(MockResearchRepository)
		mockUsers := new(MockUserRepository)

		mockUsers.On("FindByIdentity", mock.Anything, "demo_user").Return(&model.User{ID: 1}, nil)
		mockRepo.On("ListByUser", mock.Anything, uint(1)).Return([]model.Research{}, nil)

		service := NewResearchService(mockRepo, mockUsers, new(MockGateway), new(MockPublisher))
		got, err := service.ListForUser(context.Background(), "demo_user")

		assert.NoError(t, err)
		assert.Empty(t, got)
	})
}
