package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"researchops/internal/ai"
	apperrors "researchops/internal/errors"
	"researchops/internal/model"
	"researchops/internal/notify"
	"researchops/internal/repository"
)

// CompletionGateway answers research questions. Satisfied by *ai.Client.
type CompletionGateway interface {
	Answer(ctx context.Context, question, systemContext string) (string, error)
}

// EventPublisher fans out research events. Satisfied by *notify.Publisher.
type EventPublisher interface {
	Publish(ctx context.Context, channel, event string, payload interface{})
}

// ResearchService orchestrates the create-research flow and history listing.
type ResearchService interface {
	Create(ctx context.Context, user *model.User, question string) (*model.Research, error)
	ListForUser(ctx context.Context, username string) ([]model.Research, error)
}

type researchService struct {
	researchRepo repository.ResearchRepository
	userRepo     repository.UserRepository
	gateway      CompletionGateway
	publisher    EventPublisher
}

// NewResearchService creates a research service.
func NewResearchService(
	researchRepo repository.ResearchRepository,
	userRepo repository.UserRepository,
	gateway CompletionGateway,
	publisher EventPublisher,
) ResearchService {
	return &researchService{
		researchRepo: researchRepo,
		userRepo:     userRepo,
		gateway:      gateway,
		publisher:    publisher,
	}
}

// Create asks the gateway for an answer, persists the record, then publishes
// the notification. The ordering is strict: nothing is persisted until the
// gateway call fully succeeds, and a publish failure never undoes the
// persisted row.
func (s *researchService) Create(ctx context.Context, user *model.User, question string) (*model.Research, error) {
	answer, err := s.gateway.Answer(ctx, question, ai.DefaultSystemContext)
	if err != nil {
		return nil, err
	}

	research := &model.Research{
		UserID:   user.ID,
		Question: question,
		Answer:   answer,
	}
	if err := s.researchRepo.Create(ctx, research); err != nil {
		return nil, fmt.Errorf("create research: %w", err)
	}

	s.publisher.Publish(ctx, notify.ResearchChannel, notify.NewResearchEvent, map[string]string{
		"question": research.Question,
		"answer":   research.Answer,
		"username": user.Username,
	})

	return research, nil
}

// ListForUser returns the named user's researches, newest first. Any
// authenticated caller may list any username's history; ownership is not
// checked, matching the existing external contract.
func (s *researchService) ListForUser(ctx context.Context, username string) ([]model.Research, error) {
	user, err := s.userRepo.FindByIdentity(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return s.researchRepo.ListByUser(ctx, user.ID)
}
