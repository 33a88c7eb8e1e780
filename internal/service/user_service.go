package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "researchops/internal/errors"
	"researchops/internal/model"
	"researchops/internal/repository"
)

const bcryptCost = 10

// UserService exposes registration and user listing.
type UserService interface {
	Register(ctx context.Context, email, username, password string) (*model.User, error)
	List(ctx context.Context) ([]repository.UserSummary, error)
}

type userService struct {
	userRepo repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// Register hashes the password and persists a new user. Duplicate email or
// username is reported per field, matching the validation envelope. A
// registration that loses the uniqueness race to a concurrent request is
// caught by the store's unique constraints and reported the same way.
func (s *userService) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	fields := apperrors.FieldErrors{}

	if existing, err := s.userRepo.FindByEmail(ctx, email); err == nil && existing != nil {
		fields.Add("email", fmt.Sprintf("%s already exists", email))
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	if existing, err := s.userRepo.FindByIdentity(ctx, username); err == nil && existing != nil {
		fields.Add("username", fmt.Sprintf("%s already exists", username))
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	if len(fields) > 0 {
		return nil, fields
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			fields.Add("username", fmt.Sprintf("%s already exists", username))
			return nil, fields
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// List returns all users with their research counts.
func (s *userService) List(ctx context.Context) ([]repository.UserSummary, error) {
	return s.userRepo.ListWithCounts(ctx)
}
