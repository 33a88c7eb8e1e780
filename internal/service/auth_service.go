package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"researchops/internal/auth"
	apperrors "researchops/internal/errors"
	"researchops/internal/model"
	"researchops/internal/repository"
)

// AuthService handles authentication operations.
type AuthService interface {
	Login(ctx context.Context, identity, password string) (token string, csrf string, user *model.User, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login verifies the credentials and issues a token. Unknown identity and
// wrong password both return ErrInvalidCredentials so the caller cannot tell
// which one failed.
func (s *authService) Login(ctx context.Context, identity, password string) (string, string, *model.User, error) {
	user, err := s.userRepo.FindByIdentity(ctx, identity)
	if err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, apperrors.ErrInvalidCredentials
	}

	token, csrf, err := s.jwtService.GenerateAccessToken(user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	return token, csrf, user, nil
}
