package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"researchops/internal/model"
)

// UserSummary is a user row joined with the number of researches they posted.
type UserSummary struct {
	Username         string    `json:"username"`
	CreatedOn        time.Time `json:"created_on"`
	ResearchesPosted int64     `json:"researches_posted"`
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByIdentity(ctx context.Context, username string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	ListWithCounts(ctx context.Context) ([]UserSummary, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByIdentity(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ListWithCounts(ctx context.Context) ([]UserSummary, error) {
	var rows []UserSummary
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Select("users.username, users.created_on, COUNT(researches.id) AS researches_posted").
		Joins("LEFT JOIN researches ON researches.user_id = users.id").
		Group("users.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
