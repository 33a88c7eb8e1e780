package repository

import (
	"context"

	"gorm.io/gorm"

	"researchops/internal/model"
)

// ResearchRepository defines persistence operations for research records.
type ResearchRepository interface {
	Create(ctx context.Context, research *model.Research) error
	ListByUser(ctx context.Context, userID uint) ([]model.Research, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type researchRepository struct {
	db *gorm.DB
}

// NewResearchRepository builds a GORM-backed repository.
func NewResearchRepository(db *gorm.DB) ResearchRepository {
	return &researchRepository{db: db}
}

func (r *researchRepository) Create(ctx context.Context, research *model.Research) error {
	return r.db.WithContext(ctx).Create(research).Error
}

// ListByUser returns the user's researches, newest first.
func (r *researchRepository) ListByUser(ctx context.Context, userID uint) ([]model.Research, error) {
	var researches []model.Research
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_on DESC").
		Find(&researches).Error
	if err != nil {
		return nil, err
	}
	return researches, nil
}

func (r *researchRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Research{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
