package repository

import (
	"context"

	"poll-service/internal/models"

	"gorm.io/gorm"
)

type OptionRepository interface {
	FindByPoll(ctx context.Context, pollID string) ([]models.Option, error)
	CountByPoll(ctx context.Context, pollID string) (int64, error)
}

type optionRepository struct {
	db *gorm.DB
}

func NewOptionRepository(db *gorm.DB) OptionRepository {
	return &optionRepository{db: db}
}

// FindByPoll retrieves a poll's options ordered by position
func (r *optionRepository) FindByPoll(ctx context.Context, pollID string) ([]models.Option, error) {
	var options []models.Option
	err := r.db.WithContext(ctx).
		Where("poll_id = ?", pollID).
		Order("position ASC").
		Find(&options).Error
	return options, err
}

func (r *optionRepository) CountByPoll(ctx context.Context, pollID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Option{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error
	return count, err
}
