package repository

import (
	"context"

	"poll-service/internal/models"

	"gorm.io/gorm"
)

type PollRepository interface {
	// CreateWithOptions persists a poll and its options as one
	// transaction so a failed option insert never leaves an
	// orphaned poll behind.
	CreateWithOptions(ctx context.Context, poll *models.Poll, options []*models.Option) error
	FindByID(ctx context.Context, id string) (*models.Poll, error)
	List(ctx context.Context) ([]*models.Poll, error)
	Update(ctx context.Context, poll *models.Poll) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type pollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) PollRepository {
	return &pollRepository{db: db}
}

func (r *pollRepository) CreateWithOptions(ctx context.Context, poll *models.Poll, options []*models.Option) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(poll).Error; err != nil {
			return err
		}
		for _, option := range options {
			option.PollID = poll.ID
		}
		return tx.Create(&options).Error
	})
}

func (r *pollRepository) FindByID(ctx context.Context, id string) (*models.Poll, error) {
	var poll models.Poll
	err := r.db.WithContext(ctx).First(&poll, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &poll, nil
}

func (r *pollRepository) List(ctx context.Context) ([]*models.Poll, error) {
	var polls []*models.Poll
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&polls).Error
	return polls, err
}

func (r *pollRepository) Update(ctx context.Context, poll *models.Poll) error {
	return r.db.WithContext(ctx).Save(poll).Error
}

func (r *pollRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.db.WithContext(ctx).Model(&models.Poll{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (r *pollRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Vote{}, "poll_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Option{}, "poll_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Poll{}, "id = ?", id).Error
	})
}
