package repository

import (
	"context"

	"poll-service/internal/models"

	"gorm.io/gorm"
)

type VoteRepository interface {
	// Insert appends the given votes in one statement. A violation of
	// the (poll_id, voter_id, dedup_key) unique index surfaces as
	// gorm.ErrDuplicatedKey and no row is written.
	Insert(ctx context.Context, votes []*models.Vote) error
	FindByID(ctx context.Context, id string) (*models.Vote, error)
	HasVoted(ctx context.Context, pollID, voterID string) (bool, error)
	CountByOption(ctx context.Context, pollID string) (map[string]int64, error)
	Delete(ctx context.Context, id string) error
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Insert(ctx context.Context, votes []*models.Vote) error {
	return r.db.WithContext(ctx).Create(&votes).Error
}

func (r *voteRepository) FindByID(ctx context.Context, id string) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).First(&vote, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) HasVoted(ctx context.Context, pollID, voterID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Where("poll_id = ? AND voter_id = ?", pollID, voterID).
		Count(&count).Error
	return count > 0, err
}

func (r *voteRepository) CountByOption(ctx context.Context, pollID string) (map[string]int64, error) {
	type row struct {
		OptionID string
		N        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.Vote{}).
		Select("option_id, COUNT(*) AS n").
		Where("poll_id = ?", pollID).
		Group("option_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.OptionID] = r.N
	}
	return counts, nil
}

func (r *voteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Vote{}, "id = ?", id).Error
}
