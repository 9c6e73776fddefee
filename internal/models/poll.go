package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VoteType determines how many options a voter may pick on a poll.
type VoteType string

const (
	VoteTypeSingle   VoteType = "single"
	VoteTypeMultiple VoteType = "multiple"
	VoteTypeApproval VoteType = "approval"
	// VoteTypeRanked is accepted at the schema level but admission
	// rejects it until ranked tallying exists.
	VoteTypeRanked VoteType = "ranked"
)

func (t VoteType) Valid() bool {
	switch t {
	case VoteTypeSingle, VoteTypeMultiple, VoteTypeApproval, VoteTypeRanked:
		return true
	}
	return false
}

// Poll represents a question with a bounded set of options.
type Poll struct {
	ID                 string     `gorm:"primaryKey;size:36" json:"id"`
	Title              string     `gorm:"size:200;not null" json:"title"`
	Description        string     `gorm:"type:text" json:"description,omitempty"`
	OwnerID            string     `gorm:"size:64;not null;index" json:"owner_id"`
	VoteType           VoteType   `gorm:"size:16;not null;default:single" json:"vote_type"`
	AllowMultipleVotes bool       `gorm:"not null;default:false" json:"allow_multiple_votes"`
	ShowResults        bool       `gorm:"not null;default:true" json:"show_results"`
	AllowAnonymous     bool       `gorm:"not null;default:false" json:"allow_anonymous"`
	IsActive           bool       `gorm:"not null;default:false" json:"is_active"`
	StartAt            *time.Time `json:"start_at,omitempty"`
	ExpiresAt          *time.Time `json:"expires_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName specifies the table name for Poll
func (Poll) TableName() string {
	return "polls"
}

func (p *Poll) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

/** -------------------- DTOs -------------------- */

// CreatePollRequest defines the input for creating a poll with its options
type CreatePollRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description"`
	Options            []string `json:"options" binding:"required"`
	VoteType           VoteType `json:"vote_type"`
	ShowResults        *bool    `json:"show_results"`
	AllowAnonymous     bool     `json:"allow_anonymous"`
	AllowMultipleVotes bool     `json:"allow_multiple_votes"`
	StartAt            string   `json:"start_at"`
	ExpiresAt          string   `json:"expires_at"`
}

// UpdatePollRequest defines the owner-editable poll fields
type UpdatePollRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// SetActiveRequest toggles the poll's active flag
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// PollWithOptions bundles a poll and its ordered options
type PollWithOptions struct {
	Poll    Poll     `json:"poll"`
	Options []Option `json:"options"`
}
