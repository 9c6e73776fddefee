package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vote is an immutable ledger row linking a voter to a chosen option.
//
// DedupKey is the store-level admission guard: empty for single-vote
// polls (one row per voter and poll) and the option id for
// multiple/approval polls (one row per voter and option). The unique
// index on (poll_id, voter_id, dedup_key) is the authoritative
// ALREADY_VOTED signal under concurrent submission; any in-memory
// pre-check is advisory only.
type Vote struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PollID    string    `gorm:"size:36;not null;index;uniqueIndex:uq_votes_admission" json:"poll_id"`
	OptionID  string    `gorm:"size:36;not null;index" json:"option_id"`
	VoterID   string    `gorm:"size:64;not null;uniqueIndex:uq_votes_admission" json:"voter_id"`
	DedupKey  string    `gorm:"size:36;not null;default:'';uniqueIndex:uq_votes_admission" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Vote
func (Vote) TableName() string {
	return "votes"
}

func (v *Vote) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return nil
}

/** -------------------- DTOs -------------------- */

// CastVoteRequest defines the input for casting a vote
type CastVoteRequest struct {
	OptionIDs []string `json:"option_ids" binding:"required"`
}

// OptionResult is one row of a poll's aggregated results
type OptionResult struct {
	OptionID   string  `json:"option_id"`
	Text       string  `json:"text"`
	Position   int     `json:"position"`
	Votes      int64   `json:"votes"`
	Percentage float64 `json:"percentage"`
}

// PollResults is the aggregate view of a poll's vote ledger
type PollResults struct {
	PollID     string         `json:"poll_id"`
	TotalVotes int64          `json:"total_votes"`
	Results    []OptionResult `json:"results"`
}
