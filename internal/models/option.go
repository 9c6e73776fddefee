package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Option represents one selectable choice within a poll, ordered by position.
// Option labels are unique per poll.
type Option struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PollID    string    `gorm:"size:36;not null;index;uniqueIndex:uq_options_poll_text" json:"poll_id"`
	Text      string    `gorm:"size:200;not null;uniqueIndex:uq_options_poll_text" json:"text"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Option
func (Option) TableName() string {
	return "options"
}

func (o *Option) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return nil
}
