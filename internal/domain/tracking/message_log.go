package tracking

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	MessageStatusApplied = "applied"
	MessageStatusFailed  = "failed"
)

// MessageLog records every chat message that produced at least one update,
// whether or not the write succeeded.
type MessageLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UpdateID int64     `gorm:"column:update_id;index" json:"update_id"`
	ChatID   string    `gorm:"column:chat_id;index" json:"chat_id"`
	Text     string    `gorm:"column:text;type:text;not null" json:"text"`
	Status   string    `gorm:"column:status;not null;index" json:"status"`

	// Parsed holds the column -> value mapping understood from Text.
	Parsed datatypes.JSON `gorm:"column:parsed" json:"parsed,omitempty"`
	Day    *time.Time     `gorm:"column:day;type:date;index" json:"day,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}

func (MessageLog) TableName() string { return "message_log" }
