package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TeamMail struct {
	gorm.Model

	TeamID       uint           `gorm:"not null;index"`
	SenderID     uint           `gorm:"not null;index"`
	RecipientIDs datatypes.JSON `gorm:"type:jsonb"` // []uint, non-empty at send time
	Subject      string         `gorm:"not null"`
	Body         string
	Priority     string    `gorm:"not null;default:'normal'"` // "low", "normal", "high", "urgent"
	MailType     string    `gorm:"not null;default:'team'"`   // "team", "announcement", "meeting", "update", "alert"
	IsRead       bool      `gorm:"default:false"`
	IsStarred    bool      `gorm:"default:false"`
	IsArchived   bool      `gorm:"default:false"`
	SentAt       time.Time `gorm:"not null"`

	// Relationships
	Team   Team `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Sender User `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
