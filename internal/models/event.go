package models

import (
	"time"

	"gorm.io/gorm"
)

type Event struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	Theme       string
	Location    string
	Status      string    `gorm:"not null;default:'upcoming'"` // "upcoming", "active", "completed"
	StartDate   time.Time `gorm:"not null"`
	EndDate     time.Time `gorm:"not null"`

	MaxParticipants  int
	ParticipantCount int `gorm:"default:0"` // cached counter, mutated via atomic SQL increments only
	PrizePool        string
	OrganizerID      uint `gorm:"not null;index"`

	// Optional organizer notification hooks
	DiscordWebhook string
	SlackWebhook   string

	// Relationships
	Organizer     User                `gorm:"foreignKey:OrganizerID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Teams         []Team              `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Registrations []EventRegistration `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Submissions   []Submission        `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	EventJudges   []EventJudge        `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
