package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Submission struct {
	gorm.Model

	TeamID      uint   `gorm:"not null;uniqueIndex:idx_team_event"`
	EventID     uint   `gorm:"not null;uniqueIndex:idx_team_event"`
	Title       string `gorm:"not null"`
	Description string
	RepoURL     string
	DemoURL     string
	VideoURL    string
	TechStack   datatypes.JSON `gorm:"type:jsonb"` // []string
	Status      string         `gorm:"not null;default:'draft'"` // "draft", "submitted"
	SubmittedAt *time.Time

	// Relationships
	Team       Team        `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Event      Event       `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Scorecards []Scorecard `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
