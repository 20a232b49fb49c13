package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Judge struct {
	gorm.Model

	UserID         uint   `gorm:"not null;uniqueIndex"`
	Title          string `gorm:"not null"`
	Company        string
	ExpertiseAreas datatypes.JSON `gorm:"type:jsonb"` // []string

	// Relationships
	User        User         `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	EventJudges []EventJudge `gorm:"foreignKey:JudgeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Scorecards  []Scorecard  `gorm:"foreignKey:JudgeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
