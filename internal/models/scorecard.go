package models

import "gorm.io/gorm"

type Scorecard struct {
	gorm.Model

	SubmissionID uint `gorm:"not null;uniqueIndex:idx_submission_judge"`
	JudgeID      uint `gorm:"not null;uniqueIndex:idx_submission_judge"`

	// Criteria scores, each 0-10
	Innovation int `gorm:"not null"`
	Execution  int `gorm:"not null"`
	Design     int `gorm:"not null"`
	Impact     int `gorm:"not null"`
	Total      int `gorm:"not null"` // derived sum, kept denormalized for result queries
	Feedback   string

	// Relationships
	Submission Submission `gorm:"foreignKey:SubmissionID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Judge      Judge      `gorm:"foreignKey:JudgeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
