package models

import "gorm.io/gorm"

type EventJudge struct {
	gorm.Model

	EventID uint `gorm:"not null;uniqueIndex:idx_event_judge"`
	JudgeID uint `gorm:"not null;uniqueIndex:idx_event_judge"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Judge Judge `gorm:"foreignKey:JudgeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
