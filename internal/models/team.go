package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Team struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	EventID     uint   `gorm:"not null;index"`
	LeaderID    uint   `gorm:"not null;index"`
	MaxSize     int    `gorm:"not null;default:4"`
	JoinCode    string `gorm:"uniqueIndex;not null"`
	Status      string `gorm:"not null;default:'recruiting'"` // "recruiting", "full", "disbanded"

	RequiredSkills  datatypes.JSON `gorm:"type:jsonb"` // []string
	LookingForRoles datatypes.JSON `gorm:"type:jsonb"` // []string

	// Relationships
	Event        Event             `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Leader       User              `gorm:"foreignKey:LeaderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Members      []TeamMember      `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Applications []TeamApplication `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Mails        []TeamMail        `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
