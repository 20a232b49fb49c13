package models

import "gorm.io/gorm"

type TeamMember struct {
	gorm.Model

	TeamID uint   `gorm:"not null;uniqueIndex:idx_team_user"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_team_user"`
	Role   string `gorm:"not null;default:'member'"` // "leader", "member"

	// Relationships
	Team Team `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
