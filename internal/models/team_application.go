package models

import "gorm.io/gorm"

type TeamApplication struct {
	gorm.Model

	TeamID  uint `gorm:"not null;index"`
	UserID  uint `gorm:"not null;index"`
	Message string
	Status  string `gorm:"not null;default:'pending'"` // "pending", "approved", "rejected"

	// Relationships
	Team Team `gorm:"foreignKey:TeamID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
