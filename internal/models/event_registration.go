package models

import "gorm.io/gorm"

type EventRegistration struct {
	gorm.Model

	EventID uint `gorm:"not null;uniqueIndex:idx_event_user"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_event_user"`

	// Relationships
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
