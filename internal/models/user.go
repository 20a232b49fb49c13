package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model

	Username     string `gorm:"uniqueIndex;not null"`
	DisplayName  string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Bio          string
	AvatarURL    string

	Skills         datatypes.JSON `gorm:"type:jsonb"` // []string
	PreferredRoles datatypes.JSON `gorm:"type:jsonb"` // []string
	SocialLinks    datatypes.JSON `gorm:"type:jsonb"` // map[string]string, e.g. github/linkedin

	// Cached aggregates, updated when event results are finalized
	Wins            int `gorm:"default:0"`
	Finals          int `gorm:"default:0"`
	HackathonsCount int `gorm:"default:0"`

	// Relationships
	OrganizedEvents []Event             `gorm:"foreignKey:OrganizerID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	LedTeams        []Team              `gorm:"foreignKey:LeaderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	TeamMemberships []TeamMember        `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Registrations   []EventRegistration `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
