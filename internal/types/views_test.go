package types

import (
	"testing"
	"time"

	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUserViewRoundTrip(t *testing.T) {
	row := models.User{
		Model:          gorm.Model{ID: 42},
		Username:       "ada",
		DisplayName:    "Ada Lovelace",
		Email:          "ada@example.com",
		Bio:            "First programmer",
		AvatarURL:      "https://example.com/ada.png",
		Skills:         EncodeJSON([]string{"Go", "React"}),
		PreferredRoles: EncodeJSON([]string{"Backend Developer"}),
		SocialLinks:    EncodeJSON(map[string]string{"github": "https://github.com/ada"}),
		Wins:           3,
		Finals:         5,
	}

	view := NewUserView(row)
	back := view.ToModel()

	assert.Equal(t, row.ID, back.ID)
	assert.Equal(t, row.Username, back.Username)
	assert.Equal(t, row.DisplayName, back.DisplayName)
	assert.Equal(t, row.Bio, back.Bio)
	assert.Equal(t, row.AvatarURL, back.AvatarURL)
	assert.JSONEq(t, string(row.Skills), string(back.Skills))
	assert.JSONEq(t, string(row.PreferredRoles), string(back.PreferredRoles))
	assert.JSONEq(t, string(row.SocialLinks), string(back.SocialLinks))

	// Write-only fields: stats are computed server-side, email never leaves
	// the auth endpoints.
	assert.Zero(t, back.Wins)
	assert.Empty(t, back.Email)
}

func TestEventViewRoundTrip(t *testing.T) {
	start := time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)

	row := models.Event{
		Model:            gorm.Model{ID: 7},
		Name:             "Autumn Hack",
		Description:      "48h build sprint",
		Theme:            "Climate",
		Location:         "Berlin",
		Status:           "upcoming",
		StartDate:        start,
		EndDate:          start.Add(48 * time.Hour),
		MaxParticipants:  200,
		ParticipantCount: 57,
		PrizePool:        "$10,000",
		OrganizerID:      3,
	}

	view := NewEventView(row)
	back := view.ToModel()

	assert.Equal(t, row.ID, back.ID)
	assert.Equal(t, row.Name, back.Name)
	assert.Equal(t, row.Theme, back.Theme)
	assert.Equal(t, row.StartDate, back.StartDate)
	assert.Equal(t, row.EndDate, back.EndDate)
	assert.Equal(t, row.OrganizerID, back.OrganizerID)

	// The counter is one-way; only atomic increments may touch it.
	assert.Zero(t, back.ParticipantCount)
}

func TestTeamViewRoundTrip(t *testing.T) {
	row := models.Team{
		Model:           gorm.Model{ID: 9},
		Name:            "Null Pointers",
		Description:     "we dereference dreams",
		EventID:         7,
		LeaderID:        42,
		MaxSize:         4,
		JoinCode:        "AB12CD34",
		Status:          "recruiting",
		RequiredSkills:  EncodeJSON([]string{"Go", "Postgres"}),
		LookingForRoles: EncodeJSON([]string{"Designer"}),
		Members: []models.TeamMember{
			{TeamID: 9, UserID: 42, Role: "leader", User: models.User{Model: gorm.Model{ID: 42}, Username: "ada", DisplayName: "Ada"}},
			{TeamID: 9, UserID: 43, Role: "member", User: models.User{Model: gorm.Model{ID: 43}, Username: "grace", DisplayName: "Grace"}},
		},
	}

	view := NewTeamView(row)

	assert.Equal(t, 2, view.MemberCount)
	assert.Equal(t, "ada", view.Members[0].Username)
	assert.Equal(t, []string{"Go", "Postgres"}, view.RequiredSkills)

	back := view.ToModel()

	assert.Equal(t, row.ID, back.ID)
	assert.Equal(t, row.Name, back.Name)
	assert.Equal(t, row.EventID, back.EventID)
	assert.Equal(t, row.LeaderID, back.LeaderID)
	assert.Equal(t, row.MaxSize, back.MaxSize)
	assert.JSONEq(t, string(row.RequiredSkills), string(back.RequiredSkills))

	// The join code is a shared secret; it never round-trips through views.
	assert.Empty(t, back.JoinCode)
}

func TestMailViewMapping(t *testing.T) {
	sent := time.Date(2026, 9, 13, 14, 30, 0, 0, time.UTC)

	row := models.TeamMail{
		Model:        gorm.Model{ID: 5},
		TeamID:       9,
		SenderID:     42,
		Sender:       models.User{Model: gorm.Model{ID: 42}, DisplayName: "Ada"},
		RecipientIDs: EncodeJSON([]uint{43, 44}),
		Subject:      "Urgent: meeting moved",
		Body:         "New room is 204",
		Priority:     "urgent",
		MailType:     "alert",
		SentAt:       sent,
	}

	view := NewMailView(row)

	assert.Equal(t, uint(5), view.ID)
	assert.Equal(t, "Ada", view.SenderName)
	assert.Equal(t, []uint{43, 44}, view.RecipientIDs)
	assert.Equal(t, "urgent", view.Priority)
	assert.Equal(t, sent, view.SentAt)
	assert.False(t, view.IsRead)
}

func TestDecodeDefaultsOnAbsentColumns(t *testing.T) {
	view := NewUserView(models.User{Username: "bare"})

	assert.NotNil(t, view.Skills)
	assert.Empty(t, view.Skills)
	assert.NotNil(t, view.SocialLinks)
	assert.Empty(t, view.SocialLinks)

	teamView := NewTeamView(models.Team{Name: "empty"})

	assert.NotNil(t, teamView.RequiredSkills)
	assert.NotNil(t, teamView.Members)
	assert.Zero(t, teamView.MemberCount)
}

func TestDecodeMalformedColumn(t *testing.T) {
	assert.Empty(t, DecodeStrings([]byte("{not json")))
	assert.Empty(t, DecodeStringMap([]byte("[]")))
	assert.Empty(t, DecodeUints([]byte("null")))
}
