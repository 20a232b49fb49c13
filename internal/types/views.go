package types

import (
	"encoding/json"
	"time"

	"github.com/hackhub-dev/hackhub/internal/models"
	"gorm.io/datatypes"
)

// View models are the camelCase JSON shapes the client renders. Database rows
// use snake_case columns, so every field is mapped explicitly here; absent
// optional fields map to empty collections, never nil, and mapping never
// fails. Derived fields (memberCount, total scores, aggregate stats) are
// one-way: they exist on the view only.

type UserView struct {
	ID              uint              `json:"id"`
	Username        string            `json:"username"`
	DisplayName     string            `json:"displayName"`
	Bio             string            `json:"bio"`
	AvatarURL       string            `json:"avatarUrl"`
	Skills          []string          `json:"skills"`
	PreferredRoles  []string          `json:"preferredRoles"`
	SocialLinks     map[string]string `json:"socialLinks"`
	Wins            int               `json:"wins"`
	Finals          int               `json:"finals"`
	HackathonsCount int               `json:"hackathonsCount"`
}

type EventView struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Theme            string    `json:"theme"`
	Location         string    `json:"location"`
	Status           string    `json:"status"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	MaxParticipants  int       `json:"maxParticipants"`
	ParticipantCount int       `json:"participantCount"`
	PrizePool        string    `json:"prizePool"`
	OrganizerID      uint      `json:"organizerId"`
}

type TeamMemberView struct {
	UserID      uint   `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Role        string `json:"role"`
}

type TeamView struct {
	ID              uint             `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	EventID         uint             `json:"eventId"`
	LeaderID        uint             `json:"leaderId"`
	MaxSize         int              `json:"maxSize"`
	Status          string           `json:"status"`
	RequiredSkills  []string         `json:"requiredSkills"`
	LookingForRoles []string         `json:"lookingForRoles"`
	MemberCount     int              `json:"memberCount"`
	Members         []TeamMemberView `json:"members"`
}

type MailView struct {
	ID           uint      `json:"id"`
	TeamID       uint      `json:"teamId"`
	SenderID     uint      `json:"senderId"`
	SenderName   string    `json:"senderName"`
	RecipientIDs []uint    `json:"recipientIds"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	Priority     string    `json:"priority"`
	MailType     string    `json:"mailType"`
	IsRead       bool      `json:"isRead"`
	IsStarred    bool      `json:"isStarred"`
	IsArchived   bool      `json:"isArchived"`
	SentAt       time.Time `json:"sentAt"`
}

type SubmissionView struct {
	ID          uint       `json:"id"`
	TeamID      uint       `json:"teamId"`
	EventID     uint       `json:"eventId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	RepoURL     string     `json:"repoUrl"`
	DemoURL     string     `json:"demoUrl"`
	VideoURL    string     `json:"videoUrl"`
	TechStack   []string   `json:"techStack"`
	Status      string     `json:"status"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

type ScorecardView struct {
	ID           uint   `json:"id"`
	SubmissionID uint   `json:"submissionId"`
	JudgeID      uint   `json:"judgeId"`
	Innovation   int    `json:"innovation"`
	Execution    int    `json:"execution"`
	Design       int    `json:"design"`
	Impact       int    `json:"impact"`
	Total        int    `json:"total"`
	Feedback     string `json:"feedback"`
}

func NewUserView(user models.User) UserView {
	return UserView{
		ID:              user.ID,
		Username:        user.Username,
		DisplayName:     user.DisplayName,
		Bio:             user.Bio,
		AvatarURL:       user.AvatarURL,
		Skills:          DecodeStrings(user.Skills),
		PreferredRoles:  DecodeStrings(user.PreferredRoles),
		SocialLinks:     DecodeStringMap(user.SocialLinks),
		Wins:            user.Wins,
		Finals:          user.Finals,
		HackathonsCount: user.HackathonsCount,
	}
}

// ToModel maps the two-way subset of a user view back onto a row. Aggregate
// stats are computed server-side and deliberately not carried over.
func (v UserView) ToModel() models.User {
	user := models.User{
		Username:       v.Username,
		DisplayName:    v.DisplayName,
		Bio:            v.Bio,
		AvatarURL:      v.AvatarURL,
		Skills:         EncodeJSON(v.Skills),
		PreferredRoles: EncodeJSON(v.PreferredRoles),
		SocialLinks:    EncodeJSON(v.SocialLinks),
	}
	user.ID = v.ID
	return user
}

func NewEventView(event models.Event) EventView {
	return EventView{
		ID:               event.ID,
		Name:             event.Name,
		Description:      event.Description,
		Theme:            event.Theme,
		Location:         event.Location,
		Status:           event.Status,
		StartDate:        event.StartDate,
		EndDate:          event.EndDate,
		MaxParticipants:  event.MaxParticipants,
		ParticipantCount: event.ParticipantCount,
		PrizePool:        event.PrizePool,
		OrganizerID:      event.OrganizerID,
	}
}

// ToModel maps the two-way subset back onto a row. ParticipantCount is
// mutated only through atomic counter updates, never through this mapping.
func (v EventView) ToModel() models.Event {
	event := models.Event{
		Name:            v.Name,
		Description:     v.Description,
		Theme:           v.Theme,
		Location:        v.Location,
		Status:          v.Status,
		StartDate:       v.StartDate,
		EndDate:         v.EndDate,
		MaxParticipants: v.MaxParticipants,
		PrizePool:       v.PrizePool,
		OrganizerID:     v.OrganizerID,
	}
	event.ID = v.ID
	return event
}

// NewTeamView expects Members (with their Users) preloaded; an unloaded
// association simply yields an empty member list.
func NewTeamView(team models.Team) TeamView {
	members := make([]TeamMemberView, 0, len(team.Members))

	for _, member := range team.Members {
		members = append(members, TeamMemberView{
			UserID:      member.UserID,
			Username:    member.User.Username,
			DisplayName: member.User.DisplayName,
			Role:        member.Role,
		})
	}

	return TeamView{
		ID:              team.ID,
		Name:            team.Name,
		Description:     team.Description,
		EventID:         team.EventID,
		LeaderID:        team.LeaderID,
		MaxSize:         team.MaxSize,
		Status:          team.Status,
		RequiredSkills:  DecodeStrings(team.RequiredSkills),
		LookingForRoles: DecodeStrings(team.LookingForRoles),
		MemberCount:     len(team.Members),
		Members:         members,
	}
}

// ToModel maps the two-way subset back onto a row. Membership rows and the
// join code live outside the view and are untouched.
func (v TeamView) ToModel() models.Team {
	team := models.Team{
		Name:            v.Name,
		Description:     v.Description,
		EventID:         v.EventID,
		LeaderID:        v.LeaderID,
		MaxSize:         v.MaxSize,
		Status:          v.Status,
		RequiredSkills:  EncodeJSON(v.RequiredSkills),
		LookingForRoles: EncodeJSON(v.LookingForRoles),
	}
	team.ID = v.ID
	return team
}

// NewMailView expects the Sender association preloaded.
func NewMailView(mail models.TeamMail) MailView {
	return MailView{
		ID:           mail.ID,
		TeamID:       mail.TeamID,
		SenderID:     mail.SenderID,
		SenderName:   mail.Sender.DisplayName,
		RecipientIDs: DecodeUints(mail.RecipientIDs),
		Subject:      mail.Subject,
		Body:         mail.Body,
		Priority:     mail.Priority,
		MailType:     mail.MailType,
		IsRead:       mail.IsRead,
		IsStarred:    mail.IsStarred,
		IsArchived:   mail.IsArchived,
		SentAt:       mail.SentAt,
	}
}

func NewSubmissionView(submission models.Submission) SubmissionView {
	return SubmissionView{
		ID:          submission.ID,
		TeamID:      submission.TeamID,
		EventID:     submission.EventID,
		Title:       submission.Title,
		Description: submission.Description,
		RepoURL:     submission.RepoURL,
		DemoURL:     submission.DemoURL,
		VideoURL:    submission.VideoURL,
		TechStack:   DecodeStrings(submission.TechStack),
		Status:      submission.Status,
		SubmittedAt: submission.SubmittedAt,
	}
}

func NewScorecardView(scorecard models.Scorecard) ScorecardView {
	return ScorecardView{
		ID:           scorecard.ID,
		SubmissionID: scorecard.SubmissionID,
		JudgeID:      scorecard.JudgeID,
		Innovation:   scorecard.Innovation,
		Execution:    scorecard.Execution,
		Design:       scorecard.Design,
		Impact:       scorecard.Impact,
		Total:        scorecard.Total,
		Feedback:     scorecard.Feedback,
	}
}

// DecodeStrings unmarshals a jsonb string array, returning an empty slice for
// NULL or malformed columns.
func DecodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var values []string

	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return []string{}
	}

	return values
}

// DecodeStringMap unmarshals a jsonb string map, returning an empty map for
// NULL or malformed columns.
func DecodeStringMap(raw datatypes.JSON) map[string]string {
	if len(raw) == 0 {
		return map[string]string{}
	}

	var values map[string]string

	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return map[string]string{}
	}

	return values
}

// DecodeUints unmarshals a jsonb id array, returning an empty slice for NULL
// or malformed columns.
func DecodeUints(raw datatypes.JSON) []uint {
	if len(raw) == 0 {
		return []uint{}
	}

	var values []uint

	if err := json.Unmarshal(raw, &values); err != nil || values == nil {
		return []uint{}
	}

	return values
}

// EncodeJSON marshals a value into a jsonb column. The inputs here are plain
// slices and string maps, which cannot fail to marshal.
func EncodeJSON(value interface{}) datatypes.JSON {
	raw, err := json.Marshal(value)

	if err != nil {
		return datatypes.JSON("null")
	}

	return datatypes.JSON(raw)
}
