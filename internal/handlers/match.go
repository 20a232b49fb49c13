package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/matching"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/types"
	"github.com/hackhub-dev/hackhub/internal/utils"
)

type TeamMatchResponse struct {
	Team  types.TeamView       `json:"team"`
	Match matching.MatchResult `json:"match"`
}

// GetTeamMatches ranks an event's recruiting teams against the current
// user's profile, best matches first.
func GetTeamMatches(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		log.Printf("Failed to fetch user %d: %v", currentUser.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var registrations []models.EventRegistration

	if err := db.DB.Where("user_id = ?", user.ID).Find(&registrations).Error; err != nil {
		log.Printf("Failed to fetch registrations for user %d: %v", user.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	registeredEventIDs := make([]uint, 0, len(registrations))

	for _, registration := range registrations {
		registeredEventIDs = append(registeredEventIDs, registration.EventID)
	}

	profile := matching.MatchProfile{
		UserID:             user.ID,
		Skills:             types.DecodeStrings(user.Skills),
		PreferredRoles:     types.DecodeStrings(user.PreferredRoles),
		RegisteredEventIDs: registeredEventIDs,
	}

	var teams []models.Team

	err = db.DB.Preload("Members").Preload("Members.User").
		Where("event_id = ?", eventID).
		Find(&teams).Error

	if err != nil {
		log.Printf("Failed to fetch teams for event %d: %v", eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}

	facts := make([]matching.TeamFacts, 0, len(teams))
	byID := make(map[uint]models.Team, len(teams))

	for _, team := range teams {
		byID[team.ID] = team

		memberIDs := make([]uint, 0, len(team.Members))

		for _, member := range team.Members {
			memberIDs = append(memberIDs, member.UserID)
		}

		facts = append(facts, matching.TeamFacts{
			TeamID:          team.ID,
			EventID:         team.EventID,
			LeaderID:        team.LeaderID,
			Status:          team.Status,
			MaxSize:         team.MaxSize,
			MemberCount:     len(team.Members),
			MemberIDs:       memberIDs,
			RequiredSkills:  types.DecodeStrings(team.RequiredSkills),
			LookingForRoles: types.DecodeStrings(team.LookingForRoles),
		})
	}

	ranked := matching.Rank(profile, facts)

	response := make([]TeamMatchResponse, 0, len(ranked))

	for _, candidate := range ranked {
		response = append(response, TeamMatchResponse{
			Team:  types.NewTeamView(byID[candidate.Team.TeamID]),
			Match: candidate.Result,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"matches": response})
}
