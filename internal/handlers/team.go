package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/types"
	"github.com/hackhub-dev/hackhub/internal/utils"
	"gorm.io/gorm"
)

type CreateTeamRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	EventID         uint     `json:"eventId" binding:"required"`
	MaxSize         int      `json:"maxSize" binding:"required,min=1,max=10"`
	RequiredSkills  []string `json:"requiredSkills"`
	LookingForRoles []string `json:"lookingForRoles"`
}

type UpdateTeamRequest struct {
	Name            string   `json:"name"`
	Description     *string  `json:"description"`
	MaxSize         *int     `json:"maxSize" binding:"omitempty,min=1,max=10"`
	Status          *string  `json:"status"`
	RequiredSkills  []string `json:"requiredSkills"`
	LookingForRoles []string `json:"lookingForRoles"`
}

type JoinTeamRequest struct {
	JoinCode string `json:"joinCode" binding:"required"`
}

// findTeam translates gorm's "no rows" into a nil team so callers can treat
// absence as data, not as an error.
func findTeam(teamID uint) (*models.Team, error) {
	var team models.Team

	err := db.DB.Preload("Members").Preload("Members.User").First(&team, teamID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &team, nil
}

// isTeamMember reports whether userID belongs to teamID.
func isTeamMember(teamID, userID uint) (bool, error) {
	var count int64

	err := db.DB.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).Count(&count).Error

	return count > 0, err
}

// CreateTeam writes the team and the leader's membership row in a single
// transaction, so a failure cannot leave an orphaned team without members.
func CreateTeam(ctx *gin.Context) {
	var req CreateTeamRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var event models.Event

	if err := db.DB.First(&event, req.EventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		}
		return
	}

	if event.Status == "completed" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event has already ended"})
		return
	}

	team := models.Team{
		Name:            req.Name,
		Description:     req.Description,
		EventID:         req.EventID,
		LeaderID:        userID,
		MaxSize:         req.MaxSize,
		JoinCode:        utils.GenerateJoinCode(),
		Status:          "recruiting",
		RequiredSkills:  types.EncodeJSON(req.RequiredSkills),
		LookingForRoles: types.EncodeJSON(req.LookingForRoles),
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}

		member := models.TeamMember{TeamID: team.ID, UserID: userID, Role: "leader"}

		return tx.Create(&member).Error
	})

	if err != nil {
		log.Printf("Failed to create team: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	created, err := findTeam(team.ID)

	if err != nil || created == nil {
		log.Printf("Failed to reload created team %d: %v", team.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create team"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"team":     types.NewTeamView(*created),
		"joinCode": created.JoinCode,
	})
}

func GetTeam(ctx *gin.Context) {
	teamID, err := utils.GetTeamID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := findTeam(teamID)

	if err != nil {
		log.Printf("Failed to retrieve team %d: %v", teamID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	if team == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	response := gin.H{"team": types.NewTeamView(*team)}

	// The join code is shared only with the leader.
	if userID, err := utils.GetCurrentUserID(ctx); err == nil && userID == team.LeaderID {
		response["joinCode"] = team.JoinCode
	}

	ctx.JSON(http.StatusOK, response)
}

func ListEventTeams(ctx *gin.Context) {
	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := db.DB.Preload("Members").Preload("Members.User").Where("event_id = ?", eventID)

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var teams []models.Team

	if err := query.Find(&teams).Error; err != nil {
		log.Printf("Failed to list teams for event %d: %v", eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}

	views := make([]types.TeamView, 0, len(teams))

	for _, team := range teams {
		views = append(views, types.NewTeamView(team))
	}

	ctx.JSON(http.StatusOK, gin.H{"teams": views})
}

func UpdateTeam(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamID, err := utils.GetTeamID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateTeamRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var team models.Team

	if err := db.DB.Where("id = ? AND leader_id = ?", teamID, userID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		}
		return
	}

	if team.Status == "disbanded" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Team has been disbanded"})
		return
	}

	if req.Name != "" {
		team.Name = req.Name
	}

	if req.Description != nil {
		team.Description = *req.Description
	}

	if req.MaxSize != nil {
		var memberCount int64

		if err := db.DB.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount).Error; err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
			return
		}

		if int64(*req.MaxSize) < memberCount {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Max size cannot be below current member count"})
			return
		}

		team.MaxSize = *req.MaxSize
	}

	if req.Status != nil {
		if *req.Status != "recruiting" && *req.Status != "full" {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status must be recruiting or full"})
			return
		}
		team.Status = *req.Status
	}

	if req.RequiredSkills != nil {
		team.RequiredSkills = types.EncodeJSON(req.RequiredSkills)
	}

	if req.LookingForRoles != nil {
		team.LookingForRoles = types.EncodeJSON(req.LookingForRoles)
	}

	if err := db.DB.Save(&team).Error; err != nil {
		log.Printf("Failed to update team %d: %v", team.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update team"})
		return
	}

	updated, err := findTeam(team.ID)

	if err != nil || updated == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	BroadcastTeamRefresh(team.ID)

	ctx.JSON(http.StatusOK, gin.H{"team": types.NewTeamView(*updated)})
}

// DisbandTeam marks the team disbanded and removes its memberships. The team
// row is kept so mail history stays readable.
func DisbandTeam(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamID, err := utils.GetTeamID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var team models.Team

	if err := db.DB.Where("id = ? AND leader_id = ?", teamID, userID).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&team).Update("status", "disbanded").Error; err != nil {
			return err
		}

		return tx.Unscoped().Where("team_id = ?", team.ID).Delete(&models.TeamMember{}).Error
	})

	if err != nil {
		log.Printf("Failed to disband team %d: %v", team.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to disband team"})
		return
	}

	BroadcastTeamRefresh(team.ID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Team disbanded"})
}

// JoinTeamByCode redeems a join code, bypassing the application flow.
func JoinTeamByCode(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req JoinTeamRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.JoinCode))

	var team models.Team

	if err := db.DB.Where("join_code = ?", code).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invalid join code"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		}
		return
	}

	if err := addMember(&team, userID); err != nil {
		var joinErr *joinError

		if errors.As(err, &joinErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": joinErr.message})
			return
		}

		log.Printf("Failed to join team %d: %v", team.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to join team"})
		return
	}

	joined, err := findTeam(team.ID)

	if err != nil || joined == nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	BroadcastTeamRefresh(team.ID)

	ctx.JSON(http.StatusOK, gin.H{"team": types.NewTeamView(*joined)})
}

func LeaveTeam(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	teamID, err := utils.GetTeamID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var team models.Team

	if err := db.DB.First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		}
		return
	}

	if team.LeaderID == userID {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Leaders must disband or transfer the team instead of leaving"})
		return
	}

	var membership models.TeamMember

	if err := db.DB.Where("team_id = ? AND user_id = ?", teamID, userID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not a member of this team"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve membership"})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&membership).Error; err != nil {
			return err
		}

		// A full team with an open seat again goes back to recruiting.
		return tx.Model(&models.Team{}).
			Where("id = ? AND status = ?", teamID, "full").
			Update("status", "recruiting").Error
	})

	if err != nil {
		log.Printf("Failed to leave team %d: %v", teamID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to leave team"})
		return
	}

	BroadcastTeamRefresh(teamID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Left team"})
}

type joinError struct {
	message string
}

func (e *joinError) Error() string {
	return e.message
}

// addMember enforces the join invariants and inserts the membership row,
// flipping the team to full when the last seat is taken. Runs in its own
// transaction with the capacity check inside it.
func addMember(team *models.Team, userID uint) error {
	if team.Status == "disbanded" {
		return &joinError{"Team has been disbanded"}
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		var memberCount int64

		if err := tx.Model(&models.TeamMember{}).Where("team_id = ?", team.ID).Count(&memberCount).Error; err != nil {
			return err
		}

		if memberCount >= int64(team.MaxSize) {
			return &joinError{"Team is full"}
		}

		var existing int64

		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", team.ID, userID).Count(&existing).Error; err != nil {
			return err
		}

		if existing > 0 {
			return &joinError{"Already a member of this team"}
		}

		member := models.TeamMember{TeamID: team.ID, UserID: userID, Role: "member"}

		if err := tx.Create(&member).Error; err != nil {
			return err
		}

		if memberCount+1 >= int64(team.MaxSize) {
			return tx.Model(team).Update("status", "full").Error
		}

		return nil
	})
}
