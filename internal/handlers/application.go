package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/utils"
	"gorm.io/gorm"
)

type ApplyRequest struct {
	Message string `json:"message"`
}

type ApplicationResponse struct {
	ID          uint   `json:"id"`
	TeamID      uint   `json:"teamId"`
	UserID      uint   `json:"userId"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Message     string `json:"message"`
	Status      string `json:"status"`
}

// ApplyToTeam records a join application for the team leader to review.
func ApplyToTeam(ctx *gin.Context) {
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

	var req ApplyRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	if team.Status != "recruiting" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Team is not recruiting"})
		return
	}

	member, err := isTeamMember(teamID, userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if member {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Already a member of this team"})
		return
	}

	var pending int64

	err = db.DB.Model(&models.TeamApplication{}).
		Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, "pending").
		Count(&pending).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if pending > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Application already pending"})
		return
	}

	application := models.TeamApplication{
		TeamID:  teamID,
		UserID:  userID,
		Message: req.Message,
		Status:  "pending",
	}

	if err := db.DB.Create(&application).Error; err != nil {
		log.Printf("Failed to create application: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply to team"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Application submitted", "applicationId": application.ID})
}

// ListTeamApplications returns pending applications; leader only.
func ListTeamApplications(ctx *gin.Context) {
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

	var applications []models.TeamApplication

	err = db.DB.Preload("User").
		Where("team_id = ? AND status = ?", teamID, "pending").
		Order("created_at ASC").
		Find(&applications).Error

	if err != nil {
		log.Printf("Failed to list applications for team %d: %v", teamID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve applications"})
		return
	}

	response := make([]ApplicationResponse, 0, len(applications))

	for _, application := range applications {
		response = append(response, ApplicationResponse{
			ID:          application.ID,
			TeamID:      application.TeamID,
			UserID:      application.UserID,
			Username:    application.User.Username,
			DisplayName: application.User.DisplayName,
			Message:     application.Message,
			Status:      application.Status,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"applications": response})
}

// ApproveApplication admits the applicant. The membership insert and the
// status flip run through the same capacity-checked path as join codes.
func ApproveApplication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	applicationID, err := utils.GetApplicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var application models.TeamApplication

	if err := db.DB.Preload("Team").First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	if application.Team.LeaderID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the team leader can review applications"})
		return
	}

	if application.Status != "pending" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Application already reviewed"})
		return
	}

	if err := addMember(&application.Team, application.UserID); err != nil {
		var joinErr *joinError

		if errors.As(err, &joinErr) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": joinErr.message})
			return
		}

		log.Printf("Failed to admit applicant for application %d: %v", applicationID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve application"})
		return
	}

	if err := db.DB.Model(&application).Update("status", "approved").Error; err != nil {
		log.Printf("Failed to mark application %d approved: %v", applicationID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve application"})
		return
	}

	BroadcastTeamRefresh(application.TeamID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Application approved"})
}

func RejectApplication(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	applicationID, err := utils.GetApplicationID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var application models.TeamApplication

	if err := db.DB.Preload("Team").First(&application, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve application"})
		}
		return
	}

	if application.Team.LeaderID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Only the team leader can review applications"})
		return
	}

	if application.Status != "pending" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Application already reviewed"})
		return
	}

	if err := db.DB.Model(&application).Update("status", "rejected").Error; err != nil {
		log.Printf("Failed to reject application %d: %v", applicationID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reject application"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Application rejected"})
}
