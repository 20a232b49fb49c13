package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/services"
	"github.com/hackhub-dev/hackhub/internal/types"
	"github.com/hackhub-dev/hackhub/internal/utils"
	"gorm.io/gorm"
)

type CreateSubmissionRequest struct {
	TeamID      uint     `json:"teamId" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	RepoURL     string   `json:"repoUrl"`
	DemoURL     string   `json:"demoUrl"`
	VideoURL    string   `json:"videoUrl"`
	TechStack   []string `json:"techStack"`
}

type UpdateSubmissionRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	RepoURL     *string  `json:"repoUrl"`
	DemoURL     *string  `json:"demoUrl"`
	VideoURL    *string  `json:"videoUrl"`
	TechStack   []string `json:"techStack"`
	Status      *string  `json:"status"`
}

// CreateSubmission opens a draft project entry for the caller's team.
func CreateSubmission(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateSubmissionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	team, err := findTeam(req.TeamID)

	if err != nil {
		log.Printf("Failed to retrieve team %d: %v", req.TeamID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team"})
		return
	}

	if team == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Team not found"})
		return
	}

	member, err := isTeamMember(team.ID, userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !member {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this team"})
		return
	}

	var event models.Event

	if err := db.DB.First(&event, team.EventID).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		return
	}

	if event.Status == "completed" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event has already ended"})
		return
	}

	submission := models.Submission{
		TeamID:      team.ID,
		EventID:     team.EventID,
		Title:       req.Title,
		Description: req.Description,
		RepoURL:     req.RepoURL,
		DemoURL:     req.DemoURL,
		VideoURL:    req.VideoURL,
		TechStack:   types.EncodeJSON(req.TechStack),
		Status:      "draft",
	}

	if err := db.DB.Create(&submission).Error; err != nil {
		log.Printf("Failed to create submission for team %d: %v", team.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create submission"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"submission": types.NewSubmissionView(submission)})
}

// UpdateSubmission edits fields and handles the draft -> submitted
// transition, which stamps SubmittedAt and pings the organizer's webhooks.
func UpdateSubmission(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	submissionID, err := utils.GetSubmissionID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateSubmissionRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var submission models.Submission

	if err := db.DB.Preload("Team").First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve submission"})
		}
		return
	}

	member, err := isTeamMember(submission.TeamID, userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !member {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this team"})
		return
	}

	if req.Title != "" {
		submission.Title = req.Title
	}

	if req.Description != nil {
		submission.Description = *req.Description
	}

	if req.RepoURL != nil {
		submission.RepoURL = *req.RepoURL
	}

	if req.DemoURL != nil {
		submission.DemoURL = *req.DemoURL
	}

	if req.VideoURL != nil {
		submission.VideoURL = *req.VideoURL
	}

	if req.TechStack != nil {
		submission.TechStack = types.EncodeJSON(req.TechStack)
	}

	justSubmitted := false

	if req.Status != nil {
		switch *req.Status {
		case "draft":
			// Drafts may be withdrawn from judging until the event closes.
			submission.Status = "draft"
			submission.SubmittedAt = nil
		case "submitted":
			if submission.Status != "submitted" {
				now := time.Now().UTC()
				submission.Status = "submitted"
				submission.SubmittedAt = &now
				justSubmitted = true
			}
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Status must be draft or submitted"})
			return
		}
	}

	if err := db.DB.Save(&submission).Error; err != nil {
		log.Printf("Failed to update submission %d: %v", submissionID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update submission"})
		return
	}

	if justSubmitted {
		var event models.Event

		if err := db.DB.First(&event, submission.EventID).Error; err == nil {
			go func() {
				if err := services.SendSubmissionReceivedNotification(event, submission.Team, submission); err != nil {
					log.Printf("Failed to send submission notification: %v", err)
				}
			}()
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"submission": types.NewSubmissionView(submission)})
}

func GetSubmission(ctx *gin.Context) {
	submissionID, err := utils.GetSubmissionID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission

	if err := db.DB.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve submission"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"submission": types.NewSubmissionView(submission)})
}

// ListSubmissions is the public gallery: submitted projects only, optionally
// narrowed to one event.
func ListSubmissions(ctx *gin.Context) {
	query := db.DB.Where("status = ?", "submitted").Order("submitted_at DESC")

	if eventID := ctx.Query("event_id"); eventID != "" {
		query = query.Where("event_id = ?", eventID)
	}

	var submissions []models.Submission

	if err := query.Find(&submissions).Error; err != nil {
		log.Printf("Failed to list submissions: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve submissions"})
		return
	}

	views := make([]types.SubmissionView, 0, len(submissions))

	for _, submission := range submissions {
		views = append(views, types.NewSubmissionView(submission))
	}

	ctx.JSON(http.StatusOK, gin.H{"submissions": views})
}
