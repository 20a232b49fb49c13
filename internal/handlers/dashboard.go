package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/types"
	"github.com/hackhub-dev/hackhub/internal/utils"
	"gorm.io/gorm"
)

type DashboardResponse struct {
	Event             types.EventView        `json:"event"`
	Registrations     RegistrationsSummary   `json:"registrations"`
	TeamsSummary      TeamsSummary           `json:"teamsSummary"`
	Submissions       SubmissionsSummary     `json:"submissions"`
	JudgeCount        int64                  `json:"judgeCount"`
	RecentSubmissions []types.SubmissionView `json:"recentSubmissions"`
	RecentSignups     []RecentSignup         `json:"recentSignups"`
}

type RegistrationsSummary struct {
	Total     int64 `json:"total"`
	Capacity  int   `json:"capacity"`
	SpotsLeft int   `json:"spotsLeft"`
}

type TeamsSummary struct {
	Total      int64 `json:"total"`
	Recruiting int64 `json:"recruiting"`
	Full       int64 `json:"full"`
	Disbanded  int64 `json:"disbanded"`
}

type SubmissionsSummary struct {
	Total     int64 `json:"total"`
	Submitted int64 `json:"submitted"`
	Drafts    int64 `json:"drafts"`
}

type RecentSignup struct {
	UserID       uint      `json:"userId"`
	Username     string    `json:"username"`
	DisplayName  string    `json:"displayName"`
	RegisteredAt time.Time `json:"registeredAt"`
}

// EventDashboard is the organizer's overview of one event.
func EventDashboard(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event

	if err := db.DB.Where("id = ? AND organizer_id = ?", eventID, userID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		}
		return
	}

	response := DashboardResponse{Event: types.NewEventView(event)}

	if err := db.DB.Model(&models.EventRegistration{}).Where("event_id = ?", eventID).
		Count(&response.Registrations.Total).Error; err != nil {
		dashboardError(ctx, eventID, err)
		return
	}

	response.Registrations.Capacity = event.MaxParticipants

	if event.MaxParticipants > 0 {
		spotsLeft := event.MaxParticipants - int(response.Registrations.Total)
		if spotsLeft < 0 {
			spotsLeft = 0
		}
		response.Registrations.SpotsLeft = spotsLeft
	}

	teamCounts := []struct {
		column string
		target *int64
	}{
		{"recruiting", &response.TeamsSummary.Recruiting},
		{"full", &response.TeamsSummary.Full},
		{"disbanded", &response.TeamsSummary.Disbanded},
	}

	if err := db.DB.Model(&models.Team{}).Where("event_id = ?", eventID).
		Count(&response.TeamsSummary.Total).Error; err != nil {
		dashboardError(ctx, eventID, err)
		return
	}

	for _, count := range teamCounts {
		if err := db.DB.Model(&models.Team{}).Where("event_id = ? AND status = ?", eventID, count.column).
			Count(count.target).Error; err != nil {
			dashboardError(ctx, eventID, err)
			return
		}
	}

	if err := db.DB.Model(&models.Submission{}).Where("event_id = ?", eventID).
		Count(&response.Submissions.Total).Error; err != nil {
		dashboardError(ctx, eventID, err)
		return
	}

	if err := db.DB.Model(&models.Submission{}).Where("event_id = ? AND status = ?", eventID, "submitted").
		Count(&response.Submissions.Submitted).Error; err != nil {
		dashboardError(ctx, eventID, err)
		return
	}

	response.Submissions.Drafts = response.Submissions.Total - response.Submissions.Submitted

	if err := db.DB.Model(&models.EventJudge{}).Where("event_id = ?", eventID).
		Count(&response.JudgeCount).Error; err != nil {
		dashboardError(ctx, eventID, err)
		return
	}

	var recentSubmissions []models.Submission

	err = db.DB.Where("event_id = ? AND status = ?", eventID, "submitted").
		Order("submitted_at DESC").Limit(5).Find(&recentSubmissions).Error

	if err != nil {
		dashboardError(ctx, eventID, err)
		return
	}

	response.RecentSubmissions = make([]types.SubmissionView, 0, len(recentSubmissions))

	for _, submission := range recentSubmissions {
		response.RecentSubmissions = append(response.RecentSubmissions, types.NewSubmissionView(submission))
	}

	var recentRegistrations []models.EventRegistration

	err = db.DB.Preload("User").Where("event_id = ?", eventID).
		Order("created_at DESC").Limit(5).Find(&recentRegistrations).Error

	if err != nil {
		dashboardError(ctx, eventID, err)
		return
	}

	response.RecentSignups = make([]RecentSignup, 0, len(recentRegistrations))

	for _, registration := range recentRegistrations {
		response.RecentSignups = append(response.RecentSignups, RecentSignup{
			UserID:       registration.UserID,
			Username:     registration.User.Username,
			DisplayName:  registration.User.DisplayName,
			RegisteredAt: registration.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

func dashboardError(ctx *gin.Context, eventID uint, err error) {
	log.Printf("Failed to build dashboard for event %d: %v", eventID, err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build dashboard"})
}
