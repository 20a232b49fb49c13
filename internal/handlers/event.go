package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/scheduler"
	"github.com/hackhub-dev/hackhub/internal/types"
	"github.com/hackhub-dev/hackhub/internal/utils"
	"gorm.io/gorm"
)

type CreateEventRequest struct {
	Name            string    `json:"name" binding:"required"`
	Description     string    `json:"description"`
	Theme           string    `json:"theme"`
	Location        string    `json:"location"`
	StartDate       time.Time `json:"startDate" binding:"required"`
	EndDate         time.Time `json:"endDate" binding:"required"`
	MaxParticipants int       `json:"maxParticipants"`
	PrizePool       string    `json:"prizePool"`
	DiscordWebhook  string    `json:"discordWebhook"`
	SlackWebhook    string    `json:"slackWebhook"`
}

type UpdateEventRequest struct {
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Theme           *string    `json:"theme"`
	Location        *string    `json:"location"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
	MaxParticipants *int       `json:"maxParticipants"`
	PrizePool       *string    `json:"prizePool"`
	DiscordWebhook  *string    `json:"discordWebhook"`
	SlackWebhook    *string    `json:"slackWebhook"`
}

func CreateEvent(ctx *gin.Context) {
	var req CreateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !req.EndDate.After(req.StartDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	event := models.Event{
		Name:            req.Name,
		Description:     req.Description,
		Theme:           req.Theme,
		Location:        req.Location,
		Status:          "upcoming",
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		PrizePool:       req.PrizePool,
		OrganizerID:     userID,
		DiscordWebhook:  req.DiscordWebhook,
		SlackWebhook:    req.SlackWebhook,
	}

	if err := db.DB.Create(&event).Error; err != nil {
		log.Printf("Failed to create event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
		return
	}

	scheduler.AddEvent(event)

	ctx.JSON(http.StatusCreated, gin.H{"event": types.NewEventView(event)})
}

// ListEvents supports discovery filters: ?status=, ?theme= and a free-text
// ?q= over name and description.
func ListEvents(ctx *gin.Context) {
	query := db.DB.Model(&models.Event{})

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	if theme := ctx.Query("theme"); theme != "" {
		query = query.Where("theme = ?", theme)
	}

	if q := ctx.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var events []models.Event

	if err := query.Order("start_date ASC").Find(&events).Error; err != nil {
		log.Printf("Failed to list events: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	views := make([]types.EventView, 0, len(events))

	for _, event := range events {
		views = append(views, types.NewEventView(event))
	}

	ctx.JSON(http.StatusOK, gin.H{"events": views})
}

func GetEvent(ctx *gin.Context) {
	eventID, err := utils.GetEventID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var event models.Event

	if err := db.DB.First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve event"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"event": types.NewEventView(event)})
}

func UpdateEvent(ctx *gin.Context) {
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

	var req UpdateEventRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
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

	if req.Name != "" {
		event.Name = req.Name
	}

	if req.Description != nil {
		event.Description = *req.Description
	}

	if req.Theme != nil {
		event.Theme = *req.Theme
	}

	if req.Location != nil {
		event.Location = *req.Location
	}

	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}

	if req.EndDate != nil {
		event.EndDate = *req.EndDate
	}

	if !event.EndDate.After(event.StartDate) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	if req.MaxParticipants != nil {
		event.MaxParticipants = *req.MaxParticipants
	}

	if req.PrizePool != nil {
		event.PrizePool = *req.PrizePool
	}

	if req.DiscordWebhook != nil {
		event.DiscordWebhook = *req.DiscordWebhook
	}

	if req.SlackWebhook != nil {
		event.SlackWebhook = *req.SlackWebhook
	}

	if err := db.DB.Save(&event).Error; err != nil {
		log.Printf("Failed to update event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
		return
	}

	scheduler.UpdateEvent(event)

	ctx.JSON(http.StatusOK, gin.H{"event": types.NewEventView(event)})
}

func DeleteEvent(ctx *gin.Context) {
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

	if err := db.DB.Delete(&event).Error; err != nil {
		log.Printf("Failed to delete event: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
		return
	}

	scheduler.RemoveEvent(event.ID)

	ctx.Status(http.StatusNoContent)
}

// RegisterForEvent inserts the registration row and bumps the cached
// participant counter in one transaction, so the counter cannot drift from
// the registration rows on this path.
func RegisterForEvent(ctx *gin.Context) {
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

	if err := db.DB.First(&event, eventID).Error; err != nil {
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

	if event.MaxParticipants > 0 && event.ParticipantCount >= event.MaxParticipants {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event is full"})
		return
	}

	var existing models.EventRegistration

	err = db.DB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Already registered for this event"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Failed to check registration: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		registration := models.EventRegistration{EventID: eventID, UserID: userID}

		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		return tx.Model(&models.Event{}).Where("id = ?", eventID).
			UpdateColumn("participant_count", gorm.Expr("participant_count + 1")).Error
	})

	if err != nil {
		log.Printf("Failed to register for event %d: %v", eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register for event"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Registered for event"})
}

func UnregisterFromEvent(ctx *gin.Context) {
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

	var registration models.EventRegistration

	if err := db.DB.Where("event_id = ? AND user_id = ?", eventID, userID).First(&registration).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Not registered for this event"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve registration"})
		}
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&registration).Error; err != nil {
			return err
		}

		return tx.Model(&models.Event{}).Where("id = ? AND participant_count > 0", eventID).
			UpdateColumn("participant_count", gorm.Expr("participant_count - 1")).Error
	})

	if err != nil {
		log.Printf("Failed to unregister from event %d: %v", eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unregister from event"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Unregistered from event"})
}
