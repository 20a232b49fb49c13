package handlers

import (
	"errors"
	"log"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/scheduler"
	"github.com/hackhub-dev/hackhub/internal/services"
	"github.com/hackhub-dev/hackhub/internal/types"
	"github.com/hackhub-dev/hackhub/internal/utils"
	"gorm.io/gorm"
)

type CreateJudgeRequest struct {
	Title          string   `json:"title" binding:"required"`
	Company        string   `json:"company"`
	ExpertiseAreas []string `json:"expertiseAreas"`
}

type AssignJudgeRequest struct {
	JudgeID uint `json:"judgeId" binding:"required"`
}

type ScorecardRequest struct {
	Innovation int    `json:"innovation" binding:"min=0,max=10"`
	Execution  int    `json:"execution" binding:"min=0,max=10"`
	Design     int    `json:"design" binding:"min=0,max=10"`
	Impact     int    `json:"impact" binding:"min=0,max=10"`
	Feedback   string `json:"feedback"`
}

type SubmissionResult struct {
	Submission     types.SubmissionView  `json:"submission"`
	TeamName       string                `json:"teamName"`
	ScorecardCount int                   `json:"scorecardCount"`
	AverageScore   float64               `json:"averageScore"`
	Scorecards     []types.ScorecardView `json:"scorecards"`
}

// CreateJudgeProfile registers the current user as a judge.
func CreateJudgeProfile(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateJudgeRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var existing models.Judge

	err = db.DB.Where("user_id = ?", userID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Judge profile already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	judge := models.Judge{
		UserID:         userID,
		Title:          req.Title,
		Company:        req.Company,
		ExpertiseAreas: types.EncodeJSON(req.ExpertiseAreas),
	}

	if err := db.DB.Create(&judge).Error; err != nil {
		log.Printf("Failed to create judge profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create judge profile"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"judgeId": judge.ID})
}

// AssignJudgeToEvent puts a judge on an event's panel; organizer only.
func AssignJudgeToEvent(ctx *gin.Context) {
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

	var req AssignJudgeRequest

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

	var judge models.Judge

	if err := db.DB.First(&judge, req.JudgeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Judge not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve judge"})
		}
		return
	}

	var existing int64

	err = db.DB.Model(&models.EventJudge{}).
		Where("event_id = ? AND judge_id = ?", eventID, judge.ID).Count(&existing).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if existing > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Judge already assigned to this event"})
		return
	}

	assignment := models.EventJudge{EventID: eventID, JudgeID: judge.ID}

	if err := db.DB.Create(&assignment).Error; err != nil {
		log.Printf("Failed to assign judge %d to event %d: %v", judge.ID, eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign judge"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Judge assigned to event"})
}

// SubmitScorecard creates or replaces the caller's scorecard for a
// submission. Only judges on the event's panel may score, and only once the
// project is submitted.
func SubmitScorecard(ctx *gin.Context) {
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

	var req ScorecardRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Scores must be between 0 and 10"})
		return
	}

	var judge models.Judge

	if err := db.DB.Where("user_id = ?", userID).First(&judge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusForbidden, gin.H{"error": "Judge profile required"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
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

	if submission.Status != "submitted" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Submission is still a draft"})
		return
	}

	var assigned int64

	err = db.DB.Model(&models.EventJudge{}).
		Where("event_id = ? AND judge_id = ?", submission.EventID, judge.ID).Count(&assigned).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if assigned == 0 {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not assigned to judge this event"})
		return
	}

	total := req.Innovation + req.Execution + req.Design + req.Impact

	var scorecard models.Scorecard

	err = db.DB.Where("submission_id = ? AND judge_id = ?", submissionID, judge.ID).First(&scorecard).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	scorecard.SubmissionID = submissionID
	scorecard.JudgeID = judge.ID
	scorecard.Innovation = req.Innovation
	scorecard.Execution = req.Execution
	scorecard.Design = req.Design
	scorecard.Impact = req.Impact
	scorecard.Total = total
	scorecard.Feedback = req.Feedback

	if err := db.DB.Save(&scorecard).Error; err != nil {
		log.Printf("Failed to save scorecard for submission %d: %v", submissionID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save scorecard"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"scorecard": types.NewScorecardView(scorecard)})
}

// EventResults aggregates scorecards per submission, best average first;
// organizer only until the event completes.
func EventResults(ctx *gin.Context) {
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

	if event.Status != "completed" && event.OrganizerID != userID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Results are visible once the event completes"})
		return
	}

	results, err := aggregateEventResults(eventID)

	if err != nil {
		log.Printf("Failed to aggregate results for event %d: %v", eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute results"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"results": results})
}

// FinalizeEvent locks in the rankings: the event is marked completed, the
// winning team's members get a win, top-three teams get a finals credit, and
// every registrant's hackathon count is bumped.
func FinalizeEvent(ctx *gin.Context) {
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

	if event.Status == "completed" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Event already finalized"})
		return
	}

	results, err := aggregateEventResults(eventID)

	if err != nil {
		log.Printf("Failed to aggregate results for event %d: %v", eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute results"})
		return
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&event).Update("status", "completed").Error; err != nil {
			return err
		}

		for rank, result := range results {
			if rank >= 3 {
				break
			}

			var memberIDs []uint

			if err := tx.Model(&models.TeamMember{}).
				Where("team_id = ?", result.Submission.TeamID).
				Pluck("user_id", &memberIDs).Error; err != nil {
				return err
			}

			if len(memberIDs) == 0 {
				continue
			}

			if err := tx.Model(&models.User{}).Where("id IN ?", memberIDs).
				UpdateColumn("finals", gorm.Expr("finals + 1")).Error; err != nil {
				return err
			}

			if rank == 0 {
				if err := tx.Model(&models.User{}).Where("id IN ?", memberIDs).
					UpdateColumn("wins", gorm.Expr("wins + 1")).Error; err != nil {
					return err
				}
			}
		}

		var registrantIDs []uint

		if err := tx.Model(&models.EventRegistration{}).
			Where("event_id = ?", eventID).
			Pluck("user_id", &registrantIDs).Error; err != nil {
			return err
		}

		if len(registrantIDs) > 0 {
			if err := tx.Model(&models.User{}).Where("id IN ?", registrantIDs).
				UpdateColumn("hackathons_count", gorm.Expr("hackathons_count + 1")).Error; err != nil {
				return err
			}
		}

		return nil
	})

	if err != nil {
		log.Printf("Failed to finalize event %d: %v", eventID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finalize event"})
		return
	}

	scheduler.RemoveEvent(eventID)

	event.Status = "completed"

	go func() {
		if err := services.SendEventStatusNotification(event, "completed"); err != nil {
			log.Printf("Failed to send completion notification for event %d: %v", eventID, err)
		}
	}()

	ctx.JSON(http.StatusOK, gin.H{"message": "Event finalized", "results": results})
}

func aggregateEventResults(eventID uint) ([]SubmissionResult, error) {
	var submissions []models.Submission

	err := db.DB.Preload("Team").Preload("Scorecards").
		Where("event_id = ? AND status = ?", eventID, "submitted").
		Find(&submissions).Error

	if err != nil {
		return nil, err
	}

	results := make([]SubmissionResult, 0, len(submissions))

	for _, submission := range submissions {
		scorecards := make([]types.ScorecardView, 0, len(submission.Scorecards))
		sum := 0

		for _, scorecard := range submission.Scorecards {
			scorecards = append(scorecards, types.NewScorecardView(scorecard))
			sum += scorecard.Total
		}

		average := 0.0

		if len(submission.Scorecards) > 0 {
			average = float64(sum) / float64(len(submission.Scorecards))
		}

		results = append(results, SubmissionResult{
			Submission:     types.NewSubmissionView(submission),
			TeamName:       submission.Team.Name,
			ScorecardCount: len(submission.Scorecards),
			AverageScore:   average,
			Scorecards:     scorecards,
		})
	}

	// Best average first; unscored submissions sink to the bottom.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].AverageScore > results[j].AverageScore
	})

	return results, nil
}
