package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/db"
	"github.com/hackhub-dev/hackhub/internal/mailbox"
	"github.com/hackhub-dev/hackhub/internal/models"
	"github.com/hackhub-dev/hackhub/internal/types"
	"github.com/hackhub-dev/hackhub/internal/utils"
	"gorm.io/gorm"
)

type SendMailRequest struct {
	RecipientIDs []uint `json:"recipientIds" binding:"required,min=1"`
	Subject      string `json:"subject" binding:"required"`
	Body         string `json:"body"`
	Priority     string `json:"priority"`
	MailType     string `json:"mailType"`
}

type MarkReadRequest struct {
	MailIDs []uint `json:"mailIds" binding:"required,min=1"`
}

var mailPriorities = map[string]bool{
	"low": true, "normal": true, "high": true, "urgent": true,
}

var mailTypes = map[string]bool{
	"team": true, "announcement": true, "meeting": true, "update": true, "alert": true,
}

// ListTeamMails returns one triage view of the team mailbox, shaped by
// ?folder=, ?type= and ?q=. The whole mailbox is fetched and filtered in
// memory; team mail volumes are small.
func ListTeamMails(ctx *gin.Context) {
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

	member, err := isTeamMember(teamID, userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !member {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this team"})
		return
	}

	folder := ctx.DefaultQuery("folder", string(mailbox.FolderInbox))

	if !mailbox.ValidFolder(folder) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown folder"})
		return
	}

	var mails []models.TeamMail

	err = db.DB.Preload("Sender").
		Where("team_id = ?", teamID).
		Order("sent_at DESC").
		Find(&mails).Error

	if err != nil {
		log.Printf("Failed to fetch mails for team %d: %v", teamID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve mails"})
		return
	}

	senderNames := make(map[uint]string, len(mails))

	for _, mail := range mails {
		senderNames[mail.SenderID] = mail.Sender.DisplayName
	}

	visible := mailbox.Filter(mails, mailbox.Query{
		Search:      ctx.Query("q"),
		MailType:    ctx.DefaultQuery("type", mailbox.MailTypeAll),
		Folder:      mailbox.Folder(folder),
		ViewerID:    userID,
		SenderNames: senderNames,
	})

	views := make([]types.MailView, 0, len(visible))

	for _, mail := range visible {
		views = append(views, types.NewMailView(mail))
	}

	ctx.JSON(http.StatusOK, gin.H{"mails": views})
}

// SendTeamMail delivers a message to team members and nudges connected
// clients to refetch.
func SendTeamMail(ctx *gin.Context) {
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

	var req SendMailRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Recipient list and subject are required"})
		return
	}

	member, err := isTeamMember(teamID, userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !member {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this team"})
		return
	}

	priority := req.Priority

	if priority == "" {
		priority = "normal"
	}

	if !mailPriorities[priority] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown priority"})
		return
	}

	mailType := req.MailType

	if mailType == "" {
		mailType = "team"
	}

	if !mailTypes[mailType] {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Unknown mail type"})
		return
	}

	// Recipients must belong to the team the mail is scoped to.
	var recipientCount int64

	err = db.DB.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id IN ?", teamID, req.RecipientIDs).
		Count(&recipientCount).Error

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if recipientCount != int64(len(req.RecipientIDs)) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "All recipients must be team members"})
		return
	}

	mail := models.TeamMail{
		TeamID:       teamID,
		SenderID:     userID,
		RecipientIDs: types.EncodeJSON(req.RecipientIDs),
		Subject:      req.Subject,
		Body:         req.Body,
		Priority:     priority,
		MailType:     mailType,
		SentAt:       time.Now().UTC(),
	}

	if err := db.DB.Create(&mail).Error; err != nil {
		log.Printf("Failed to send mail for team %d: %v", teamID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send mail"})
		return
	}

	BroadcastTeamRefresh(teamID)

	if err := db.DB.Preload("Sender").First(&mail, mail.ID).Error; err == nil {
		ctx.JSON(http.StatusCreated, gin.H{"mail": types.NewMailView(mail)})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"mailId": mail.ID})
}

// MarkMailsRead flips the read flag on a batch of mails. Only mails in teams
// the caller belongs to are touched; unknown ids are ignored.
func MarkMailsRead(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req MarkReadRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Mail id list is required"})
		return
	}

	result := db.DB.Model(&models.TeamMail{}).
		Where("id IN ? AND team_id IN (?)", req.MailIDs,
			db.DB.Model(&models.TeamMember{}).Select("team_id").Where("user_id = ?", userID)).
		Update("is_read", true)

	if result.Error != nil {
		log.Printf("Failed to mark mails read: %v", result.Error)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark mails read"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"updated": result.RowsAffected})
}

func StarMail(ctx *gin.Context) {
	setMailFlag(ctx, "is_starred", true, "Mail starred")
}

func UnstarMail(ctx *gin.Context) {
	setMailFlag(ctx, "is_starred", false, "Mail unstarred")
}

func ArchiveMail(ctx *gin.Context) {
	setMailFlag(ctx, "is_archived", true, "Mail archived")
}

func UnarchiveMail(ctx *gin.Context) {
	setMailFlag(ctx, "is_archived", false, "Mail unarchived")
}

func setMailFlag(ctx *gin.Context, column string, value bool, message string) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	mailID, err := utils.GetMailID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var mail models.TeamMail

	if err := db.DB.First(&mail, mailID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Mail not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve mail"})
		}
		return
	}

	member, err := isTeamMember(mail.TeamID, userID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !member {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this team"})
		return
	}

	if err := db.DB.Model(&mail).Update(column, value).Error; err != nil {
		log.Printf("Failed to update mail %d: %v", mailID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update mail"})
		return
	}

	BroadcastTeamRefresh(mail.TeamID)

	ctx.JSON(http.StatusOK, gin.H{"message": message})
}
