package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hackhub-dev/hackhub/internal/handlers"
	"github.com/hackhub-dev/hackhub/internal/middleware"
	"github.com/hackhub-dev/hackhub/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register)
			auth.POST("/login", handlers.Login)
			auth.POST("/logout", handlers.Logout)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
			auth.PATCH("/me", middleware.AuthMiddleware(), handlers.UpdateProfile)
			auth.DELETE("/me", middleware.AuthMiddleware(), handlers.DeleteAccount)
		}

		api.GET("/users/:username", handlers.GetUserProfile)

		events := api.Group("/events")
		{
			events.GET("", handlers.ListEvents)
			events.GET("/:event_id", handlers.GetEvent)
			events.GET("/:event_id/teams", handlers.ListEventTeams)

			authed := events.Group("", middleware.AuthMiddleware())
			{
				authed.POST("", handlers.CreateEvent)
				authed.PATCH("/:event_id", handlers.UpdateEvent)
				authed.DELETE("/:event_id", handlers.DeleteEvent)
				authed.POST("/:event_id/register", handlers.RegisterForEvent)
				authed.POST("/:event_id/unregister", handlers.UnregisterFromEvent)
				authed.GET("/:event_id/dashboard", handlers.EventDashboard)
				authed.GET("/:event_id/results", handlers.EventResults)
				authed.POST("/:event_id/finalize", handlers.FinalizeEvent)
				authed.POST("/:event_id/judges", handlers.AssignJudgeToEvent)
			}
		}

		teams := api.Group("/teams", middleware.AuthMiddleware())
		{
			teams.POST("", handlers.CreateTeam)
			teams.POST("/join", handlers.JoinTeamByCode)
			teams.GET("/:team_id", handlers.GetTeam)
			teams.PATCH("/:team_id", handlers.UpdateTeam)
			teams.DELETE("/:team_id", handlers.DisbandTeam)
			teams.POST("/:team_id/leave", handlers.LeaveTeam)
			teams.POST("/:team_id/apply", handlers.ApplyToTeam)
			teams.GET("/:team_id/applications", handlers.ListTeamApplications)
			teams.GET("/:team_id/mails", handlers.ListTeamMails)
			teams.POST("/:team_id/mails", handlers.SendTeamMail)
		}

		api.GET("/ws/teams/:team_id", middleware.AuthMiddleware(), handlers.TeamWebSocket)

		api.GET("/matches/:event_id", middleware.AuthMiddleware(), handlers.GetTeamMatches)

		applications := api.Group("/applications", middleware.AuthMiddleware())
		{
			applications.POST("/:application_id/approve", handlers.ApproveApplication)
			applications.POST("/:application_id/reject", handlers.RejectApplication)
		}

		mails := api.Group("/mails", middleware.AuthMiddleware())
		{
			mails.POST("/read", handlers.MarkMailsRead)
			mails.POST("/:mail_id/star", handlers.StarMail)
			mails.POST("/:mail_id/unstar", handlers.UnstarMail)
			mails.POST("/:mail_id/archive", handlers.ArchiveMail)
			mails.POST("/:mail_id/unarchive", handlers.UnarchiveMail)
		}

		submissions := api.Group("/submissions")
		{
			submissions.GET("", handlers.ListSubmissions)
			submissions.GET("/:submission_id", handlers.GetSubmission)

			authed := submissions.Group("", middleware.AuthMiddleware())
			{
				authed.POST("", handlers.CreateSubmission)
				authed.PATCH("/:submission_id", handlers.UpdateSubmission)
				authed.POST("/:submission_id/scorecards", handlers.SubmitScorecard)
			}
		}

		api.POST("/judges", middleware.AuthMiddleware(), handlers.CreateJudgeProfile)
	}

	return r
}
