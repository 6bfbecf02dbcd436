package router

import (
	"net/http"

	"smartrubbish/internal/handlers"
	"smartrubbish/internal/middleware"
	"smartrubbish/internal/services"
	"smartrubbish/internal/utils"

	"github.com/gin-gonic/gin"
)

// Services bundles what the handlers need.
type Services struct {
	Accounts      *services.AccountService
	Reports       *services.ReportService
	Notifications *services.NotificationService
	Triage        *services.TriageService
	Weekly        *services.WeeklyReportGenerator
}

func RegisterRoutes(r *gin.Engine, s Services) {
	// Handlers
	authHandler := handlers.NewAuthHandler(s.Accounts, s.Notifications)
	reportHandler := handlers.NewReportHandler(s.Reports, s.Accounts)
	notificationHandler := handlers.NewNotificationHandler(s.Notifications)
	userHandler := handlers.NewUserHandler(s.Accounts)
	adminHandler := handlers.NewAdminHandler(s.Accounts, s.Triage, s.Weekly)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/admin/login", authHandler.AdminLogin)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/stats", reportHandler.Stats)

	// Protected routes
	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/me", authHandler.Me)

		authorized.POST("/reports", reportHandler.Create)
		authorized.GET("/reports", reportHandler.List)
		authorized.GET("/reports/mine", reportHandler.Mine)
		authorized.GET("/reports/:id", reportHandler.Detail)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		authorized.POST("/notifications/read-all", notificationHandler.ReadAll)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		authorized.GET("/dashboard/points", userHandler.PointLogs)
	}

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/users", adminHandler.Users)
		admin.POST("/reports/:id/status", adminHandler.UpdateStatus)
		admin.GET("/weekly-report", adminHandler.WeeklyReport)
		admin.GET("/weekly-report/download", adminHandler.DownloadWeeklyReport)
		admin.GET("/weekly-report/schedule", adminHandler.Schedule)
	}

	r.NoRoute(func(c *gin.Context) {
		utils.RespondError(c, http.StatusNotFound, "", "Not found")
	})
}
