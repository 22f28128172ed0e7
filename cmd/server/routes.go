package main

import (
	"time"

	"github.com/adwyte/synergysphere-web/internal/config"
	"github.com/adwyte/synergysphere-web/internal/handlers"
	"github.com/adwyte/synergysphere-web/internal/middleware"
	"github.com/adwyte/synergysphere-web/pkg/logger"
	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices, cfg *config.Config) {
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	healthHandler := handlers.NewHealthHandler(cfg.Upstream.BaseURL)
	r.GET("/health", healthHandler.CheckHealth)

	ttl := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessionHandler := handlers.NewSessionHandler(svc.sessions, svc.boards, cfg.Session.CookieName, ttl)
	dashboardHandler := handlers.NewDashboardHandler(svc.api)
	boardHandler := handlers.NewBoardHandler(svc.boards)
	chatHandler := handlers.NewChatHandler(svc.boards)
	teamHandler := handlers.NewTeamHandler(svc.boards)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.boards)

	api := r.Group("/api")
	{
		// Session routes (public)
		sess := api.Group("/session")
		{
			sess.POST("/login", svc.loginLimiter.Middleware(), sessionHandler.Login)
			sess.POST("/signup", svc.loginLimiter.Middleware(), sessionHandler.Signup)
			sess.POST("/logout", sessionHandler.Logout)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.SessionRequired(svc.sessions, cfg.Session.CookieName))
		{
			protected.GET("/session", sessionHandler.Current)

			// Dashboard
			protected.GET("/projects", dashboardHandler.List)
			protected.POST("/projects", dashboardHandler.Create)
			protected.POST("/projects/:id/join", dashboardHandler.Join)

			// Board
			protected.GET("/projects/:id/board", boardHandler.Get)
			protected.POST("/projects/:id/tasks", boardHandler.CreateTask)
			protected.POST("/tasks/:id/move", boardHandler.Move)
			protected.POST("/tasks/:id/assign", boardHandler.Assign)
			protected.POST("/tasks/:id/priority", boardHandler.Priority)

			// Chat
			protected.GET("/projects/:id/messages", chatHandler.List)
			protected.POST("/projects/:id/messages", chatHandler.Send)

			// Team
			protected.GET("/projects/:id/members", teamHandler.List)
			protected.POST("/projects/:id/members", teamHandler.Add)

			// Analytics
			protected.GET("/projects/:id/leaderboard", analyticsHandler.Leaderboard)
		}
	}
}
