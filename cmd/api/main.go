// main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/Sudharmabg/taskhive/internal/api/handlers"
	"github.com/Sudharmabg/taskhive/internal/api/middleware"
	"github.com/Sudharmabg/taskhive/internal/config"
	"github.com/Sudharmabg/taskhive/internal/cron"
	"github.com/Sudharmabg/taskhive/internal/db"
	"github.com/Sudharmabg/taskhive/internal/email"
	"github.com/Sudharmabg/taskhive/internal/repository"
	"github.com/Sudharmabg/taskhive/internal/seed"
	"github.com/Sudharmabg/taskhive/internal/service"
	"github.com/Sudharmabg/taskhive/internal/types"
)

func main() {
	// ============================================
	// Load environment variables
	// ============================================
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// ============================================
	// Load configuration
	// ============================================
	cfg := config.Load()

	// ============================================
	// Set Gin mode
	// ============================================
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ============================================
	// Run Database Migrations FIRST
	// ============================================
	log.Println("🔄 Running database migrations...")
	migrationsPath := "./internal/db/migrations"
	if err := db.RunMigrations(cfg.DatabaseURL, migrationsPath); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Database migrations completed")

	// ============================================
	// Initialize PostgreSQL
	// ============================================
	postgres, err := db.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to connect to PostgreSQL: %v", err)
	}
	defer postgres.Close()

	// ============================================
	// Initialize Repositories
	// ============================================
	repos := repository.NewRepositories(postgres.Pool)
	log.Println("📦 Repositories initialized")

	// ============================================
	// Initialize Email Service (optional)
	// ============================================
	var emailSvc *email.Service
	if cfg.SMTPHost != "" {
		emailSvc = email.NewService(&email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
			FromName: cfg.SMTPFromName,
			UseTLS:   cfg.SMTPUseTLS,
		})
		log.Println("📧 Email service initialized")
	} else {
		log.Println("⚠️  Email not configured (SMTP_HOST not set)")
	}

	// ============================================
	// Seed Data (for development)
	// ============================================
	if cfg.Environment != "production" {
		log.Println("🌱 Seeding development data...")
		seed.SeedData(repos)
	}

	// ============================================
	// Initialize All Services
	// ============================================
	services := service.NewServices(&service.ServiceDeps{
		Config:   cfg,
		Repos:    repos,
		EmailSvc: emailSvc,
	})
	log.Println("✨ All services initialized")

	// ============================================
	// Initialize Handlers
	// ============================================
	h := handlers.NewHandlers(services)

	// ============================================
	// Initialize Cron Scheduler
	// ============================================
	cronScheduler := cron.NewScheduler(services)
	cronScheduler.Start()
	defer cronScheduler.Stop()

	// ============================================
	// Create Gin Router
	// ============================================
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.RequestLogger())
	r.Use(middleware.Timeout(time.Duration(cfg.RequestTimeout) * time.Second))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"database":  "connected",
			"email":     emailStatus(emailSvc),
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// ============================================
		// Public routes (no auth required)
		// ============================================
		auth := api.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/setup-password", h.Auth.SetupPassword)
		}

		// ============================================
		// Protected routes (require auth middleware)
		// ============================================
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(services.Auth))
		{
			// Token validation echoes the authenticated user back
			protected.GET("/auth/validate", h.User.GetCurrentUser)

			// Company routes; creating companies is an admin action
			companies := protected.Group("/companies")
			{
				companies.GET("", h.Company.List)
				companies.POST("", middleware.RequireRole(types.RoleAdmin), h.Company.Create)
				companies.GET("/:id", h.Company.Get)
			}

			// User routes
			users := protected.Group("/users")
			{
				users.GET("/me", h.User.GetCurrentUser)
				users.GET("", h.User.List)
				users.POST("", h.User.Create)
				users.GET("/:id", h.User.Get)
				users.PUT("/:id", h.User.Update)
				users.POST("/:id/setup-token", h.User.IssueSetupToken)
				users.DELETE("/:id", middleware.RequireRole(types.RoleAdmin), h.User.Delete)
			}

			// Team routes
			teams := protected.Group("/teams")
			{
				teams.GET("", h.Team.List)
				teams.POST("", h.Team.Create)
				teams.GET("/:id", h.Team.Get)
				teams.PUT("/:id", h.Team.Update)
				teams.PUT("/:id/members", h.Team.ReplaceMembers)
				teams.DELETE("/:id", h.Team.Delete)
			}

			// Sprint routes
			sprints := protected.Group("/sprints")
			{
				sprints.GET("", h.Sprint.List)
				sprints.POST("", h.Sprint.Create)
				sprints.GET("/current", h.Sprint.GetCurrent)
				sprints.GET("/sprint/:sprintId", h.Sprint.GetBySprintID)
				sprints.GET("/:id", h.Sprint.Get)
				sprints.PUT("/:id", h.Sprint.Update)
				sprints.POST("/:id/close", h.Sprint.Close)
				sprints.DELETE("/:id", h.Sprint.Delete)

				// Sprint-story membership
				sprints.GET("/:id/stories", h.Story.ListBySprint)
				sprints.POST("/:id/stories/:storyId", h.Story.AddToSprint)
				sprints.DELETE("/:id/stories/:storyId", h.Story.RemoveFromSprint)
			}

			// Story routes
			stories := protected.Group("/stories")
			{
				stories.GET("", h.Story.List)
				stories.POST("", h.Story.Create)
				stories.GET("/available", h.Story.ListAvailable)
				stories.GET("/story/:storyId", h.Story.GetByStoryID)
				stories.GET("/:id", h.Story.Get)
				stories.PUT("/:id", h.Story.Update)
				stories.DELETE("/:id", h.Story.Delete)
			}

			// Analytics routes
			analytics := protected.Group("/analytics")
			{
				analytics.GET("/dashboard", h.Dashboard.Stats)
			}
		}
	}

	// Create server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		log.Printf("🚀 Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

func emailStatus(emailSvc *email.Service) string {
	if emailSvc != nil {
		return "configured"
	}
	return "disabled"
}
