package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/devarsh/task-manager-api/internal/auth"
	"github.com/devarsh/task-manager-api/internal/config"
	"github.com/devarsh/task-manager-api/internal/database"
	"github.com/devarsh/task-manager-api/internal/handlers"
	"github.com/devarsh/task-manager-api/internal/middleware"
	"github.com/devarsh/task-manager-api/internal/repository"
	"github.com/devarsh/task-manager-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo)
	tokens := auth.NewTokenManager(cfg.JWTSecret)

	isProduction := cfg.GinMode == gin.ReleaseMode

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, tokens, isProduction)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// CORS allow-list with credentials for the browser client
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// Health check endpoint
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Task Manager API is running!",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		requireAuth := middleware.RequireAuth(tokens, userRepo)

		// Auth routes
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/verify", requireAuth, authHandler.Verify)
			authRoutes.POST("/logout", requireAuth, authHandler.Logout)
			authRoutes.GET("/profile", requireAuth, authHandler.GetProfile)
			authRoutes.PUT("/profile", requireAuth, authHandler.UpdateProfile)
		}

		// Task routes (all protected, all owner-scoped)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
