package routes

import (
	"net/http"
	"time"

	"central/handlers"
	"central/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterChatRoutes registers the conversational reservation endpoints.
// Greeting and message turns serve anonymous and logged-in users alike.
func RegisterChatRoutes(r *gin.Engine) {
	api := r.Group("/api/chat")
	{
		api.Use(middleware.OptionalAuthMiddleware())
		api.GET("/greeting", handlers.ChatGreeting)
		api.POST("/message", handlers.ChatMessage)
		api.POST("/clear", handlers.ChatClear)
		api.POST("/confirm", handlers.ChatConfirm)
		api.GET("/slots", handlers.ChatSlots)

		// Post-login continuation and preference persistence need a session.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware())
		protected.POST("/confirm-pending", handlers.ChatConfirmPending)
		protected.POST("/preferences", handlers.ChatSavePreferences)
	}
}

// RegisterUserRoutes registers account endpoints.
func RegisterUserRoutes(r *gin.Engine) {
	api := r.Group("/api/users")
	{
		api.POST("/register", handlers.RegisterUser)
		api.GET("/verify", handlers.VerifyUser)
		api.POST("/login", handlers.LoginUser)
	}
}

// RegisterReservationRoutes registers the authenticated reservation endpoints.
func RegisterReservationRoutes(r *gin.Engine) {
	api := r.Group("/api/reservations")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("", handlers.MyReservations)
	}
}

// RegisterExperienceRoutes registers the public catalog endpoints.
func RegisterExperienceRoutes(r *gin.Engine) {
	api := r.Group("/api/experiences")
	{
		api.GET("", handlers.ListExperiences)
		api.GET("/:id", handlers.GetExperience)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Central"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterChatRoutes(r)
	RegisterUserRoutes(r)
	RegisterReservationRoutes(r)
	RegisterExperienceRoutes(r)
}
