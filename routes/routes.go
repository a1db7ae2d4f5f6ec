package routes

import (
	"net/http"
	"time"

	"hairrap/handlers"
	"hairrap/middleware"
	"hairrap/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Hairrap", "dependencies": utils.GetHealthStatus()})
	}
	r.GET("/health", health)
	r.GET("/api/health", health)
}

// RegisterBackendRoutes exposes the mock booking API.
func RegisterBackendRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/services", hb.Backend.ListServices)
		api.GET("/bookings", hb.Backend.ListBookings)
		api.POST("/bookings", hb.Backend.CreateBooking)
		api.POST("/bookings/:id/cancel", hb.Backend.CancelBooking)
	}
}

// RegisterStateRoutes exposes the client stores to the view layer.
func RegisterStateRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	state := r.Group("/state")
	{
		state.GET("", hb.State.GetState)
		state.POST("/actions", hb.State.PostAction)
		state.GET("/ws", hb.State.Stream)
		state.GET("/services", hb.State.ListServices)
		state.GET("/categories", hb.State.ListCategories)
		state.GET("/bookings", hb.State.ListBookings)
	}
}

// RegisterAssistantRoutes registers the chat assistant endpoints.
func RegisterAssistantRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/assistant")
	{
		api.GET("/sessions", hb.Assistant.ListSessions)
		api.GET("/sessions/:id", hb.Assistant.GetSession)
		api.DELETE("/sessions/:id", hb.Assistant.DeleteSession)
		api.POST("/messages", hb.Assistant.SendMessage)
	}
}

// ApplyMiddleware installs the global middleware chain. CORS runs before the
// rate limiter so preflights are answered without spending the client's
// budget and a 429 still carries the CORS headers.
func ApplyMiddleware(r *gin.Engine, logger *zap.Logger, maxRequestsPerMin int) {
	r.Use(gin.Recovery())
	r.Use(utils.ErrorHandler(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.RateLimitMiddleware(maxRequestsPerMin, logger))
}

// RegisterRoutes centralizes registration of all endpoints.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	RegisterHealthRoute(r)
	if hb.Backend != nil {
		RegisterBackendRoutes(r, hb)
	}
	RegisterStateRoutes(r, hb)
	if hb.Assistant != nil {
		RegisterAssistantRoutes(r, hb)
	}
}
