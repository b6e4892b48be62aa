// Package router wires the HTTP surface. Paths are fixed for compatibility
// with the deployed visitor form and admin console.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/CareVoice/carevoice-backend/config"
	"github.com/CareVoice/carevoice-backend/handlers"
	"github.com/CareVoice/carevoice-backend/middleware"
	"github.com/CareVoice/carevoice-backend/services"
)

// Dependencies holds everything needed to set up routes.
type Dependencies struct {
	Config          *config.Config
	AuthService     *services.AuthService
	RateLimiter     services.RateLimiter
	FeedbackHandler *handlers.FeedbackHandler
	AuthHandler     *handlers.AuthHandler
	AdminHandler    *handlers.AdminHandler
	HealthHandler   *handlers.HealthHandler
	// StaticDir serves the visitor form and admin console when non-empty.
	StaticDir string
}

// Setup configures and returns the Gin engine with all routes defined.
func Setup(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeaders(deps.Config.IsProduction()))
	r.Use(middleware.CORS(deps.Config.Server.AllowedOrigins))

	// Public surface.
	submitLimiter := middleware.SubmitRateLimiter(deps.RateLimiter, middleware.SubmitRateLimitConfig{
		Limit:          deps.Config.RateLimit.MaxSubmissions,
		ExemptLoopback: deps.Config.RateLimit.ExemptLoopback,
	})
	r.POST("/api/submit", submitLimiter, deps.FeedbackHandler.SubmitFeedback)

	r.POST("/api/admin/login", deps.AuthHandler.Login)
	r.POST("/api/login", deps.AuthHandler.Login) // legacy alias

	r.GET("/api/test-db", deps.HealthHandler.TestDB)
	r.GET("/health/liveness", deps.HealthHandler.Liveness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Administrator surface, all behind token verification.
	adminAuth := middleware.AdminAuth(deps.AuthService)

	admin := r.Group("/api/admin", adminAuth)
	{
		admin.GET("/list", deps.AdminHandler.ListFeedback)
		admin.PUT("/update/:id", deps.AdminHandler.UpdateStatus)
		admin.DELETE("/delete/:id", deps.AdminHandler.DeleteFeedback)
		admin.GET("/statistics", deps.AdminHandler.Statistics)
	}

	// Legacy aliases kept for the original console.
	r.GET("/api/feedbacks", adminAuth, deps.AdminHandler.ListFeedback)
	r.PUT("/api/feedbacks/:id", adminAuth, deps.AdminHandler.UpdateStatus)

	if deps.StaticDir != "" {
		r.StaticFile("/", deps.StaticDir+"/index.html")
		r.StaticFile("/admin", deps.StaticDir+"/admin.html")
		r.Static("/static", deps.StaticDir+"/static")
	}

	return r
}
