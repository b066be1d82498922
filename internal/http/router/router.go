package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/proposalgen/proposal-backend/internal/config"
	"github.com/proposalgen/proposal-backend/internal/http/handlers"
	"github.com/proposalgen/proposal-backend/internal/http/middleware"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	proposalHandler *handlers.ProposalHandler,
	healthHandler *handlers.HealthHandler,
	tokens middleware.TokenParser,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.PrometheusMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware("auth", cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		protected.GET("/auth/me", authHandler.Me)

		// генерация дорогая, поэтому у неё свой лимит
		protected.POST("/proposals",
			middleware.RateLimitMiddleware("generate", cfg.RateLimitLimit, cfg.RateLimitPeriod),
			proposalHandler.Create)
		protected.GET("/proposals", proposalHandler.List)
		protected.GET("/proposals/:id", middleware.IDValidator("id"), proposalHandler.Get)
		protected.GET("/proposals/:id/download/:format", middleware.IDValidator("id"), proposalHandler.Download)
	}

	return r
}
