package server

import (
	"poll-service/configs"
	"poll-service/internal/server/handlers"
	"poll-service/internal/server/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(router *gin.Engine, cfg *configs.Config, pollHandler *handlers.PollHandler, voteHandler *handlers.VoteHandler, resultsHandler *handlers.ResultsHandler) {
	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check route
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		public.GET("/polls", pollHandler.ListPolls)
		public.GET("/polls/:id", pollHandler.GetPoll)
		public.GET("/polls/:id/results", resultsHandler.GetResults)
	}

	// Voting routes: identity is resolved when present, but
	// anonymous-enabled polls accept a voter token instead
	voting := router.Group("/api/v1")
	voting.Use(middleware.OptionalAuth(cfg.JWTSecret))
	{
		voting.POST("/polls/:id/votes", voteHandler.CastVote)
		voting.DELETE("/votes/:id", voteHandler.RetractVote)
	}

	// Protected routes (require JWT authentication)
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuth(cfg.JWTSecret))
	{
		protected.POST("/polls", pollHandler.CreatePoll)
		protected.PATCH("/polls/:id", pollHandler.UpdatePoll)
		protected.DELETE("/polls/:id", pollHandler.DeletePoll)
		protected.POST("/polls/:id/active", pollHandler.SetActive)
	}
}
