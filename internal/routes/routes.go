package routes

import (
	"github.com/anyonghua/onektips-server/internal/handler"
	"github.com/anyonghua/onektips-server/internal/middleware"
	"github.com/anyonghua/onektips-server/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	articleHandler *handler.ArticleHandler,
	tagHandler *handler.TagHandler,
	eventHandler *handler.EventHandler,
	authHandler *handler.AuthHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api")

	// Authentication (no auth required)
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)

	admin := middleware.JWTAuth(jwtManager)

	// Articles. GET by id stays public for the natural-key lookup path.
	articles := api.Group("/articles")
	{
		articles.GET("", admin, articleHandler.List)
		articles.POST("", admin, articleHandler.Create)
		articles.PATCH("", admin, articleHandler.Patch)
		articles.DELETE("", admin, articleHandler.DeleteList)

		articles.GET("/:id", articleHandler.Get)
		articles.PUT("/:id", admin, articleHandler.Modify)
		articles.DELETE("/:id", admin, articleHandler.Delete)
	}

	// Tags. Listing stays public so the front end can render tag clouds.
	tags := api.Group("/tags")
	{
		tags.GET("", tagHandler.List)
		tags.POST("", admin, tagHandler.Create)
		tags.DELETE("", admin, tagHandler.DeleteList)

		tags.GET("/:id", tagHandler.Get)
		tags.PUT("/:id", admin, tagHandler.Modify)
		tags.DELETE("/:id", admin, tagHandler.Delete)
	}

	// Audit trail (admin only)
	events := api.Group("/events", admin)
	events.GET("", eventHandler.List)
}
