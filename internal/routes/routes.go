package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/openflea/fleamarket-backend/internal/handler"
	"github.com/openflea/fleamarket-backend/internal/middleware"
	"github.com/openflea/fleamarket-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	messageHandler *handler.MessageHandler,
	jwtManager *jwt.Manager,
) {
	api := router.Group("/api/v1")

	// Authentication endpoints
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)
	auth.GET("/me", middleware.JWTAuth(jwtManager), authHandler.GetCurrentUser)
	auth.PUT("/me", middleware.JWTAuth(jwtManager), authHandler.UpdateProfile)

	// Products (reads are public, writes owner-gated)
	products := api.Group("/products")
	products.GET("", productHandler.List)
	products.GET("/categories", productHandler.Categories)
	products.GET("/:id", productHandler.Get)
	products.POST("", middleware.JWTAuth(jwtManager), productHandler.Create)
	products.PUT("/:id", middleware.JWTAuth(jwtManager), productHandler.Update)
	products.DELETE("/:id", middleware.JWTAuth(jwtManager), productHandler.Delete)

	// Messages (participants only)
	messages := api.Group("/messages", middleware.JWTAuth(jwtManager))
	messages.GET("/inbox", messageHandler.Inbox)
	messages.GET("/sent", messageHandler.Sent)
	messages.GET("/unread-count", messageHandler.UnreadCount)
	messages.GET("/:id", messageHandler.GetConversation)
	messages.POST("", messageHandler.Send)
	messages.DELETE("/conversations/:id", messageHandler.DeleteConversation)
}
