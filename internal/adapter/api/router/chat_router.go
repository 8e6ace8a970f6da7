package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/handler"
	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all chat-related routes (excluding WebSocket)
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/conversations")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("", chatHandler.StartConversation)
	chats.GET("", chatHandler.ListConversations)
	chats.GET("/:id", chatHandler.GetConversation)
	chats.PUT("/:id/read", chatHandler.MarkConversationRead)

	chats.POST("/:id/messages", chatHandler.SendMessage)
	chats.GET("/:id/messages", chatHandler.ListMessages)
}
