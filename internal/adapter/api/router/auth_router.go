package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/handler"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo) {
	authHandler := handler.GetAuthHandler()

	// Public routes
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/refresh", authHandler.RefreshToken)
}
