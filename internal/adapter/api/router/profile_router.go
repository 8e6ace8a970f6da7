package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/handler"
	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/middleware"
)

func SetupProfileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	profileHandler := handler.GetProfileHandler()

	// Public: anyone can look at a seller's profile
	e.GET("/v1/profiles/:id", profileHandler.GetProfile)

	// Protected: the caller's own profile
	me := e.Group("/v1/users/me")
	me.Use(authMiddleware.Authenticate)
	me.GET("", profileHandler.GetMyProfile)
	me.PATCH("", profileHandler.UpdateMyProfile)
}
