package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e)
	SetupProfileRouter(e, authMiddleware)
	SetupBookRouter(e, authMiddleware)
	SetupOrderRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupFileRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
