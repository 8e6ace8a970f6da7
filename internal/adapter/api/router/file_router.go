package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/handler"
	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)

	files.POST("/book-images", fileHandler.UploadBookImage)
	files.POST("/avatars", fileHandler.UploadAvatar)
	files.DELETE("", fileHandler.DeleteFile)
}
