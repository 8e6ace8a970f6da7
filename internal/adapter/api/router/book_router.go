package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/handler"
	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/middleware"
)

func SetupBookRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	bookHandler := handler.GetBookHandler()

	// Public browsing
	e.GET("/v1/books", bookHandler.ListBooks)
	e.GET("/v1/books/:id", bookHandler.GetBook)

	// Protected: the caller's own listings
	myBooks := e.Group("/v1/my-books")
	myBooks.Use(authMiddleware.Authenticate)
	myBooks.GET("", bookHandler.ListMyBooks)
	myBooks.POST("", bookHandler.CreateBook)
	myBooks.PUT("/:id", bookHandler.UpdateBook)
	myBooks.DELETE("/:id", bookHandler.DeleteBook)
}
