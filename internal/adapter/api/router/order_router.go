package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/handler"
	"github.com/Hari-385/bookbridge-ai-connect/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.POST("", orderHandler.PlaceOrder)
	orders.GET("", orderHandler.ListOrders)
	orders.GET("/:id", orderHandler.GetOrder)
}
