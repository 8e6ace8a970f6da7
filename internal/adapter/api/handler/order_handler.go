package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/usecase"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/response"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/utils"
)

type OrderHandler struct {
	orderUseCase *usecase.OrderUseCase
}

func NewOrderHandler(orderUseCase *usecase.OrderUseCase) *OrderHandler {
	return &OrderHandler{
		orderUseCase: orderUseCase,
	}
}

type placeOrderRequest struct {
	BookID       string `json:"book_id" validate:"required"`
	Quantity     int    `json:"quantity" validate:"required,min=1"`
	FullName     string `json:"full_name" validate:"required,min=2,max=100"`
	Phone        string `json:"phone" validate:"required,inphone"`
	Email        string `json:"email" validate:"omitempty,email"`
	AddressLine1 string `json:"address_line1" validate:"required,max=200"`
	AddressLine2 string `json:"address_line2" validate:"omitempty,max=200"`
	City         string `json:"city" validate:"required,max=80"`
	State        string `json:"state" validate:"required,max=80"`
	Pincode      string `json:"pincode" validate:"required,pincode"`
}

func (h *OrderHandler) PlaceOrder(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.PlaceOrder(c.Request().Context(), uid, usecase.PlaceOrderInput{
		BookID:   req.BookID,
		Quantity: req.Quantity,
		Shipping: entity.ShippingDetails{
			FullName:     req.FullName,
			Phone:        req.Phone,
			Email:        req.Email,
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			City:         req.City,
			State:        req.State,
			Pincode:      req.Pincode,
		},
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, order)
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	uid := c.Get("uid").(string)

	order, err := h.orderUseCase.GetOrder(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, order)
}

func (h *OrderHandler) ListOrders(c echo.Context) error {
	uid := c.Get("uid").(string)
	role := c.QueryParam("role")

	pagination := utils.GetPaginationParams(c)

	orders, total, err := h.orderUseCase.ListOrders(c.Request().Context(), uid, role, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, orders, total, pagination.Page, pagination.PageSize)
}
