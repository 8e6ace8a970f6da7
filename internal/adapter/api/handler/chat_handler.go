package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Hari-385/bookbridge-ai-connect/internal/usecase"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/response"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/utils"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type startConversationRequest struct {
	BookID         string `json:"book_id" validate:"required"`
	InitialMessage string `json:"initial_message" validate:"omitempty,max=2000"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required,max=2000"`
}

func (h *ChatHandler) StartConversation(c echo.Context) error {
	var req startConversationRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	conv, err := h.chatUseCase.StartConversation(c.Request().Context(), uid, usecase.StartConversationInput{
		BookID:         req.BookID,
		InitialMessage: req.InitialMessage,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, conv)
}

func (h *ChatHandler) GetConversation(c echo.Context) error {
	uid := c.Get("uid").(string)

	conv, err := h.chatUseCase.GetConversation(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conv)
}

func (h *ChatHandler) ListConversations(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	convs, total, err := h.chatUseCase.ListConversations(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, convs, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) ListMessages(c echo.Context) error {
	uid := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	messages, total, err := h.chatUseCase.ListMessages(c.Request().Context(), uid, c.Param("id"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, messages, total, pagination.Page, pagination.PageSize)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), uid, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

func (h *ChatHandler) MarkConversationRead(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.chatUseCase.MarkConversationRead(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"read": true})
}
