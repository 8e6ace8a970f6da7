package handler

import (
	"github.com/Hari-385/bookbridge-ai-connect/internal/usecase"
)

var (
	authHandler    *AuthHandler
	profileHandler *ProfileHandler
	bookHandler    *BookHandler
	orderHandler   *OrderHandler
	chatHandler    *ChatHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	profileUseCase *usecase.ProfileUseCase,
	bookUseCase *usecase.BookUseCase,
	orderUseCase *usecase.OrderUseCase,
	chatUseCase *usecase.ChatUseCase,
) {
	authHandler = NewAuthHandler(authUseCase)
	profileHandler = NewProfileHandler(profileUseCase)
	bookHandler = NewBookHandler(bookUseCase)
	orderHandler = NewOrderHandler(orderUseCase)
	chatHandler = NewChatHandler(chatUseCase)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetProfileHandler() *ProfileHandler {
	return profileHandler
}

func GetBookHandler() *BookHandler {
	return bookHandler
}

func GetOrderHandler() *OrderHandler {
	return orderHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}
