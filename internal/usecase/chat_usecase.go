package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/policy"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/ratelimit"
	ws "github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/websocket"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/logger"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/utils"
)

type ChatUseCase struct {
	chatRepo    repository.ChatRepository
	bookRepo    repository.BookRepository
	profileRepo repository.ProfileRepository
	wsManager   *ws.Manager
	rateLimiter *ratelimit.RateLimiter
}

func NewChatUseCase(
	chatRepo repository.ChatRepository,
	bookRepo repository.BookRepository,
	profileRepo repository.ProfileRepository,
	wsManager *ws.Manager,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		chatRepo:    chatRepo,
		bookRepo:    bookRepo,
		profileRepo: profileRepo,
		wsManager:   wsManager,
		rateLimiter: rateLimiter,
	}
}

type StartConversationInput struct {
	BookID         string
	InitialMessage string
}

type ConversationResponse struct {
	*entity.Conversation
	Book         *entity.Book    `json:"book,omitempty"`
	OtherProfile *entity.Profile `json:"other_profile,omitempty"`
}

// StartConversation opens (or returns) the thread between the caller and
// the book's owner. One thread exists per (book, buyer) pair.
func (uc *ChatUseCase) StartConversation(ctx context.Context, buyerID string, input StartConversationInput) (*ConversationResponse, error) {
	allowed, waitTime := uc.rateLimiter.Allow(buyerID, ratelimit.ActionStartConversation)
	if !allowed {
		logger.Warn("StartConversation rate limited: user %s must wait %v", buyerID, waitTime)
		return nil, errors.TooManyRequests("Too many new conversations. Please wait before starting another")
	}

	book, err := uc.bookRepo.GetByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	conv := &entity.Conversation{
		BookID:      book.ID,
		BuyerID:     buyerID,
		SellerID:    book.UserID,
		UnreadCount: make(map[string]int),
	}

	if !policy.CanInsertConversation(buyerID, conv) {
		return nil, errors.BadRequest("You cannot start a conversation about your own listing", nil)
	}

	existing, err := uc.chatRepo.FindConversation(ctx, book.ID, buyerID)
	if err == nil {
		conv = existing
	} else {
		if !errors.Is(err, "NOT_FOUND") {
			return nil, err
		}
		conv.LastMessageAt = time.Now()
		if err := uc.chatRepo.CreateConversation(ctx, conv); err != nil {
			return nil, err
		}
	}

	if input.InitialMessage != "" {
		if _, err := uc.SendMessage(ctx, buyerID, conv.ID, input.InitialMessage); err != nil {
			return nil, err
		}
	}

	seller, err := uc.profileRepo.GetByID(ctx, book.UserID)
	if err != nil {
		logger.Warn("StartConversation: seller profile %s missing: %v", book.UserID, err)
		seller = nil
	}

	return &ConversationResponse{
		Conversation: conv,
		Book:         book,
		OtherProfile: seller,
	}, nil
}

// GetConversation returns one thread for a participant. Non-parties read
// it as NotFound.
func (uc *ChatUseCase) GetConversation(ctx context.Context, userID, conversationID string) (*ConversationResponse, error) {
	conv, err := uc.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !policy.CanReadConversation(userID, conv) {
		return nil, errors.NotFound("Conversation", nil)
	}

	return uc.enrichConversation(ctx, userID, conv), nil
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string, page, pageSize int) ([]*ConversationResponse, int64, error) {
	pagination := utils.NewPaginationParams(page, pageSize)

	convs, total, err := uc.chatRepo.ListConversationsByUserID(ctx, userID, pagination.PageSize, pagination.Offset)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*ConversationResponse, len(convs))
	for i, conv := range convs {
		responses[i] = uc.enrichConversation(ctx, userID, conv)
	}

	return responses, total, nil
}

func (uc *ChatUseCase) enrichConversation(ctx context.Context, userID string, conv *entity.Conversation) *ConversationResponse {
	resp := &ConversationResponse{Conversation: conv}

	if book, err := uc.bookRepo.GetByID(ctx, conv.BookID); err == nil {
		resp.Book = book
	}
	if other, err := uc.profileRepo.GetByID(ctx, conv.OtherParticipant(userID)); err == nil {
		resp.OtherProfile = other
	}

	return resp
}

// ListMessages returns the thread history ascending by creation time.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, conversationID string, page, pageSize int) ([]*entity.Message, int64, error) {
	conv, err := uc.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, 0, err
	}

	if !policy.CanReadConversation(userID, conv) {
		return nil, 0, errors.NotFound("Conversation", nil)
	}

	pagination := utils.NewPaginationParams(page, pageSize)
	return uc.chatRepo.ListMessages(ctx, conversationID, pagination.PageSize, pagination.Offset)
}

// SendMessage appends to the thread and pushes the new row to connected
// participants. Content is trimmed and must be non-empty; messages are
// never edited or deleted after this point.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, conversationID, content string) (*entity.Message, error) {
	allowed, waitTime := uc.rateLimiter.Allow(senderID, ratelimit.ActionSendMessage)
	if !allowed {
		logger.Warn("SendMessage rate limited: user %s must wait %v", senderID, waitTime)
		return nil, errors.TooManyRequests("Too many messages. Please slow down")
	}

	conv, err := uc.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	message := &entity.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        strings.TrimSpace(content),
	}

	if !policy.CanInsertMessage(senderID, conv, message) {
		if !conv.HasParticipant(senderID) {
			return nil, errors.NotFound("Conversation", nil)
		}
		return nil, errors.BadRequest("Message content cannot be empty", nil)
	}

	if err := uc.chatRepo.CreateMessage(ctx, message); err != nil {
		return nil, err
	}

	recipient := conv.OtherParticipant(senderID)

	conv.LastMessage = message.Content
	conv.LastMessageAt = message.CreatedAt
	if conv.UnreadCount == nil {
		conv.UnreadCount = make(map[string]int)
	}
	conv.UnreadCount[recipient]++

	if err := uc.chatRepo.UpdateConversation(ctx, conv); err != nil {
		logger.Error("Failed to update conversation %s after message: %v", conv.ID, err)
	}

	uc.pushMessage(conv, message, recipient)

	return message, nil
}

// pushMessage delivers the new row over the socket: to the room for open
// views, and directly to the recipient so list views update too.
func (uc *ChatUseCase) pushMessage(conv *entity.Conversation, message *entity.Message, recipient string) {
	payload, err := ws.Marshal(ws.EventMessage, message)
	if err != nil {
		logger.Error("Failed to marshal message event: %v", err)
		return
	}

	uc.wsManager.SendToConversation(conv.ID, message.SenderID, payload)
	if !uc.wsManager.IsInRoom(conv.ID, recipient) {
		uc.wsManager.SendToUser(recipient, payload)
	}
}

// MarkConversationRead flips every unread message not sent by the caller.
// Running it twice is a no-op the second time; messages already read or
// sent by the caller are never touched.
func (uc *ChatUseCase) MarkConversationRead(ctx context.Context, userID, conversationID string) error {
	conv, err := uc.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return err
	}

	if !policy.CanReadConversation(userID, conv) {
		return errors.NotFound("Conversation", nil)
	}

	marked, err := uc.chatRepo.MarkMessagesRead(ctx, conversationID, userID)
	if err != nil {
		return err
	}

	if conv.UnreadCount[userID] != 0 {
		conv.UnreadCount[userID] = 0
		if err := uc.chatRepo.UpdateConversation(ctx, conv); err != nil {
			logger.Error("Failed to reset unread count for conversation %s: %v", conv.ID, err)
		}
	}

	if marked > 0 {
		payload, err := ws.Marshal(ws.EventRead, map[string]interface{}{
			"conversation_id": conversationID,
			"reader_id":       userID,
		})
		if err == nil {
			uc.wsManager.SendToConversation(conversationID, userID, payload)
		}
	}

	return nil
}

// SendMessageOverSocket adapts SendMessage for socket frames.
func (uc *ChatUseCase) SendMessageOverSocket(ctx context.Context, senderID, conversationID, content string) error {
	_, err := uc.SendMessage(ctx, senderID, conversationID, content)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// CanAccessConversation gates socket room joins.
func (uc *ChatUseCase) CanAccessConversation(ctx context.Context, userID, conversationID string) bool {
	conv, err := uc.chatRepo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return false
	}
	return policy.CanReadConversation(userID, conv)
}
