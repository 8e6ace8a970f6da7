package repository

import (
	"context"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
)

type ChatRepository interface {
	CreateConversation(ctx context.Context, conv *entity.Conversation) error
	GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error)
	// FindConversation returns the existing thread for (bookID, buyerID),
	// or a NOT_FOUND error when none exists.
	FindConversation(ctx context.Context, bookID, buyerID string) (*entity.Conversation, error)
	ListConversationsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error)
	UpdateConversation(ctx context.Context, conv *entity.Conversation) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	// ListMessages returns the full ordered history, ascending by creation
	// time as recorded at insert.
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error)
	// MarkMessagesRead flips the read flag on every unread message in the
	// conversation not sent by readerID and reports how many it touched.
	MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int, error)
}
