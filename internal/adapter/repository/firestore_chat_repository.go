package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/logger"
)

type firestoreChatRepository struct {
	client *firestore.Client
}

func NewFirestoreChatRepository(client *firestore.Client) repository.ChatRepository {
	return &firestoreChatRepository{
		client: client,
	}
}

func (r *firestoreChatRepository) CreateConversation(ctx context.Context, conv *entity.Conversation) error {
	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}

	now := time.Now()
	conv.CreatedAt = now
	conv.UpdatedAt = now

	_, err := r.client.Collection("conversations").Doc(conv.ID).Set(ctx, conv)
	if err != nil {
		return errors.Internal("Failed to create conversation", err)
	}

	return nil
}

func (r *firestoreChatRepository) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conv entity.Conversation
	if err := doc.DataTo(&conv); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conv, nil
}

func (r *firestoreChatRepository) FindConversation(ctx context.Context, bookID, buyerID string) (*entity.Conversation, error) {
	query := r.client.Collection("conversations").
		Where("bookId", "==", bookID).
		Where("buyerId", "==", buyerID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Conversation", nil)
		}
		return nil, errors.Internal("Failed to query conversation", err)
	}

	var conv entity.Conversation
	if err := doc.DataTo(&conv); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conv, nil
}

func (r *firestoreChatRepository) ListConversationsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	// Two range-less queries instead of an OR filter; merged and sorted
	// in memory by recency.
	var convs []*entity.Conversation

	for _, field := range []string{"buyerId", "sellerId"} {
		iter := r.client.Collection("conversations").Where(field, "==", userID).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				logger.Error("Failed to fetch conversations for user %s: %v", userID, err)
				return nil, 0, errors.Internal("Failed to fetch conversations", err)
			}

			var conv entity.Conversation
			if err := doc.DataTo(&conv); err != nil {
				logger.Error("Failed to parse conversation data for user %s: %v", userID, err)
				continue
			}
			convs = append(convs, &conv)
		}
	}

	sort.Slice(convs, func(i, j int) bool {
		return convs[i].LastMessageAt.After(convs[j].LastMessageAt)
	})

	total := int64(len(convs))

	start := offset
	end := len(convs)
	if start > len(convs) {
		start = len(convs)
	}
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return convs[start:end], total, nil
}

func (r *firestoreChatRepository) UpdateConversation(ctx context.Context, conv *entity.Conversation) error {
	conv.UpdatedAt = time.Now()

	_, err := r.client.Collection("conversations").Doc(conv.ID).Set(ctx, conv)
	if err != nil {
		return errors.Internal("Failed to update conversation", err)
	}

	return nil
}

func (r *firestoreChatRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}

	message.CreatedAt = time.Now()

	_, err := r.client.Collection("conversations").Doc(message.ConversationID).
		Collection("messages").Doc(message.ID).Set(ctx, message)
	if err != nil {
		return errors.Internal("Failed to create message", err)
	}

	return nil
}

func (r *firestoreChatRepository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	query := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").OrderBy("createdAt", firestore.Asc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		logger.Error("Failed to count messages for conversation %s: %v", conversationID, err)
		return nil, 0, errors.Internal("Failed to count messages", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, 0, errors.Internal("Failed to parse message data", err)
		}
		messages = append(messages, &message)
	}

	return messages, total, nil
}

func (r *firestoreChatRepository) MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int, error) {
	query := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").
		Where("read", "==", false)

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return 0, errors.Internal("Failed to query unread messages", err)
	}

	marked := 0
	for _, doc := range docs {
		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			logger.Warn("Skipping unparsable message %s in conversation %s: %v", doc.Ref.ID, conversationID, err)
			continue
		}
		if message.SenderID == readerID {
			continue
		}

		_, err := doc.Ref.Update(ctx, []firestore.Update{
			{Path: "read", Value: true},
		})
		if err != nil {
			return marked, errors.Internal("Failed to mark message as read", err)
		}
		marked++
	}

	return marked, nil
}
