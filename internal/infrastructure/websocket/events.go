package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/ratelimit"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/logger"
)

// Event types exchanged over the chat socket.
const (
	EventPing     = "ping"
	EventPong     = "pong"
	EventJoin     = "join_conversation"
	EventLeave    = "leave_conversation"
	EventSend     = "send_message"
	EventMessage  = "message"
	EventMarkRead = "mark_read"
	EventRead     = "read_receipt"
	EventTyping   = "typing"
	EventError    = "error"
)

type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type JoinData struct {
	ConversationID string `json:"conversation_id"`
}

type SendData struct {
	ConversationID string `json:"conversation_id"`
	Content        string `json:"content"`
}

type MarkReadData struct {
	ConversationID string `json:"conversation_id"`
}

type TypingData struct {
	ConversationID string `json:"conversation_id"`
	UserID         string `json:"user_id,omitempty"`
	Typing         bool   `json:"typing"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// ChatService is the slice of the chat usecase the socket needs; defined
// here so the usecase can depend on this package without a cycle.
type ChatService interface {
	SendMessageOverSocket(ctx context.Context, senderID, conversationID, content string) error
	MarkConversationRead(ctx context.Context, userID, conversationID string) error
	CanAccessConversation(ctx context.Context, userID, conversationID string) bool
}

// EventHandler routes client frames to the chat service and rooms.
type EventHandler struct {
	manager     *Manager
	chat        ChatService
	rateLimiter *ratelimit.RateLimiter
}

func NewEventHandler(manager *Manager, chat ChatService) *EventHandler {
	return &EventHandler{
		manager:     manager,
		chat:        chat,
		rateLimiter: ratelimit.NewRateLimiter(),
	}
}

func (h *EventHandler) HandleClientEvent(client *Client, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		logger.Warn("WebSocket: malformed frame from %s: %v", client.UserID, err)
		h.sendError(client, "Invalid event format")
		return
	}

	ctx := context.Background()

	switch event.Type {
	case EventPing:
		h.send(client, EventPong, nil)

	case EventJoin:
		var data JoinData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ConversationID == "" {
			h.sendError(client, "conversation_id is required")
			return
		}
		if !h.chat.CanAccessConversation(ctx, client.UserID, data.ConversationID) {
			h.sendError(client, "Conversation not found")
			return
		}
		h.manager.JoinRoom(data.ConversationID, client.UserID)

	case EventLeave:
		var data JoinData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ConversationID == "" {
			h.sendError(client, "conversation_id is required")
			return
		}
		h.manager.LeaveRoom(data.ConversationID, client.UserID)

	case EventSend:
		var data SendData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ConversationID == "" {
			h.sendError(client, "conversation_id is required")
			return
		}
		if err := h.chat.SendMessageOverSocket(ctx, client.UserID, data.ConversationID, data.Content); err != nil {
			h.sendError(client, err.Error())
		}

	case EventMarkRead:
		var data MarkReadData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ConversationID == "" {
			h.sendError(client, "conversation_id is required")
			return
		}
		if err := h.chat.MarkConversationRead(ctx, client.UserID, data.ConversationID); err != nil {
			h.sendError(client, err.Error())
		}

	case EventTyping:
		var data TypingData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.ConversationID == "" {
			return
		}
		if allowed, _ := h.rateLimiter.Allow(client.UserID, ratelimit.ActionTyping); !allowed {
			return
		}
		if !h.manager.IsInRoom(data.ConversationID, client.UserID) {
			return
		}
		data.UserID = client.UserID
		payload, err := Marshal(EventTyping, data)
		if err != nil {
			return
		}
		h.manager.SendToConversation(data.ConversationID, client.UserID, payload)

	default:
		logger.Debug("WebSocket: unknown event type %q from %s", event.Type, client.UserID)
	}
}

func (h *EventHandler) send(client *Client, eventType string, data interface{}) {
	payload, err := Marshal(eventType, data)
	if err != nil {
		return
	}
	h.manager.SendToUser(client.UserID, payload)
}

func (h *EventHandler) sendError(client *Client, message string) {
	h.send(client, EventError, ErrorData{Message: message})
}

// Marshal builds the wire form of a server-side event.
func Marshal(eventType string, data interface{}) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		encoded, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		raw = encoded
	}

	return json.Marshal(Event{
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
