package entity

import "time"

// Message is append-only. Read flips false to true exactly once, and only
// through the recipient's mark-as-read.
type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversation_id" firestore:"conversationId"`
	SenderID       string    `json:"sender_id" firestore:"senderId"`
	Content        string    `json:"content" firestore:"content"`
	Read           bool      `json:"read" firestore:"read"`
	CreatedAt      time.Time `json:"created_at" firestore:"createdAt"`
}
