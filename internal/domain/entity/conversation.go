package entity

import "time"

// Conversation is a chat thread scoped to exactly one book, one buyer
// and one seller.
type Conversation struct {
	ID            string         `json:"id" firestore:"id"`
	BookID        string         `json:"book_id" firestore:"bookId"`
	BuyerID       string         `json:"buyer_id" firestore:"buyerId"`
	SellerID      string         `json:"seller_id" firestore:"sellerId"`
	LastMessage   string         `json:"last_message,omitempty" firestore:"lastMessage,omitempty"`
	LastMessageAt time.Time      `json:"last_message_at" firestore:"lastMessageAt"`
	UnreadCount   map[string]int `json:"unread_count" firestore:"unreadCount"`
	CreatedAt     time.Time      `json:"created_at" firestore:"createdAt"`
	UpdatedAt     time.Time      `json:"updated_at" firestore:"updatedAt"`
}

// HasParticipant reports whether userID is the buyer or seller of the thread.
func (c *Conversation) HasParticipant(userID string) bool {
	return userID == c.BuyerID || userID == c.SellerID
}

// OtherParticipant returns the counterpart of userID in the thread.
func (c *Conversation) OtherParticipant(userID string) string {
	if userID == c.BuyerID {
		return c.SellerID
	}
	return c.BuyerID
}
