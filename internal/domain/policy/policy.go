// Package policy holds the per-table, per-operation access predicates the
// usecases evaluate before touching the store. Each predicate takes the
// caller identity plus the existing and/or incoming row and returns whether
// the operation is allowed. Client-side checks are never trusted; every
// mutation path goes through one of these.
package policy

import (
	"strings"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
)

// Profiles: public read, owner-only insert/update, no delete.

func CanReadProfile(callerID string, row *entity.Profile) bool {
	return true
}

func CanInsertProfile(callerID string, row *entity.Profile) bool {
	return callerID != "" && callerID == row.ID
}

func CanUpdateProfile(callerID string, existing *entity.Profile) bool {
	return callerID != "" && callerID == existing.ID
}

// Books: public read, owner-only insert/update/delete.

func CanReadBook(callerID string, row *entity.Book) bool {
	return true
}

func CanInsertBook(callerID string, row *entity.Book) bool {
	return callerID != "" && callerID == row.UserID
}

func CanUpdateBook(callerID string, existing *entity.Book) bool {
	return callerID != "" && callerID == existing.UserID
}

func CanDeleteBook(callerID string, existing *entity.Book) bool {
	return callerID != "" && callerID == existing.UserID
}

// Orders: buyer-only insert, buyer-or-seller read. No update or delete is
// granted to ordinary callers; status changes have no client surface.

func CanReadOrder(callerID string, row *entity.Order) bool {
	return callerID != "" && (callerID == row.BuyerID || callerID == row.SellerID)
}

func CanInsertOrder(callerID string, row *entity.Order) bool {
	return callerID != "" && callerID == row.BuyerID
}

// Conversations: party-only read and insert, no update/delete.

func CanReadConversation(callerID string, row *entity.Conversation) bool {
	return callerID != "" && row.HasParticipant(callerID)
}

func CanInsertConversation(callerID string, row *entity.Conversation) bool {
	return callerID != "" && callerID == row.BuyerID && row.BuyerID != row.SellerID
}

// Messages: party-only read; insert requires the caller to be a party and
// the sender of the new row; the read flag may only be flipped by a party
// who is not the sender, and only from unread to read.

func CanReadMessage(callerID string, conv *entity.Conversation, row *entity.Message) bool {
	return CanReadConversation(callerID, conv)
}

func CanInsertMessage(callerID string, conv *entity.Conversation, row *entity.Message) bool {
	if callerID == "" || !conv.HasParticipant(callerID) {
		return false
	}
	if callerID != row.SenderID {
		return false
	}
	return strings.TrimSpace(row.Content) != ""
}

func CanMarkMessageRead(callerID string, conv *entity.Conversation, existing *entity.Message) bool {
	if callerID == "" || !conv.HasParticipant(callerID) {
		return false
	}
	return callerID != existing.SenderID
}

// Storage objects: public read; writes and deletes require an authenticated
// caller. Ownership of the referencing row is checked by the usecase.

func CanReadObject(callerID string) bool {
	return true
}

func CanWriteObject(callerID string) bool {
	return callerID != ""
}
