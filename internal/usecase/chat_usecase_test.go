package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	ws "github.com/Hari-385/bookbridge-ai-connect/internal/infrastructure/websocket"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
)

type chatFixture struct {
	uc       *ChatUseCase
	chatRepo *fakeChatRepo
	book     *entity.Book
}

func newChatFixture(t *testing.T) *chatFixture {
	t.Helper()

	chatRepo := newFakeChatRepo()
	bookRepo := newFakeBookRepo()
	profileRepo := newFakeProfileRepo()

	for _, p := range []*entity.Profile{
		{ID: "seller-1", FullName: "Ravi Kumar", Email: "ravi@example.com"},
		{ID: "buyer-1", FullName: "Asha Verma", Email: "asha@example.com"},
	} {
		require.NoError(t, profileRepo.Upsert(context.Background(), p))
	}

	book := &entity.Book{
		UserID:          "seller-1",
		Title:           "Godan",
		Mode:            entity.ModeSell,
		Price:           floatPtr(150),
		AvailableCopies: 1,
	}
	require.NoError(t, bookRepo.Create(context.Background(), book))

	manager := ws.NewManager()
	manager.Start(context.Background())

	return &chatFixture{
		uc:       NewChatUseCase(chatRepo, bookRepo, profileRepo, manager),
		chatRepo: chatRepo,
		book:     book,
	}
}

func TestStartConversation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{
		BookID:         f.book.ID,
		InitialMessage: "Is this still available?",
	})
	require.NoError(t, err)

	assert.Equal(t, "buyer-1", conv.BuyerID)
	assert.Equal(t, "seller-1", conv.SellerID)
	require.NotNil(t, conv.Book)
	assert.Equal(t, "Godan", conv.Book.Title)
	require.NotNil(t, conv.OtherProfile)
	assert.Equal(t, "Ravi Kumar", conv.OtherProfile.FullName)

	messages, total, err := f.uc.ListMessages(ctx, "buyer-1", conv.ID, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, messages, 1)
	assert.Equal(t, "Is this still available?", messages[0].Content)
}

func TestStartConversationReusesThread(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	first, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	second, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	// One thread per (book, buyer) pair
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.chatRepo.conversations, 1)
}

func TestStartConversationOwnListing(t *testing.T) {
	f := newChatFixture(t)

	_, err := f.uc.StartConversation(context.Background(), "seller-1", StartConversationInput{BookID: f.book.ID})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestSendMessageValidation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "buyer-1", conv.ID, "   ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	// Non-parties read the thread as missing
	_, err = f.uc.SendMessage(ctx, "stranger", conv.ID, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestSendMessageUpdatesConversation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	message, err := f.uc.SendMessage(ctx, "buyer-1", conv.ID, "  Is this still available?  ")
	require.NoError(t, err)
	assert.Equal(t, "Is this still available?", message.Content)
	assert.False(t, message.Read)

	stored, err := f.chatRepo.GetConversationByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Is this still available?", stored.LastMessage)
	assert.Equal(t, 1, stored.UnreadCount["seller-1"])
	assert.Equal(t, 0, stored.UnreadCount["buyer-1"])
}

func TestListMessagesAscending(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	contents := []string{"first", "second", "third"}
	for _, content := range contents {
		_, err := f.uc.SendMessage(ctx, "buyer-1", conv.ID, content)
		require.NoError(t, err)
	}

	messages, _, err := f.uc.ListMessages(ctx, "seller-1", conv.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i, content := range contents {
		assert.Equal(t, content, messages[i].Content)
	}
	for i := 1; i < len(messages); i++ {
		assert.True(t, messages[i].CreatedAt.After(messages[i-1].CreatedAt))
	}
}

func TestMarkConversationReadIdempotent(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	_, err = f.uc.SendMessage(ctx, "buyer-1", conv.ID, "ping")
	require.NoError(t, err)

	require.NoError(t, f.uc.MarkConversationRead(ctx, "seller-1", conv.ID))

	messages, _, err := f.uc.ListMessages(ctx, "seller-1", conv.ID, 1, 20)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.True(t, messages[0].Read)

	stored, err := f.chatRepo.GetConversationByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.UnreadCount["seller-1"])

	// Second run touches nothing
	marked, err := f.chatRepo.MarkMessagesRead(ctx, conv.ID, "seller-1")
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
	require.NoError(t, f.uc.MarkConversationRead(ctx, "seller-1", conv.ID))

	// The sender's own rows are never flipped by the sender
	marked, err = f.chatRepo.MarkMessagesRead(ctx, conv.ID, "buyer-1")
	require.NoError(t, err)
	assert.Equal(t, 0, marked)
}

func TestConversationVisibility(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	_, err = f.uc.GetConversation(ctx, "stranger", conv.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, _, err = f.uc.ListMessages(ctx, "stranger", conv.ID, 1, 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	listed, total, err := f.uc.ListConversations(ctx, "seller-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, listed, 1)
	assert.Equal(t, conv.ID, listed[0].ID)

	none, total, err := f.uc.ListConversations(ctx, "stranger", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, none)
}

func TestCanAccessConversation(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	assert.True(t, f.uc.CanAccessConversation(ctx, "buyer-1", conv.ID))
	assert.True(t, f.uc.CanAccessConversation(ctx, "seller-1", conv.ID))
	assert.False(t, f.uc.CanAccessConversation(ctx, "stranger", conv.ID))
	assert.False(t, f.uc.CanAccessConversation(ctx, "buyer-1", "missing"))
}

func TestConversationRecencyOrdering(t *testing.T) {
	f := newChatFixture(t)
	ctx := context.Background()

	conv, err := f.uc.StartConversation(ctx, "buyer-1", StartConversationInput{BookID: f.book.ID})
	require.NoError(t, err)

	before := time.Now()
	_, err = f.uc.SendMessage(ctx, "buyer-1", conv.ID, "bump")
	require.NoError(t, err)

	stored, err := f.chatRepo.GetConversationByID(ctx, conv.ID)
	require.NoError(t, err)
	assert.True(t, stored.LastMessageAt.After(before) || stored.LastMessageAt.Equal(before))
}
