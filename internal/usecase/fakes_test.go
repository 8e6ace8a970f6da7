package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/google/uuid"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
)

// In-memory repository fakes. They mirror the Firestore adapters' behavior
// (ID assignment, timestamps, NOT_FOUND mapping) without the emulator.

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*entity.Profile
	upserts  int
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.upserts++
	now := time.Now()
	if existing, ok := r.profiles[profile.ID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r *fakeProfileRepo) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	profile, ok := r.profiles[id]
	if !ok {
		return nil, errors.NotFound("Profile", nil)
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.ID]; !ok {
		return errors.NotFound("Profile", nil)
	}
	profile.UpdatedAt = time.Now()
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

type fakeBookRepo struct {
	mu    sync.Mutex
	books map[string]*entity.Book
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: make(map[string]*entity.Book)}
}

func (r *fakeBookRepo) Create(ctx context.Context, book *entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt

	copied := *book
	r.books[book.ID] = &copied
	return nil
}

func (r *fakeBookRepo) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok || book.DeletedAt != nil {
		return nil, errors.NotFound("Book", nil)
	}
	copied := *book
	return &copied, nil
}

func (r *fakeBookRepo) List(ctx context.Context, filter repository.BookFilter, limit, offset int) ([]*entity.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Book
	for _, book := range r.books {
		if book.DeletedAt != nil {
			continue
		}
		if filter.Category != "" && book.Category != filter.Category {
			continue
		}
		if filter.BookType != "" && book.BookType != filter.BookType {
			continue
		}
		if filter.Mode != "" && book.Mode != filter.Mode {
			continue
		}
		if filter.Search != "" && !matchesSearch(book, filter.Search) {
			continue
		}
		copied := *book
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginate(matched, limit, offset)
}

func (r *fakeBookRepo) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*entity.Book, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Book
	for _, book := range r.books {
		if book.DeletedAt != nil || book.UserID != userID {
			continue
		}
		copied := *book
		matched = append(matched, &copied)
	}
	return paginate(matched, limit, offset)
}

func (r *fakeBookRepo) Update(ctx context.Context, book *entity.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[book.ID]; !ok {
		return errors.NotFound("Book", nil)
	}
	book.UpdatedAt = time.Now()
	copied := *book
	r.books[book.ID] = &copied
	return nil
}

func (r *fakeBookRepo) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	book, ok := r.books[id]
	if !ok {
		return errors.NotFound("Book", nil)
	}
	now := time.Now()
	book.DeletedAt = &now
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*entity.Order
	books  *fakeBookRepo
}

func newFakeOrderRepo(books *fakeBookRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*entity.Order), books: books}
}

// CreateWithInventory re-reads availability and decrements it under one
// lock, matching the Firestore transaction's conditional write.
func (r *fakeOrderRepo) CreateWithInventory(ctx context.Context, order *entity.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.books.mu.Lock()
	defer r.books.mu.Unlock()

	book, ok := r.books.books[order.BookID]
	if !ok || book.DeletedAt != nil {
		return errors.NotFound("Book", nil)
	}
	if book.AvailableCopies < order.Quantity {
		return errors.Conflict("Not enough copies available")
	}
	book.AvailableCopies -= order.Quantity
	book.UpdatedAt = time.Now()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt

	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListByUserID(ctx context.Context, userID, role string, limit, offset int) ([]*entity.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Order
	for _, order := range r.orders {
		if role == "seller" && order.SellerID != userID {
			continue
		}
		if role != "seller" && order.BuyerID != userID {
			continue
		}
		copied := *order
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return paginateOrders(matched, limit, offset)
}

type fakeChatRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	messageSeq    int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *fakeChatRepo) CreateConversation(ctx context.Context, conv *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if conv.ID == "" {
		conv.ID = uuid.New().String()
	}
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = conv.CreatedAt

	copied := *conv
	r.conversations[conv.ID] = &copied
	return nil
}

func (r *fakeChatRepo) GetConversationByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	copied := *conv
	copied.UnreadCount = copyCounts(conv.UnreadCount)
	return &copied, nil
}

func (r *fakeChatRepo) FindConversation(ctx context.Context, bookID, buyerID string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, conv := range r.conversations {
		if conv.BookID == bookID && conv.BuyerID == buyerID {
			copied := *conv
			copied.UnreadCount = copyCounts(conv.UnreadCount)
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *fakeChatRepo) ListConversationsByUserID(ctx context.Context, userID string, limit, offset int) ([]*entity.Conversation, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*entity.Conversation
	for _, conv := range r.conversations {
		if conv.BuyerID != userID && conv.SellerID != userID {
			continue
		}
		copied := *conv
		copied.UnreadCount = copyCounts(conv.UnreadCount)
		matched = append(matched, &copied)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].LastMessageAt.After(matched[j].LastMessageAt)
	})

	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeChatRepo) UpdateConversation(ctx context.Context, conv *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.conversations[conv.ID]; !ok {
		return errors.NotFound("Conversation", nil)
	}
	conv.UpdatedAt = time.Now()
	copied := *conv
	copied.UnreadCount = copyCounts(conv.UnreadCount)
	r.conversations[conv.ID] = &copied
	return nil
}

func (r *fakeChatRepo) CreateMessage(ctx context.Context, message *entity.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	// Monotonic timestamps so ordering is deterministic even when two
	// inserts land within the clock's resolution.
	r.messageSeq++
	message.CreatedAt = time.Now().Add(time.Duration(r.messageSeq) * time.Microsecond)

	copied := *message
	r.messages[message.ConversationID] = append(r.messages[message.ConversationID], &copied)
	return nil
}

func (r *fakeChatRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.messages[conversationID]
	ordered := make([]*entity.Message, len(stored))
	for i, message := range stored {
		copied := *message
		ordered[i] = &copied
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	total := int64(len(ordered))
	if offset >= len(ordered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[offset:end], total, nil
}

func (r *fakeChatRepo) MarkMessagesRead(ctx context.Context, conversationID, readerID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	marked := 0
	for _, message := range r.messages[conversationID] {
		if message.SenderID == readerID || message.Read {
			continue
		}
		message.Read = true
		marked++
	}
	return marked, nil
}

// fakeAuth stands in for the Firebase Auth client.
type fakeAuth struct {
	mu       sync.Mutex
	users    map[string]string // email -> uid
	names    map[string]string // uid -> display name
	nextUID  int
	signIns  int
	refreshs int
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		users: make(map[string]string),
		names: make(map[string]string),
	}
}

func (a *fakeAuth) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, exists := a.users[email]; exists {
		return "", errors.Conflict("Email already registered")
	}
	a.nextUID++
	uid := fmt.Sprintf("uid-%d", a.nextUID)
	a.users[email] = uid
	a.names[uid] = displayName
	return uid, nil
}

func (a *fakeAuth) GetUser(ctx context.Context, uid string) (*auth.UserRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	name, ok := a.names[uid]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return &auth.UserRecord{
		UserInfo: &auth.UserInfo{UID: uid, DisplayName: name},
	}, nil
}

func (a *fakeAuth) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, ok := parseFakeToken(token)
	if !ok {
		return "", errors.Unauthorized("Invalid token", nil)
	}
	return uid, nil
}

func (a *fakeAuth) SignInWithEmailPassword(email, password string) (string, string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	uid, ok := a.users[email]
	if !ok {
		return "", "", errors.Unauthorized("Invalid credentials", nil)
	}
	a.signIns++
	return "token:" + uid, "refresh:" + uid, nil
}

func (a *fakeAuth) RefreshIDToken(refreshToken string) (string, string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	uid, ok := parseFakeRefresh(refreshToken)
	if !ok {
		return "", "", errors.Unauthorized("Invalid refresh token", nil)
	}
	a.refreshs++
	return "token:" + uid, "refresh:" + uid, nil
}

func parseFakeToken(token string) (string, bool) {
	const prefix = "token:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", false
	}
	return token[len(prefix):], true
}

func parseFakeRefresh(token string) (string, bool) {
	const prefix = "refresh:"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", false
	}
	return token[len(prefix):], true
}

func paginate(books []*entity.Book, limit, offset int) ([]*entity.Book, int64, error) {
	total := int64(len(books))
	if offset >= len(books) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(books) {
		end = len(books)
	}
	return books[offset:end], total, nil
}

func paginateOrders(orders []*entity.Order, limit, offset int) ([]*entity.Order, int64, error) {
	total := int64(len(orders))
	if offset >= len(orders) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(orders) {
		end = len(orders)
	}
	return orders[offset:end], total, nil
}

func matchesSearch(book *entity.Book, search string) bool {
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(book.Title), needle) ||
		strings.Contains(strings.ToLower(book.Author), needle)
}

func copyCounts(counts map[string]int) map[string]int {
	copied := make(map[string]int, len(counts))
	for k, v := range counts {
		copied[k] = v
	}
	return copied
}

func floatPtr(v float64) *float64 {
	return &v
}
