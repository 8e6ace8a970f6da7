package entity

import "time"

// Book types
const (
	BookTypeTextbook  = "textbook"
	BookTypeNovel     = "novel"
	BookTypeStorybook = "storybook"
	BookTypeComics    = "comics"
	BookTypeBiography = "biography"
	BookTypeOther     = "other"
)

// Listing modes
const (
	ModeSell     = "sell"
	ModeDonate   = "donate"
	ModeExchange = "exchange"
)

type Book struct {
	ID              string     `json:"id" firestore:"id"`
	UserID          string     `json:"user_id" firestore:"userId"`
	Title           string     `json:"title" firestore:"title"`
	Author          string     `json:"author" firestore:"author"`
	Category        string     `json:"category,omitempty" firestore:"category,omitempty"`
	BookType        string     `json:"book_type" firestore:"bookType"`
	Mode            string     `json:"mode" firestore:"mode"`
	Price           *float64   `json:"price,omitempty" firestore:"price,omitempty"`
	Description     string     `json:"description,omitempty" firestore:"description,omitempty"`
	ImageURL        string     `json:"image_url,omitempty" firestore:"imageURL,omitempty"`
	AvailableCopies int        `json:"available_copies" firestore:"availableCopies"`
	CreatedAt       time.Time  `json:"created_at" firestore:"createdAt"`
	UpdatedAt       time.Time  `json:"updated_at" firestore:"updatedAt"`
	// DeletedAt must be stored as an explicit null for live books: the
	// listing queries filter on deletedAt == nil, which only matches
	// documents that carry the field.
	DeletedAt *time.Time `json:"deleted_at,omitempty" firestore:"deletedAt"`
}

// UnitPrice returns the listing price, zero for donate/exchange books.
func (b *Book) UnitPrice() float64 {
	if b.Price == nil {
		return 0
	}
	return *b.Price
}
