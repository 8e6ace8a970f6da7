package repository

import (
	"context"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
)

type BookFilter struct {
	Category string
	BookType string
	Mode     string
	Search   string
}

type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	List(ctx context.Context, filter BookFilter, limit, offset int) ([]*entity.Book, int64, error)
	ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*entity.Book, int64, error)
	Update(ctx context.Context, book *entity.Book) error
	SoftDelete(ctx context.Context, id string) error
}
