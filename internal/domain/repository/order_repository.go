package repository

import (
	"context"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
)

type OrderRepository interface {
	// CreateWithInventory inserts the order and decrements the book's
	// available copies in one transaction. The decrement is conditional:
	// if the re-read availability is below the order quantity the whole
	// operation is rejected and nothing is written.
	CreateWithInventory(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	ListByUserID(ctx context.Context, userID, role string, limit, offset int) ([]*entity.Order, int64, error)
}
