package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
)

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) CreateWithInventory(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		doc := r.client.Collection("orders").NewDoc()
		order.ID = doc.ID
	}

	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now

	bookRef := r.client.Collection("books").Doc(order.BookID)
	orderRef := r.client.Collection("orders").Doc(order.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(bookRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Book", err)
			}
			return err
		}

		var book entity.Book
		if err := doc.DataTo(&book); err != nil {
			return err
		}
		if book.DeletedAt != nil {
			return errors.NotFound("Book", nil)
		}

		// Availability is re-checked inside the transaction, so two
		// concurrent buyers cannot both pass a stale local check and
		// drive the count negative.
		if book.AvailableCopies < order.Quantity {
			return errors.Conflict("Not enough copies available")
		}

		book.AvailableCopies -= order.Quantity
		book.UpdatedAt = now

		if err := tx.Set(orderRef, order); err != nil {
			return err
		}
		return tx.Set(bookRef, &book)
	})

	if err != nil {
		if _, ok := err.(*errors.AppError); ok {
			return err
		}
		return errors.Internal("Failed to create order", err)
	}

	return nil
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	doc, err := r.client.Collection("orders").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Order", err)
		}
		return nil, errors.Internal("Failed to get order", err)
	}

	var order entity.Order
	if err := doc.DataTo(&order); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	return &order, nil
}

func (r *firestoreOrderRepository) ListByUserID(ctx context.Context, userID, role string, limit, offset int) ([]*entity.Order, int64, error) {
	field := "buyerId"
	if role == "seller" {
		field = "sellerId"
	}

	query := r.client.Collection("orders").Query.Where(field, "==", userID)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count orders", err)
	}
	total := int64(len(allDocs))

	query = query.OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var orders []*entity.Order

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate orders", err)
		}

		var order entity.Order
		if err := doc.DataTo(&order); err != nil {
			return nil, 0, errors.Internal("Failed to parse order data", err)
		}
		orders = append(orders, &order)
	}

	return orders, total, nil
}
