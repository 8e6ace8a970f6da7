package usecase

import (
	"context"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/policy"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/utils"
)

type OrderUseCase struct {
	orderRepo repository.OrderRepository
	bookRepo  repository.BookRepository
}

func NewOrderUseCase(orderRepo repository.OrderRepository, bookRepo repository.BookRepository) *OrderUseCase {
	return &OrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
	}
}

type PlaceOrderInput struct {
	BookID   string
	Quantity int
	Shipping entity.ShippingDetails
}

// PlaceOrder records a cash-on-delivery purchase. The insert and the
// availability decrement run in one store transaction, so a stale
// availability read can no longer oversell the listing: the losing buyer
// of a race gets a Conflict instead of driving the count negative.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, buyerID string, input PlaceOrderInput) (*entity.Order, error) {
	if input.Quantity <= 0 {
		return nil, errors.BadRequest("Quantity must be a positive number", nil)
	}

	book, err := uc.bookRepo.GetByID(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	if book.UserID == buyerID {
		return nil, errors.BadRequest("You cannot order your own listing", nil)
	}
	if book.Mode != entity.ModeSell {
		return nil, errors.BadRequest("Only books listed for sale can be ordered", nil)
	}
	if input.Quantity > book.AvailableCopies {
		return nil, errors.Conflict("Not enough copies available")
	}

	order := &entity.Order{
		BookID:        book.ID,
		BuyerID:       buyerID,
		SellerID:      book.UserID,
		Quantity:      input.Quantity,
		TotalPrice:    book.UnitPrice() * float64(input.Quantity),
		Shipping:      input.Shipping,
		PaymentMethod: entity.PaymentMethodCOD,
		Status:        entity.OrderStatusPending,
	}

	if !policy.CanInsertOrder(buyerID, order) {
		return nil, errors.Forbidden("Orders can only be placed by the buyer", nil)
	}

	if err := uc.orderRepo.CreateWithInventory(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// GetOrder returns the order iff the caller is its buyer or seller. A
// denied lookup reads as NotFound so outsiders cannot probe order IDs.
func (uc *OrderUseCase) GetOrder(ctx context.Context, callerID, orderID string) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !policy.CanReadOrder(callerID, order) {
		return nil, errors.NotFound("Order", nil)
	}

	return order, nil
}

func (uc *OrderUseCase) ListOrders(ctx context.Context, callerID, role string, page, pageSize int) ([]*entity.Order, int64, error) {
	if role != "buyer" && role != "seller" {
		role = "buyer"
	}

	pagination := utils.NewPaginationParams(page, pageSize)
	return uc.orderRepo.ListByUserID(ctx, callerID, role, pagination.PageSize, pagination.Offset)
}
