package usecase

import (
	"context"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/policy"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/utils"
)

type BookUseCase struct {
	bookRepo repository.BookRepository
}

func NewBookUseCase(bookRepo repository.BookRepository) *BookUseCase {
	return &BookUseCase{
		bookRepo: bookRepo,
	}
}

type CreateBookInput struct {
	Title           string
	Author          string
	Category        string
	BookType        string
	Mode            string
	Price           *float64
	Description     string
	ImageURL        string
	AvailableCopies int
}

// validateModePrice enforces the listing invariant: a sell listing must
// carry a positive price and a donate/exchange listing must carry none.
// This mirrors the store-level CHECK the old schema had.
func validateModePrice(mode string, price *float64) error {
	if mode == entity.ModeSell {
		if price == nil || *price <= 0 {
			return errors.BadRequest("A book listed for sale must have a positive price", nil)
		}
		return nil
	}
	if price != nil {
		return errors.BadRequest("A donate or exchange listing must not have a price", nil)
	}
	return nil
}

func (uc *BookUseCase) CreateBook(ctx context.Context, callerID string, input CreateBookInput) (*entity.Book, error) {
	if err := validateModePrice(input.Mode, input.Price); err != nil {
		return nil, err
	}

	copies := input.AvailableCopies
	if copies <= 0 {
		copies = 1
	}

	book := &entity.Book{
		UserID:          callerID,
		Title:           input.Title,
		Author:          input.Author,
		Category:        input.Category,
		BookType:        input.BookType,
		Mode:            input.Mode,
		Price:           input.Price,
		Description:     input.Description,
		ImageURL:        input.ImageURL,
		AvailableCopies: copies,
	}

	if !policy.CanInsertBook(callerID, book) {
		return nil, errors.Forbidden("You can only create listings you own", nil)
	}

	if err := uc.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}

	return book, nil
}

func (uc *BookUseCase) GetBookByID(ctx context.Context, id string) (*entity.Book, error) {
	return uc.bookRepo.GetByID(ctx, id)
}

func (uc *BookUseCase) ListBooks(ctx context.Context, filter repository.BookFilter, page, pageSize int) ([]*entity.Book, int64, error) {
	pagination := utils.NewPaginationParams(page, pageSize)
	return uc.bookRepo.List(ctx, filter, pagination.PageSize, pagination.Offset)
}

func (uc *BookUseCase) ListMyBooks(ctx context.Context, callerID string, page, pageSize int) ([]*entity.Book, int64, error) {
	pagination := utils.NewPaginationParams(page, pageSize)
	return uc.bookRepo.ListByOwner(ctx, callerID, pagination.PageSize, pagination.Offset)
}

func (uc *BookUseCase) UpdateBook(ctx context.Context, callerID, bookID string, input CreateBookInput) (*entity.Book, error) {
	existing, err := uc.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if !policy.CanUpdateBook(callerID, existing) {
		return nil, errors.Forbidden("You can only update your own listings", nil)
	}

	if err := validateModePrice(input.Mode, input.Price); err != nil {
		return nil, err
	}
	if input.AvailableCopies < 0 {
		return nil, errors.BadRequest("Available copies cannot be negative", nil)
	}

	existing.Title = input.Title
	existing.Author = input.Author
	existing.Category = input.Category
	existing.BookType = input.BookType
	existing.Mode = input.Mode
	existing.Price = input.Price
	existing.Description = input.Description
	existing.AvailableCopies = input.AvailableCopies
	if input.ImageURL != "" {
		existing.ImageURL = input.ImageURL
	}

	if err := uc.bookRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	return existing, nil
}

func (uc *BookUseCase) DeleteBook(ctx context.Context, callerID, bookID string) error {
	existing, err := uc.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}

	if !policy.CanDeleteBook(callerID, existing) {
		return errors.Forbidden("You can only delete your own listings", nil)
	}

	return uc.bookRepo.SoftDelete(ctx, bookID)
}
