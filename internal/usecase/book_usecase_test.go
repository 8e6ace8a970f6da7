package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
)

func TestCreateBookSellRequiresPrice(t *testing.T) {
	uc := NewBookUseCase(newFakeBookRepo())

	_, err := uc.CreateBook(context.Background(), "seller-1", CreateBookInput{
		Title:    "Clean Architecture",
		Author:   "Robert Martin",
		Category: "Engineering",
		BookType: "textbook",
		Mode:     "sell",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	zero := 0.0
	_, err = uc.CreateBook(context.Background(), "seller-1", CreateBookInput{
		Title: "Clean Architecture", Author: "Robert Martin",
		Category: "Engineering", BookType: "textbook",
		Mode: "sell", Price: &zero,
	})
	require.Error(t, err)

	book, err := uc.CreateBook(context.Background(), "seller-1", CreateBookInput{
		Title: "Clean Architecture", Author: "Robert Martin",
		Category: "Engineering", BookType: "textbook",
		Mode: "sell", Price: floatPtr(350),
	})
	require.NoError(t, err)
	assert.Equal(t, 350.0, *book.Price)
	assert.Equal(t, 1, book.AvailableCopies)
}

func TestCreateBookDonateForbidsPrice(t *testing.T) {
	uc := NewBookUseCase(newFakeBookRepo())

	_, err := uc.CreateBook(context.Background(), "seller-1", CreateBookInput{
		Title: "Panchatantra", Author: "Vishnu Sharma",
		Category: "Children", BookType: "storybook",
		Mode: "donate", Price: floatPtr(50),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	book, err := uc.CreateBook(context.Background(), "seller-1", CreateBookInput{
		Title: "Panchatantra", Author: "Vishnu Sharma",
		Category: "Children", BookType: "storybook",
		Mode: "donate",
	})
	require.NoError(t, err)
	assert.Nil(t, book.Price)
}

func TestUpdateBookEnforcesModePrice(t *testing.T) {
	bookRepo := newFakeBookRepo()
	uc := NewBookUseCase(bookRepo)

	book, err := uc.CreateBook(context.Background(), "seller-1", CreateBookInput{
		Title: "Wings of Fire", Author: "A.P.J. Abdul Kalam",
		Category: "Biography", BookType: "biography",
		Mode: "sell", Price: floatPtr(200),
	})
	require.NoError(t, err)

	// Switching to donate while keeping a price must fail
	_, err = uc.UpdateBook(context.Background(), "seller-1", book.ID, CreateBookInput{
		Title: "Wings of Fire", Author: "A.P.J. Abdul Kalam",
		Category: "Biography", BookType: "biography",
		Mode: "donate", Price: floatPtr(200), AvailableCopies: 1,
	})
	require.Error(t, err)

	updated, err := uc.UpdateBook(context.Background(), "seller-1", book.ID, CreateBookInput{
		Title: "Wings of Fire", Author: "A.P.J. Abdul Kalam",
		Category: "Biography", BookType: "biography",
		Mode: "donate", AvailableCopies: 2,
	})
	require.NoError(t, err)
	assert.Nil(t, updated.Price)
	assert.Equal(t, 2, updated.AvailableCopies)
}

func TestUpdateBookOwnerOnly(t *testing.T) {
	uc := NewBookUseCase(newFakeBookRepo())

	book, err := uc.CreateBook(context.Background(), "seller-1", CreateBookInput{
		Title: "Godan", Author: "Premchand",
		Category: "Fiction", BookType: "novel",
		Mode: "sell", Price: floatPtr(150),
	})
	require.NoError(t, err)

	_, err = uc.UpdateBook(context.Background(), "someone-else", book.ID, CreateBookInput{
		Title: "Godan", Author: "Premchand",
		Category: "Fiction", BookType: "novel",
		Mode: "sell", Price: floatPtr(1), AvailableCopies: 1,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestDeleteBookOwnerOnly(t *testing.T) {
	bookRepo := newFakeBookRepo()
	uc := NewBookUseCase(bookRepo)

	book, err := uc.CreateBook(context.Background(), "seller-1", CreateBookInput{
		Title: "Godan", Author: "Premchand",
		Category: "Fiction", BookType: "novel",
		Mode: "sell", Price: floatPtr(150),
	})
	require.NoError(t, err)

	err = uc.DeleteBook(context.Background(), "someone-else", book.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.DeleteBook(context.Background(), "seller-1", book.ID))

	// Soft-deleted listings disappear from reads
	_, err = uc.GetBookByID(context.Background(), book.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestListBooksFilters(t *testing.T) {
	uc := NewBookUseCase(newFakeBookRepo())
	ctx := context.Background()

	_, err := uc.CreateBook(ctx, "seller-1", CreateBookInput{
		Title: "Godan", Author: "Premchand",
		Category: "Fiction", BookType: "novel",
		Mode: "sell", Price: floatPtr(150),
	})
	require.NoError(t, err)
	_, err = uc.CreateBook(ctx, "seller-2", CreateBookInput{
		Title: "Panchatantra", Author: "Vishnu Sharma",
		Category: "Children", BookType: "storybook",
		Mode: "donate",
	})
	require.NoError(t, err)

	books, total, err := uc.ListBooks(ctx, repository.BookFilter{Mode: "donate"}, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, books, 1)
	assert.Equal(t, "Panchatantra", books[0].Title)

	mine, total, err := uc.ListMyBooks(ctx, "seller-1", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, "Godan", mine[0].Title)
}
