package repository

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/entity"
	"github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/errors"
)

type firestoreBookRepository struct {
	client *firestore.Client
}

func NewFirestoreBookRepository(client *firestore.Client) repository.BookRepository {
	return &firestoreBookRepository{
		client: client,
	}
}

func (r *firestoreBookRepository) Create(ctx context.Context, book *entity.Book) error {
	if book.ID == "" {
		doc := r.client.Collection("books").NewDoc()
		book.ID = doc.ID
	}

	now := time.Now()
	if book.CreatedAt.IsZero() {
		book.CreatedAt = now
	}
	book.UpdatedAt = now

	_, err := r.client.Collection("books").Doc(book.ID).Set(ctx, book)
	if err != nil {
		return errors.Internal("Failed to create book", err)
	}

	return nil
}

func (r *firestoreBookRepository) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	doc, err := r.client.Collection("books").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Book", err)
		}
		return nil, errors.Internal("Failed to get book", err)
	}

	var book entity.Book
	if err := doc.DataTo(&book); err != nil {
		return nil, errors.Internal("Failed to parse book data", err)
	}
	if book.DeletedAt != nil {
		return nil, errors.NotFound("Book", nil)
	}

	return &book, nil
}

func (r *firestoreBookRepository) List(ctx context.Context, filter repository.BookFilter, limit, offset int) ([]*entity.Book, int64, error) {
	query := r.client.Collection("books").Query.Where("deletedAt", "==", nil)

	if filter.Category != "" {
		query = query.Where("category", "==", filter.Category)
	}
	if filter.BookType != "" {
		query = query.Where("bookType", "==", filter.BookType)
	}
	if filter.Mode != "" {
		query = query.Where("mode", "==", filter.Mode)
	}

	query = query.OrderBy("createdAt", firestore.Desc)

	// Firestore has no full-text search, so the title match runs in memory
	// over the filtered set.
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to list books", err)
	}

	var matched []*entity.Book
	search := strings.ToLower(filter.Search)
	for _, doc := range allDocs {
		var book entity.Book
		if err := doc.DataTo(&book); err != nil {
			return nil, 0, errors.Internal("Failed to parse book data", err)
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(book.Title), search) &&
			!strings.Contains(strings.ToLower(book.Author), search) {
			continue
		}
		matched = append(matched, &book)
	}

	total := int64(len(matched))

	start := offset
	end := len(matched)
	if start > len(matched) {
		start = len(matched)
	}
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	return matched[start:end], total, nil
}

func (r *firestoreBookRepository) ListByOwner(ctx context.Context, userID string, limit, offset int) ([]*entity.Book, int64, error) {
	query := r.client.Collection("books").Query.
		Where("userId", "==", userID).
		Where("deletedAt", "==", nil)

	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count owner books", err)
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
	var books []*entity.Book

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate owner books", err)
		}

		var book entity.Book
		if err := doc.DataTo(&book); err != nil {
			return nil, 0, errors.Internal("Failed to parse book data", err)
		}
		books = append(books, &book)
	}

	return books, total, nil
}

func (r *firestoreBookRepository) Update(ctx context.Context, book *entity.Book) error {
	book.UpdatedAt = time.Now()

	_, err := r.client.Collection("books").Doc(book.ID).Set(ctx, book)
	if err != nil {
		return errors.Internal("Failed to update book", err)
	}

	return nil
}

func (r *firestoreBookRepository) SoftDelete(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.client.Collection("books").Doc(id).Update(ctx, []firestore.Update{
		{Path: "deletedAt", Value: now},
		{Path: "updatedAt", Value: now},
	})
	if err != nil {
		return errors.Internal("Failed to delete book", err)
	}

	return nil
}
