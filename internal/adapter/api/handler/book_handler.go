package handler

import (
	"github.com/labstack/echo/v4"

	domainrepo "github.com/Hari-385/bookbridge-ai-connect/internal/domain/repository"
	"github.com/Hari-385/bookbridge-ai-connect/internal/usecase"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/response"
	"github.com/Hari-385/bookbridge-ai-connect/pkg/utils"
)

type BookHandler struct {
	bookUseCase *usecase.BookUseCase
}

func NewBookHandler(bookUseCase *usecase.BookUseCase) *BookHandler {
	return &BookHandler{
		bookUseCase: bookUseCase,
	}
}

type createBookRequest struct {
	Title           string   `json:"title" validate:"required,max=200"`
	Author          string   `json:"author" validate:"required,max=120"`
	Category        string   `json:"category" validate:"omitempty,max=60"`
	BookType        string   `json:"book_type" validate:"required,oneof=textbook novel storybook comics biography other"`
	Mode            string   `json:"mode" validate:"required,oneof=sell donate exchange"`
	Price           *float64 `json:"price" validate:"omitempty,gt=0"`
	Description     string   `json:"description" validate:"omitempty,max=2000"`
	ImageURL        string   `json:"image_url" validate:"omitempty,url"`
	AvailableCopies int      `json:"available_copies" validate:"omitempty,min=0"`
}

func (r *createBookRequest) toInput() usecase.CreateBookInput {
	return usecase.CreateBookInput{
		Title:           r.Title,
		Author:          r.Author,
		Category:        r.Category,
		BookType:        r.BookType,
		Mode:            r.Mode,
		Price:           r.Price,
		Description:     r.Description,
		ImageURL:        r.ImageURL,
		AvailableCopies: r.AvailableCopies,
	}
}

func (h *BookHandler) CreateBook(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	book, err := h.bookUseCase.CreateBook(c.Request().Context(), uid, req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, book)
}

func (h *BookHandler) GetBook(c echo.Context) error {
	book, err := h.bookUseCase.GetBookByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, book)
}

func (h *BookHandler) ListBooks(c echo.Context) error {
	filter := domainrepo.BookFilter{
		Category: c.QueryParam("category"),
		BookType: c.QueryParam("book_type"),
		Mode:     c.QueryParam("mode"),
		Search:   c.QueryParam("q"),
	}

	pagination := utils.GetPaginationParams(c)

	books, total, err := h.bookUseCase.ListBooks(c.Request().Context(), filter, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, books, total, pagination.Page, pagination.PageSize)
}

func (h *BookHandler) ListMyBooks(c echo.Context) error {
	uid := c.Get("uid").(string)

	pagination := utils.GetPaginationParams(c)

	books, total, err := h.bookUseCase.ListMyBooks(c.Request().Context(), uid, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, books, total, pagination.Page, pagination.PageSize)
}

func (h *BookHandler) UpdateBook(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	uid := c.Get("uid").(string)

	book, err := h.bookUseCase.UpdateBook(c.Request().Context(), uid, c.Param("id"), req.toInput())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, book)
}

func (h *BookHandler) DeleteBook(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.bookUseCase.DeleteBook(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"message": "Book deleted successfully",
	})
}
