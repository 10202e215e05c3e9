// Package books implements the catalog query service: it translates
// filter values into listing requests and exposes the admin CRUD
// operations. Pure request/response — no caching, no re-sorting, every
// filter change issues a fresh request.
package books

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/shelfctl/pkg/api"
)

// Gateway lists the API calls the catalog service issues
type Gateway interface {
	ListBooks(ctx context.Context, filters api.BookFilters) (*api.Paginated[api.Book], error)
	GetBook(ctx context.Context, id int64) (*api.Book, error)
	CreateBook(ctx context.Context, input api.BookInput) (*api.Book, error)
	UpdateBook(ctx context.Context, id int64, input api.BookInput) (*api.Book, error)
	DeleteBook(ctx context.Context, id int64) error
	Categories(ctx context.Context) ([]string, error)
	SearchBooks(ctx context.Context, query string) ([]api.Book, error)
}

// Service предоставляет операции каталога
type Service struct {
	gateway Gateway
}

// NewService создает новый сервис каталога
func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// List возвращает страницу каталога. Незаполненные поля фильтра
// не попадают в запрос, применяются серверные значения по умолчанию.
func (s *Service) List(ctx context.Context, filters api.BookFilters) (*api.Paginated[api.Book], error) {
	if filters.Page < 0 {
		return nil, fmt.Errorf("page must be 1 or greater")
	}
	if filters.PageSize < 0 {
		return nil, fmt.Errorf("page size must be positive")
	}

	return s.gateway.ListBooks(ctx, filters)
}

// Get возвращает книгу по ID
func (s *Service) Get(ctx context.Context, id int64) (*api.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("book id must be positive")
	}
	return s.gateway.GetBook(ctx, id)
}

// Categories возвращает список категорий, не зависит от фильтров
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.gateway.Categories(ctx)
}

// Search выполняет поиск по названию, автору, ISBN и категории
func (s *Service) Search(ctx context.Context, query string) ([]api.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}
	return s.gateway.SearchBooks(ctx, query)
}

// Create создает книгу (admin only)
func (s *Service) Create(ctx context.Context, input api.BookInput) (*api.Book, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.Author == "" {
		return nil, fmt.Errorf("author is required")
	}
	if input.ISBN == "" {
		return nil, fmt.Errorf("isbn is required")
	}
	if input.TotalCopies <= 0 {
		return nil, fmt.Errorf("total copies must be positive")
	}

	return s.gateway.CreateBook(ctx, input)
}

// Update частично обновляет книгу (admin only). Пустые поля ввода
// не отправляются, сервер сохраняет текущие значения.
func (s *Service) Update(ctx context.Context, id int64, input api.BookInput) (*api.Book, error) {
	if id <= 0 {
		return nil, fmt.Errorf("book id must be positive")
	}
	return s.gateway.UpdateBook(ctx, id, input)
}

// Delete удаляет книгу (admin only)
func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("book id must be positive")
	}
	return s.gateway.DeleteBook(ctx, id)
}
