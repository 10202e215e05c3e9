package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/iudanet/shelfctl/pkg/api"
)

// --- Auth endpoints ---

// Login выполняет аутентификацию пользователя
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.TokenPair, error) {
	var resp api.TokenPair
	if err := c.doRequest(ctx, http.MethodPost, "/auth/login/", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doRequest(ctx, http.MethodPost, "/auth/register/", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Profile возвращает профиль текущего пользователя
func (c *Client) Profile(ctx context.Context) (*api.User, error) {
	var resp api.User
	if err := c.doRequest(ctx, http.MethodGet, "/auth/profile/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	return &resp, nil
}

// UpdateProfile частично обновляет профиль
func (c *Client) UpdateProfile(ctx context.Context, req api.ProfileUpdate) (*api.User, error) {
	var resp api.User
	if err := c.doRequest(ctx, http.MethodPatch, "/auth/profile/", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("profile update request failed: %w", err)
	}
	return &resp, nil
}

// ChangePassword меняет пароль текущего пользователя
func (c *Client) ChangePassword(ctx context.Context, req api.ChangePasswordRequest) error {
	if err := c.doRequest(ctx, http.MethodPost, "/auth/change-password/", nil, req, nil); err != nil {
		return fmt.Errorf("change password request failed: %w", err)
	}
	return nil
}

// --- Book endpoints ---

// ListBooks возвращает страницу каталога по фильтрам
func (c *Client) ListBooks(ctx context.Context, filters api.BookFilters) (*api.Paginated[api.Book], error) {
	var resp api.Paginated[api.Book]
	if err := c.doRequest(ctx, http.MethodGet, "/books/", filters.Query(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list books request failed: %w", err)
	}
	return &resp, nil
}

// GetBook возвращает книгу по ID
func (c *Client) GetBook(ctx context.Context, id int64) (*api.Book, error) {
	var resp api.Book
	path := fmt.Sprintf("/books/%d/", id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get book request failed: %w", err)
	}
	return &resp, nil
}

// CreateBook создает книгу (admin only)
func (c *Client) CreateBook(ctx context.Context, input api.BookInput) (*api.Book, error) {
	var resp api.Book
	if err := c.doRequest(ctx, http.MethodPost, "/books/", nil, input, &resp); err != nil {
		return nil, fmt.Errorf("create book request failed: %w", err)
	}
	return &resp, nil
}

// UpdateBook частично обновляет книгу (admin only)
func (c *Client) UpdateBook(ctx context.Context, id int64, input api.BookInput) (*api.Book, error) {
	var resp api.Book
	path := fmt.Sprintf("/books/%d/", id)
	if err := c.doRequest(ctx, http.MethodPatch, path, nil, input, &resp); err != nil {
		return nil, fmt.Errorf("update book request failed: %w", err)
	}
	return &resp, nil
}

// DeleteBook удаляет книгу (admin only)
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/books/%d/", id)
	if err := c.doRequest(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete book request failed: %w", err)
	}
	return nil
}

// Categories возвращает список категорий каталога
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var resp []string
	if err := c.doRequest(ctx, http.MethodGet, "/books/categories/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("categories request failed: %w", err)
	}
	return resp, nil
}

// SearchBooks выполняет полнотекстовый поиск по каталогу
func (c *Client) SearchBooks(ctx context.Context, query string) ([]api.Book, error) {
	params := url.Values{}
	params.Set("q", query)

	var resp []api.Book
	if err := c.doRequest(ctx, http.MethodGet, "/books/search/", params, nil, &resp); err != nil {
		return nil, fmt.Errorf("search books request failed: %w", err)
	}
	return resp, nil
}

// --- Loan endpoints ---

// BorrowBook оформляет выдачу книги текущему пользователю
func (c *Client) BorrowBook(ctx context.Context, bookID int64) (*api.Loan, error) {
	var resp api.Loan
	req := api.BorrowRequest{BookID: bookID}
	if err := c.doRequest(ctx, http.MethodPost, "/loans/", nil, req, &resp); err != nil {
		return nil, fmt.Errorf("borrow request failed: %w", err)
	}
	return &resp, nil
}

// ReturnLoan оформляет возврат книги
func (c *Client) ReturnLoan(ctx context.Context, loanID int64) (*api.Loan, error) {
	var resp api.Loan
	path := fmt.Sprintf("/loans/%d/return/", loanID)
	if err := c.doRequest(ctx, http.MethodPost, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("return request failed: %w", err)
	}
	return &resp, nil
}

// MyLoans возвращает займы текущего пользователя
func (c *Client) MyLoans(ctx context.Context, status string, page int) (*api.Paginated[api.Loan], error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if page > 0 {
		params.Set("page", fmt.Sprintf("%d", page))
	}

	var resp api.Paginated[api.Loan]
	if err := c.doRequest(ctx, http.MethodGet, "/loans/my-loans/", params, nil, &resp); err != nil {
		return nil, fmt.Errorf("my loans request failed: %w", err)
	}
	return &resp, nil
}

// Loans возвращает все займы (admin видит чужие)
func (c *Client) Loans(ctx context.Context, status string, page int) (*api.Paginated[api.Loan], error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	if page > 0 {
		params.Set("page", fmt.Sprintf("%d", page))
	}

	var resp api.Paginated[api.Loan]
	if err := c.doRequest(ctx, http.MethodGet, "/loans/", params, nil, &resp); err != nil {
		return nil, fmt.Errorf("loans request failed: %w", err)
	}
	return &resp, nil
}

// GetLoan возвращает займ по ID
func (c *Client) GetLoan(ctx context.Context, id int64) (*api.Loan, error) {
	var resp api.Loan
	path := fmt.Sprintf("/loans/%d/", id)
	if err := c.doRequest(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("get loan request failed: %w", err)
	}
	return &resp, nil
}

// OverdueLoans возвращает просроченные займы (admin only)
func (c *Client) OverdueLoans(ctx context.Context) ([]api.Loan, error) {
	var resp []api.Loan
	if err := c.doRequest(ctx, http.MethodGet, "/admin/loans/overdue/", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("overdue loans request failed: %w", err)
	}
	return resp, nil
}
