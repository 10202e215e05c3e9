// Package loans implements the loan action service: borrow and return
// commands plus loan listings. Mutations never update any local state —
// callers re-fetch affected lists after a successful call, and
// business-rule failures carry the server's message verbatim.
package loans

import (
	"context"
	"fmt"

	"github.com/iudanet/shelfctl/pkg/api"
)

// StatusFilter is the client-facing loan listing filter. "active" is
// server vocabulary for "not yet returned" and is passed through
// verbatim, not remapped.
type StatusFilter string

const (
	StatusAny      StatusFilter = ""
	StatusActive   StatusFilter = "active"
	StatusReturned StatusFilter = "returned"
	StatusOverdue  StatusFilter = "overdue"
)

// Valid reports whether the filter is one of the accepted values
func (f StatusFilter) Valid() bool {
	switch f {
	case StatusAny, StatusActive, StatusReturned, StatusOverdue:
		return true
	default:
		return false
	}
}

// Gateway lists the API calls the loan service issues
type Gateway interface {
	BorrowBook(ctx context.Context, bookID int64) (*api.Loan, error)
	ReturnLoan(ctx context.Context, loanID int64) (*api.Loan, error)
	MyLoans(ctx context.Context, status string, page int) (*api.Paginated[api.Loan], error)
	Loans(ctx context.Context, status string, page int) (*api.Paginated[api.Loan], error)
	GetLoan(ctx context.Context, id int64) (*api.Loan, error)
	OverdueLoans(ctx context.Context) ([]api.Loan, error)
}

// Service предоставляет операции займов
type Service struct {
	gateway Gateway
}

// NewService создает новый сервис займов
func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

// Borrow оформляет выдачу книги. Отказ сервера (нет свободных
// экземпляров, уже есть активный займ) приходит как domain conflict.
func (s *Service) Borrow(ctx context.Context, bookID int64) (*api.Loan, error) {
	if bookID <= 0 {
		return nil, fmt.Errorf("book id must be positive")
	}
	return s.gateway.BorrowBook(ctx, bookID)
}

// Return оформляет возврат. Возврат уже возвращенного займа
// отклоняется сервером.
func (s *Service) Return(ctx context.Context, loanID int64) (*api.Loan, error) {
	if loanID <= 0 {
		return nil, fmt.Errorf("loan id must be positive")
	}
	return s.gateway.ReturnLoan(ctx, loanID)
}

// ListMine возвращает займы текущего пользователя
func (s *Service) ListMine(ctx context.Context, status StatusFilter, page int) (*api.Paginated[api.Loan], error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status filter %q (use active, returned or overdue)", status)
	}
	return s.gateway.MyLoans(ctx, string(status), page)
}

// ListAll возвращает все займы; не-админ видит только свои
func (s *Service) ListAll(ctx context.Context, status StatusFilter, page int) (*api.Paginated[api.Loan], error) {
	if !status.Valid() {
		return nil, fmt.Errorf("invalid status filter %q (use active, returned or overdue)", status)
	}
	return s.gateway.Loans(ctx, string(status), page)
}

// Get возвращает займ по ID
func (s *Service) Get(ctx context.Context, id int64) (*api.Loan, error) {
	if id <= 0 {
		return nil, fmt.Errorf("loan id must be positive")
	}
	return s.gateway.GetLoan(ctx, id)
}

// Overdue возвращает просроченные займы (admin only)
func (s *Service) Overdue(ctx context.Context) ([]api.Loan, error) {
	return s.gateway.OverdueLoans(ctx)
}
