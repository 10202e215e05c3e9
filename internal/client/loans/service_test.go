package loans

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/shelfctl/pkg/api"
)

// mockGateway реализует Gateway с записью последнего вызова
type mockGateway struct {
	lastBookID  int64
	lastLoanID  int64
	lastStatus  string
	lastPage    int
	myLoanCalls int
	allCalls    int
	err         error
}

func (m *mockGateway) BorrowBook(ctx context.Context, bookID int64) (*api.Loan, error) {
	m.lastBookID = bookID
	if m.err != nil {
		return nil, m.err
	}
	return &api.Loan{ID: 1, Status: api.LoanStatusActive}, nil
}

func (m *mockGateway) ReturnLoan(ctx context.Context, loanID int64) (*api.Loan, error) {
	m.lastLoanID = loanID
	if m.err != nil {
		return nil, m.err
	}
	return &api.Loan{ID: loanID, Status: api.LoanStatusReturned}, nil
}

func (m *mockGateway) MyLoans(ctx context.Context, status string, page int) (*api.Paginated[api.Loan], error) {
	m.myLoanCalls++
	m.lastStatus = status
	m.lastPage = page
	return &api.Paginated[api.Loan]{Count: 2}, m.err
}

func (m *mockGateway) Loans(ctx context.Context, status string, page int) (*api.Paginated[api.Loan], error) {
	m.allCalls++
	m.lastStatus = status
	m.lastPage = page
	return &api.Paginated[api.Loan]{Count: 5}, m.err
}

func (m *mockGateway) GetLoan(ctx context.Context, id int64) (*api.Loan, error) {
	m.lastLoanID = id
	return &api.Loan{ID: id}, m.err
}

func (m *mockGateway) OverdueLoans(ctx context.Context) ([]api.Loan, error) {
	return []api.Loan{{ID: 1, IsOverdue: true}}, m.err
}

func TestStatusFilter_Valid(t *testing.T) {
	assert.True(t, StatusAny.Valid())
	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusReturned.Valid())
	assert.True(t, StatusOverdue.Valid())
	assert.False(t, StatusFilter("borrowed").Valid())
	assert.False(t, StatusFilter("ACTIVE").Valid())
}

func TestService_Borrow(t *testing.T) {
	gw := &mockGateway{}
	svc := NewService(gw)

	loan, err := svc.Borrow(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, api.LoanStatusActive, loan.Status)
	assert.Equal(t, int64(42), gw.lastBookID)

	_, err = svc.Borrow(context.Background(), 0)
	require.Error(t, err)
}

// Отказ сервера доходит до вызывающего с дословным сообщением
func TestService_Borrow_ConflictVerbatim(t *testing.T) {
	serverErr := api.ParseError(http.StatusBadRequest, []byte(`{"error": "This book is currently not available."}`))
	svc := NewService(&mockGateway{err: serverErr})

	_, err := svc.Borrow(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, api.IsConflict(err))
	assert.Contains(t, err.Error(), "This book is currently not available.")
}

func TestService_Return(t *testing.T) {
	gw := &mockGateway{}
	svc := NewService(gw)

	loan, err := svc.Return(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, api.LoanStatusReturned, loan.Status)
	assert.Equal(t, int64(7), gw.lastLoanID)

	_, err = svc.Return(context.Background(), -1)
	require.Error(t, err)
}

func TestService_Return_AlreadyReturned(t *testing.T) {
	serverErr := api.ParseError(http.StatusBadRequest, []byte(`{"error": "This loan has already been returned."}`))
	svc := NewService(&mockGateway{err: serverErr})

	_, err := svc.Return(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, api.IsConflict(err))
}

func TestService_ListMine_StatusPassedVerbatim(t *testing.T) {
	gw := &mockGateway{}
	svc := NewService(gw)

	_, err := svc.ListMine(context.Background(), StatusActive, 2)
	require.NoError(t, err)
	assert.Equal(t, "active", gw.lastStatus)
	assert.Equal(t, 2, gw.lastPage)

	// Пустой фильтр не добавляет параметр status
	_, err = svc.ListMine(context.Background(), StatusAny, 1)
	require.NoError(t, err)
	assert.Equal(t, "", gw.lastStatus)
}

func TestService_ListMine_RejectsUnknownStatus(t *testing.T) {
	gw := &mockGateway{}
	svc := NewService(gw)

	_, err := svc.ListMine(context.Background(), StatusFilter("expired"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid status filter")
	assert.Zero(t, gw.myLoanCalls)
}

func TestService_ListAll(t *testing.T) {
	gw := &mockGateway{}
	svc := NewService(gw)

	page, err := svc.ListAll(context.Background(), StatusOverdue, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, page.Count)
	assert.Equal(t, "overdue", gw.lastStatus)

	_, err = svc.ListAll(context.Background(), StatusFilter("bad"), 1)
	require.Error(t, err)
	assert.Equal(t, 1, gw.allCalls)
}

func TestService_Get(t *testing.T) {
	svc := NewService(&mockGateway{})

	_, err := svc.Get(context.Background(), 0)
	require.Error(t, err)

	loan, err := svc.Get(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), loan.ID)
}

func TestService_Overdue(t *testing.T) {
	svc := NewService(&mockGateway{})

	overdue, err := svc.Overdue(context.Background())
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.True(t, overdue[0].IsOverdue)
}
