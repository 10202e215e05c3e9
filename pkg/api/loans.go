package api

// LoanStatus перечисляет статусы займа на стороне сервера
type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusReturned LoanStatus = "returned"
	LoanStatusOverdue  LoanStatus = "overdue"
)

// Loan represents one borrow transaction. IsOverdue, DaysOverdue and
// FineAmount are computed by the server; the client treats them as
// read-only facts.
type Loan struct {
	ID          int64      `json:"id"`
	User        User       `json:"user"`
	Book        Book       `json:"book"`
	BorrowDate  string     `json:"borrow_date"`
	DueDate     string     `json:"due_date"`
	ReturnDate  string     `json:"return_date,omitempty"`
	Status      LoanStatus `json:"status"`
	IsOverdue   bool       `json:"is_overdue"`
	DaysOverdue int        `json:"days_overdue"`
	FineAmount  string     `json:"fine_amount"`
}

// BorrowRequest представляет запрос на выдачу книги
type BorrowRequest struct {
	BookID int64 `json:"book_id"`
}
