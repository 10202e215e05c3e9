package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/iudanet/shelfctl/internal/client/loans"
	"github.com/iudanet/shelfctl/pkg/api"
)

func (c *Cli) runBorrow(ctx context.Context, args []string) error {
	bookID, err := parseID(args, "book id")
	if err != nil {
		return err
	}
	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	loan, err := c.loans.Borrow(ctx, bookID)
	if err != nil {
		// Доменные отказы сервера показываем дословно
		return err
	}

	c.io.Println("✓ Book borrowed!")
	c.io.Printf("Loan ID: %d\n", loan.ID)
	c.io.Printf("Book:    %s — %s\n", loan.Book.Title, loan.Book.Author)
	c.io.Printf("Due:     %s\n", loan.DueDate)

	return nil
}

func (c *Cli) runReturn(ctx context.Context, args []string) error {
	loanID, err := parseID(args, "loan id")
	if err != nil {
		return err
	}
	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	loan, err := c.loans.Return(ctx, loanID)
	if err != nil {
		return err
	}

	c.io.Println("✓ Book returned!")
	c.io.Printf("Book:     %s — %s\n", loan.Book.Title, loan.Book.Author)
	c.io.Printf("Returned: %s\n", loan.ReturnDate)
	if loan.FineAmount != "" && loan.FineAmount != "0.00" {
		c.io.Printf("Fine:     %s\n", loan.FineAmount)
	}

	return nil
}

func (c *Cli) runLoans(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("loans", flag.ContinueOnError)
	status := fs.String("status", "", "filter: active, returned or overdue")
	page := fs.Int("page", 1, "page number")
	all := fs.Bool("all", false, "list all users' loans (admin)")
	overdue := fs.Bool("overdue", false, "list overdue loans (admin)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *overdue {
		return c.runOverdueLoans(ctx)
	}
	if *all {
		return c.runAllLoans(ctx, *page)
	}

	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	result, err := c.loans.ListMine(ctx, loans.StatusFilter(*status), *page)
	if err != nil {
		return err
	}

	if len(result.Results) == 0 {
		c.io.Println("No loans found.")
		return nil
	}

	c.io.Printf("Found %d loan(s):\n", result.Count)
	c.io.Println()
	for _, loan := range result.Results {
		c.printLoanLine(&loan)
	}
	if result.HasNext() {
		c.io.Println()
		c.io.Printf("More results: use --page %d\n", *page+1)
	}

	return nil
}

func (c *Cli) runAllLoans(ctx context.Context, page int) error {
	if _, err := c.requireAdmin(ctx); err != nil {
		return err
	}

	result, err := c.loans.ListAll(ctx, loans.StatusAny, page)
	if err != nil {
		return err
	}

	if len(result.Results) == 0 {
		c.io.Println("No loans found.")
		return nil
	}

	c.io.Printf("Found %d loan(s):\n", result.Count)
	c.io.Println()
	for _, loan := range result.Results {
		c.io.Printf("  [%d] %s: %s (%s, due %s)\n",
			loan.ID, loan.User.Username, loan.Book.Title, loan.Status, loan.DueDate)
	}
	if result.HasNext() {
		c.io.Println()
		c.io.Printf("More results: use --page %d\n", page+1)
	}

	return nil
}

func (c *Cli) runOverdueLoans(ctx context.Context) error {
	if _, err := c.requireAdmin(ctx); err != nil {
		return err
	}

	overdue, err := c.loans.Overdue(ctx)
	if err != nil {
		return err
	}

	if len(overdue) == 0 {
		c.io.Println("No overdue loans.")
		return nil
	}

	c.io.Printf("Found %d overdue loan(s):\n", len(overdue))
	c.io.Println()
	for _, loan := range overdue {
		c.io.Printf("  [%d] %s: %s (%d day(s) overdue, fine %s)\n",
			loan.ID, loan.User.Username, loan.Book.Title, loan.DaysOverdue, loan.FineAmount)
	}

	return nil
}

func (c *Cli) runLoan(ctx context.Context, args []string) error {
	loanID, err := parseID(args, "loan id")
	if err != nil {
		return err
	}
	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	loan, err := c.loans.Get(ctx, loanID)
	if err != nil {
		return err
	}

	c.io.Printf("=== Loan %d ===\n", loan.ID)
	c.io.Printf("Book:     %s — %s\n", loan.Book.Title, loan.Book.Author)
	c.io.Printf("Borrowed: %s\n", loan.BorrowDate)
	c.io.Printf("Due:      %s\n", loan.DueDate)
	c.io.Printf("Status:   %s\n", loan.Status)
	if loan.ReturnDate != "" {
		c.io.Printf("Returned: %s\n", loan.ReturnDate)
	}
	if loan.IsOverdue {
		c.io.Printf("Overdue:  %d day(s), fine %s\n", loan.DaysOverdue, loan.FineAmount)
	}

	return nil
}

func (c *Cli) printLoanLine(loan *api.Loan) {
	marker := ""
	if loan.IsOverdue && loan.Status != api.LoanStatusReturned {
		marker = fmt.Sprintf("  ⚠️  %d day(s) overdue, fine %s", loan.DaysOverdue, loan.FineAmount)
	}
	c.io.Printf("  [%d] %s (%s, due %s)%s\n", loan.ID, loan.Book.Title, loan.Status, loan.DueDate, marker)
}
