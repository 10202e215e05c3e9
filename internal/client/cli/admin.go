package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/iudanet/shelfctl/internal/client/loans"
	"github.com/iudanet/shelfctl/pkg/api"
)

func (c *Cli) runBookAdd(ctx context.Context) error {
	if _, err := c.requireAdmin(ctx); err != nil {
		return err
	}

	c.io.Println("=== Add Book ===")
	c.io.Println()

	input := api.BookInput{}

	var err error
	if input.Title, err = c.io.ReadInput("Title: "); err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if input.Author, err = c.io.ReadInput("Author: "); err != nil {
		return fmt.Errorf("failed to read author: %w", err)
	}
	if input.ISBN, err = c.io.ReadInput("ISBN: "); err != nil {
		return fmt.Errorf("failed to read isbn: %w", err)
	}
	if input.Category, err = c.io.ReadInput("Category: "); err != nil {
		return fmt.Errorf("failed to read category: %w", err)
	}
	if input.Language, err = c.io.ReadInput("Language: "); err != nil {
		return fmt.Errorf("failed to read language: %w", err)
	}
	if input.Publisher, err = c.io.ReadInput("Publisher (optional): "); err != nil {
		return fmt.Errorf("failed to read publisher: %w", err)
	}
	if input.PublicationDate, err = c.io.ReadInput("Publication date YYYY-MM-DD (optional): "); err != nil {
		return fmt.Errorf("failed to read publication date: %w", err)
	}
	if input.Description, err = c.io.ReadInput("Description (optional): "); err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}

	if input.PageCount, err = c.readInt("Page count: "); err != nil {
		return err
	}
	if input.TotalCopies, err = c.readInt("Total copies: "); err != nil {
		return err
	}

	book, err := c.books.Create(ctx, input)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Book added!")
	c.io.Printf("ID: %d, %s — %s\n", book.ID, book.Title, book.Author)

	return nil
}

func (c *Cli) runBookUpdate(ctx context.Context, args []string) error {
	id, err := parseID(args, "book id")
	if err != nil {
		return err
	}
	if _, err := c.requireAdmin(ctx); err != nil {
		return err
	}

	current, err := c.books.Get(ctx, id)
	if err != nil {
		return err
	}

	c.io.Printf("=== Update Book %d (%s) ===\n", current.ID, current.Title)
	c.io.Println("Leave a field empty to keep its current value.")
	c.io.Println()

	input := api.BookInput{}

	if input.Title, err = c.io.ReadInput(fmt.Sprintf("Title [%s]: ", current.Title)); err != nil {
		return fmt.Errorf("failed to read title: %w", err)
	}
	if input.Author, err = c.io.ReadInput(fmt.Sprintf("Author [%s]: ", current.Author)); err != nil {
		return fmt.Errorf("failed to read author: %w", err)
	}
	if input.Category, err = c.io.ReadInput(fmt.Sprintf("Category [%s]: ", current.Category)); err != nil {
		return fmt.Errorf("failed to read category: %w", err)
	}
	if input.Description, err = c.io.ReadInput("Description: "); err != nil {
		return fmt.Errorf("failed to read description: %w", err)
	}

	copiesStr, err := c.io.ReadInput(fmt.Sprintf("Total copies [%d]: ", current.TotalCopies))
	if err != nil {
		return fmt.Errorf("failed to read total copies: %w", err)
	}
	if copiesStr != "" {
		copies, convErr := strconv.Atoi(copiesStr)
		if convErr != nil || copies <= 0 {
			return fmt.Errorf("invalid total copies: %q", copiesStr)
		}
		input.TotalCopies = copies
	}

	if input == (api.BookInput{}) {
		c.io.Println("Nothing to update.")
		return nil
	}

	book, err := c.books.Update(ctx, id, input)
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Println("✓ Book updated!")
	c.io.Printf("ID: %d, %s — %s\n", book.ID, book.Title, book.Author)

	return nil
}

func (c *Cli) runBookDelete(ctx context.Context, args []string) error {
	id, err := parseID(args, "book id")
	if err != nil {
		return err
	}
	if _, err := c.requireAdmin(ctx); err != nil {
		return err
	}

	book, err := c.books.Get(ctx, id)
	if err != nil {
		return err
	}

	// Подтверждение перед удалением
	answer, err := c.io.ReadInput(fmt.Sprintf("Delete %q by %s? (yes/no): ", book.Title, book.Author))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if answer != "yes" {
		c.io.Println("Cancelled.")
		return nil
	}

	if err := c.books.Delete(ctx, id); err != nil {
		return err
	}

	c.io.Println("✓ Book deleted.")
	return nil
}

// runStats shows the aggregate numbers the server exposes through its
// listing counts; nothing is computed client-side beyond reading Count.
func (c *Cli) runStats(ctx context.Context) error {
	if _, err := c.requireAdmin(ctx); err != nil {
		return err
	}

	booksPage, err := c.books.List(ctx, api.BookFilters{Page: 1, PageSize: 1})
	if err != nil {
		return fmt.Errorf("failed to count books: %w", err)
	}

	allLoans, err := c.loans.ListAll(ctx, loans.StatusAny, 1)
	if err != nil {
		return fmt.Errorf("failed to count loans: %w", err)
	}

	activeLoans, err := c.loans.ListAll(ctx, loans.StatusActive, 1)
	if err != nil {
		return fmt.Errorf("failed to count active loans: %w", err)
	}

	overdue, err := c.loans.Overdue(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch overdue loans: %w", err)
	}

	c.io.Println("=== Library Statistics ===")
	c.io.Printf("Total books:   %d\n", booksPage.Count)
	c.io.Printf("Total loans:   %d\n", allLoans.Count)
	c.io.Printf("Active loans:  %d\n", activeLoans.Count)
	c.io.Printf("Overdue loans: %d\n", len(overdue))

	return nil
}

// readInt читает обязательное положительное число
func (c *Cli) readInt(prompt string) (int, error) {
	str, err := c.io.ReadInput(prompt)
	if err != nil {
		return 0, fmt.Errorf("failed to read input: %w", err)
	}
	n, err := strconv.Atoi(str)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive number, got %q", str)
	}
	return n, nil
}
