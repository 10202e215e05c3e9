package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/iudanet/shelfctl/pkg/api"
)

func (c *Cli) runBooks(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("books", flag.ContinueOnError)
	search := fs.String("search", "", "search in title, author, isbn")
	category := fs.String("category", "", "filter by category")
	author := fs.String("author", "", "filter by author")
	language := fs.String("language", "", "filter by language")
	available := fs.Bool("available", false, "only books with available copies")
	minPages := fs.Int("min-pages", 0, "minimum page count")
	maxPages := fs.Int("max-pages", 0, "maximum page count")
	page := fs.Int("page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	filters := api.BookFilters{
		Search:   *search,
		Category: *category,
		Author:   *author,
		Language: *language,
		MinPages: *minPages,
		MaxPages: *maxPages,
		Page:     *page,
		PageSize: c.pageSize,
	}

	// Фильтр по доступности отправляем только если флаг был указан,
	// иначе применяется серверное значение по умолчанию
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "available" {
			filters.Available = available
		}
	})

	result, err := c.books.List(ctx, filters)
	if err != nil {
		return err
	}

	if len(result.Results) == 0 {
		c.io.Println("No books found.")
		return nil
	}

	c.io.Printf("Found %d book(s):\n", result.Count)
	c.io.Println()
	for _, book := range result.Results {
		c.printBookLine(&book)
	}

	c.io.Println()
	c.io.Printf("Page %d of %d", filters.Page, result.TotalPages(c.pageSize))
	if result.HasNext() {
		c.io.Printf("  (use --page %d for more)", filters.Page+1)
	}
	c.io.Println()

	return nil
}

func (c *Cli) runBook(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing book id or subcommand. Usage: shelfctl book <ID|add|update|delete>")
	}

	// Админские подкоманды каталога
	switch args[0] {
	case "add":
		return c.runBookAdd(ctx)
	case "update":
		return c.runBookUpdate(ctx, args[1:])
	case "delete":
		return c.runBookDelete(ctx, args[1:])
	}

	id, err := parseID(args, "book id")
	if err != nil {
		return err
	}

	book, err := c.books.Get(ctx, id)
	if err != nil {
		return err
	}

	c.printBookDetails(book)
	return nil
}

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing search query. Usage: shelfctl search QUERY")
	}
	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	results, err := c.books.Search(ctx, strings.Join(args, " "))
	if err != nil {
		return err
	}

	if len(results) == 0 {
		c.io.Println("No books found.")
		return nil
	}

	c.io.Printf("Found %d book(s):\n", len(results))
	c.io.Println()
	for _, book := range results {
		c.printBookLine(&book)
	}

	return nil
}

func (c *Cli) runCategories(ctx context.Context) error {
	categories, err := c.books.Categories(ctx)
	if err != nil {
		return err
	}

	if len(categories) == 0 {
		c.io.Println("No categories found.")
		return nil
	}

	c.io.Println("Categories:")
	for _, category := range categories {
		c.io.Printf("  %s\n", category)
	}

	return nil
}

func (c *Cli) printBookLine(book *api.Book) {
	availability := "not available"
	if book.IsAvailable {
		availability = fmt.Sprintf("%d of %d available", book.AvailableCopies, book.TotalCopies)
	}
	c.io.Printf("  [%d] %s — %s (%s, %s)\n", book.ID, book.Title, book.Author, book.Category, availability)
}

func (c *Cli) printBookDetails(book *api.Book) {
	c.io.Printf("=== %s ===\n", book.Title)
	c.io.Printf("ID:          %d\n", book.ID)
	c.io.Printf("Author:      %s\n", book.Author)
	c.io.Printf("ISBN:        %s\n", book.ISBN)
	if book.Publisher != "" {
		c.io.Printf("Publisher:   %s\n", book.Publisher)
	}
	if book.PublicationDate != "" {
		c.io.Printf("Published:   %s\n", book.PublicationDate)
	}
	c.io.Printf("Category:    %s\n", book.Category)
	c.io.Printf("Language:    %s\n", book.Language)
	c.io.Printf("Pages:       %d\n", book.PageCount)
	c.io.Printf("Copies:      %d available of %d total\n", book.AvailableCopies, book.TotalCopies)
	if book.Description != "" {
		c.io.Println()
		c.io.Println(book.Description)
	}
}
