package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/shelfctl/internal/client/books"
	"github.com/iudanet/shelfctl/pkg/api"
)

// fakeIO захватывает вывод и отдает заранее заданный ввод
type fakeIO struct {
	out       strings.Builder
	inputs    []string
	passwords []string
}

func (f *fakeIO) Println(a ...any) {
	f.out.WriteString(fmt.Sprintln(a...))
}

func (f *fakeIO) Printf(format string, a ...any) {
	f.out.WriteString(fmt.Sprintf(format, a...))
}

func (f *fakeIO) ReadInput(prompt string) (string, error) {
	if len(f.inputs) == 0 {
		return "", fmt.Errorf("no scripted input for prompt %q", prompt)
	}
	next := f.inputs[0]
	f.inputs = f.inputs[1:]
	return next, nil
}

func (f *fakeIO) ReadPassword(prompt string) (string, error) {
	if len(f.passwords) == 0 {
		return "", fmt.Errorf("no scripted password for prompt %q", prompt)
	}
	next := f.passwords[0]
	f.passwords = f.passwords[1:]
	return next, nil
}

// stubBooksGateway покрывает только вызовы каталога без аутентификации
type stubBooksGateway struct {
	categories []string
	page       *api.Paginated[api.Book]
}

func (s *stubBooksGateway) ListBooks(ctx context.Context, filters api.BookFilters) (*api.Paginated[api.Book], error) {
	return s.page, nil
}

func (s *stubBooksGateway) GetBook(ctx context.Context, id int64) (*api.Book, error) {
	return &api.Book{ID: id, Title: "Dune", Author: "Frank Herbert", ISBN: "9780441013593", Category: "fiction", Language: "en", TotalCopies: 3, AvailableCopies: 1, IsAvailable: true}, nil
}

func (s *stubBooksGateway) CreateBook(ctx context.Context, input api.BookInput) (*api.Book, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubBooksGateway) UpdateBook(ctx context.Context, id int64, input api.BookInput) (*api.Book, error) {
	return nil, fmt.Errorf("not implemented")
}

func (s *stubBooksGateway) DeleteBook(ctx context.Context, id int64) error {
	return fmt.Errorf("not implemented")
}

func (s *stubBooksGateway) Categories(ctx context.Context) ([]string, error) {
	return s.categories, nil
}

func (s *stubBooksGateway) SearchBooks(ctx context.Context, query string) ([]api.Book, error) {
	return nil, nil
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    int64
		wantErr bool
	}{
		{"valid", []string{"42"}, 42, false},
		{"missing", nil, 0, true},
		{"not a number", []string{"abc"}, 0, true},
		{"zero", []string{"0"}, 0, true},
		{"negative", []string{"-1"}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseID(tt.args, "book id")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	io := &fakeIO{}
	c := New(io, nil, nil, nil, nil, nil, 12)

	err := c.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRun_Categories(t *testing.T) {
	io := &fakeIO{}
	gw := &stubBooksGateway{categories: []string{"fiction", "science"}}
	c := New(io, nil, nil, books.NewService(gw), nil, nil, 12)

	err := c.Run(context.Background(), "categories", nil)
	require.NoError(t, err)
	assert.Contains(t, io.out.String(), "fiction")
	assert.Contains(t, io.out.String(), "science")
}

func TestRun_Book_ShowsDetails(t *testing.T) {
	io := &fakeIO{}
	c := New(io, nil, nil, books.NewService(&stubBooksGateway{}), nil, nil, 12)

	err := c.Run(context.Background(), "book", []string{"7"})
	require.NoError(t, err)
	assert.Contains(t, io.out.String(), "Dune")
	assert.Contains(t, io.out.String(), "1 available of 3 total")
}

func TestRun_Books_ListsPage(t *testing.T) {
	io := &fakeIO{}
	gw := &stubBooksGateway{page: &api.Paginated[api.Book]{
		Count:   1,
		Results: []api.Book{{ID: 1, Title: "Dune", Author: "Frank Herbert", Category: "fiction", IsAvailable: true, AvailableCopies: 1, TotalCopies: 3}},
	}}
	c := New(io, nil, nil, books.NewService(gw), nil, nil, 12)

	err := c.Run(context.Background(), "books", []string{"--search", "dune"})
	require.NoError(t, err)
	assert.Contains(t, io.out.String(), "Found 1 book(s)")
	assert.Contains(t, io.out.String(), "Dune")
}
