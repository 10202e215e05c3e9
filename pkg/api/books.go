package api

import (
	"net/url"
	"strconv"
)

// Book represents a catalog entry. AvailableCopies and IsAvailable are
// server-maintained; the client renders them and never recomputes.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	Publisher       string `json:"publisher,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	PageCount       int    `json:"page_count"`
	Language        string `json:"language"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
	CoverImage      string `json:"cover_image,omitempty"`
	IsAvailable     bool   `json:"is_available"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// BookInput is the admin create/update payload. On PATCH the zero-valued
// fields are omitted, so partial updates keep unmentioned fields intact.
type BookInput struct {
	Title           string `json:"title,omitempty"`
	Author          string `json:"author,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	PageCount       int    `json:"page_count,omitempty"`
	Language        string `json:"language,omitempty"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category,omitempty"`
	TotalCopies     int    `json:"total_copies,omitempty"`
}

// BookFilters is the listing query as a value object. Zero-valued fields
// are omitted from the outgoing query string entirely so the server's own
// defaults apply; two equal filter values always encode to the same query.
type BookFilters struct {
	Search    string
	Category  string
	Author    string
	Language  string
	Available *bool
	MinPages  int
	MaxPages  int
	Page      int
	PageSize  int
}

// Query encodes the filters into URL query parameters, omitting every
// absent field.
func (f BookFilters) Query() url.Values {
	params := url.Values{}
	if f.Search != "" {
		params.Set("search", f.Search)
	}
	if f.Category != "" {
		params.Set("category", f.Category)
	}
	if f.Author != "" {
		params.Set("author", f.Author)
	}
	if f.Language != "" {
		params.Set("language", f.Language)
	}
	if f.Available != nil {
		params.Set("available", strconv.FormatBool(*f.Available))
	}
	if f.MinPages > 0 {
		params.Set("min_pages", strconv.Itoa(f.MinPages))
	}
	if f.MaxPages > 0 {
		params.Set("max_pages", strconv.Itoa(f.MaxPages))
	}
	if f.Page > 0 {
		params.Set("page", strconv.Itoa(f.Page))
	}
	if f.PageSize > 0 {
		params.Set("page_size", strconv.Itoa(f.PageSize))
	}
	return params
}
