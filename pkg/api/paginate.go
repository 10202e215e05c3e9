package api

// Paginated is the server's page envelope for listing endpoints.
// Next is empty on the last page, Previous on the first; Results holds
// at most one page_size worth of items in server order.
type Paginated[T any] struct {
	Count    int    `json:"count"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
	Results  []T    `json:"results"`
}

// TotalPages returns the number of pages at the given page size.
func (p *Paginated[T]) TotalPages(pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	pages := (p.Count + pageSize - 1) / pageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// HasNext reports whether a further page exists.
func (p *Paginated[T]) HasNext() bool {
	return p.Next != ""
}

// HasPrevious reports whether an earlier page exists.
func (p *Paginated[T]) HasPrevious() bool {
	return p.Previous != ""
}
