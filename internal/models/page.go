package models

// PageSize is the fixed number of posts per feed page.
const PageSize = 10

// Page is one slice of a feed.
type Page[T any] struct {
	Items       []T   `json:"items"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"total_pages"`
	Count       int64 `json:"count"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPage builds page metadata for a result of total records.
func NewPage[T any](items []T, page int, total int64) Page[T] {
	pages := TotalPages(total)
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items:       items,
		Page:        page,
		TotalPages:  pages,
		Count:       total,
		HasNext:     page < pages,
		HasPrevious: page > 1,
	}
}

// TotalPages returns the number of pages needed for total records. An empty
// feed still has one (empty) page.
func TotalPages(total int64) int {
	if total <= 0 {
		return 1
	}
	return int((total + PageSize - 1) / PageSize)
}

// ClampPage resolves a requested page number the lenient way: anything below
// 1 becomes 1 and anything past the end becomes the last page.
func ClampPage(requested int, total int64) int {
	last := TotalPages(total)
	if requested < 1 {
		return 1
	}
	if requested > last {
		return last
	}
	return requested
}
