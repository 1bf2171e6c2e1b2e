package repository

import "math"

// SortOrder orders results by one property.
type SortOrder struct {
	Property string
	Desc     bool
}

// Pageable describes a page slice request. Page is zero-based.
type Pageable struct {
	Page int
	Size int
	Sort []SortOrder
}

// Offset is the number of rows skipped before the page. It saturates at math.MaxInt.
func (p Pageable) Offset() int {
	if p.Size > 0 && p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of a larger result.
type Page[T any] struct {
	Content       []T
	TotalElements int64
	TotalPages    int
	Number        int
	Size          int
}

// NewPage builds a page and derives TotalPages from total and the requested size.
func NewPage[T any](content []T, p Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	pages := 1
	if p.Size > 0 {
		pages = int((total + int64(p.Size) - 1) / int64(p.Size))
	}
	return Page[T]{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Number:        p.Page,
		Size:          p.Size,
	}
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Number < p.TotalPages-1 }

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 0 }
