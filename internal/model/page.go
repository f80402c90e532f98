package model

import "math"

// PageRequest selects one 1-based page of a listing.
type PageRequest struct {
	Number int
	Size   int
}

// Offset returns the number of rows preceding the page. It saturates at
// math.MaxInt instead of wrapping.
func (p PageRequest) Offset() int {
	if p.Number < 1 || p.Size < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return (p.Number - 1) * p.Size
}

// Within reports whether the page exists for a listing of total rows.
// The first page always exists, even for an empty listing.
func (p PageRequest) Within(total int64) bool {
	if p.Number < 1 || p.Size < 1 {
		return false
	}
	if p.Number == 1 {
		return true
	}
	size := int64(p.Size)
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return int64(p.Number-1) < pages
}

// Page is one page of a listing together with the listing's total size.
type Page[T any] struct {
	Items []T
	Count int64
}

// HasNext reports whether a page follows req.
func (p Page[T]) HasNext(req PageRequest) bool {
	return int64(req.Offset()) < p.Count-int64(len(p.Items))
}
