package shared

import "math"

// PageRequest is a zero-based page index plus a page size.
type PageRequest struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// Offset is the number of rows skipped before this page. It saturates at
// math.MaxInt instead of overflowing.
func (p PageRequest) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
}

func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	if content == nil {
		content = []T{}
	}
	return &Page[T]{Content: content, Page: req.Page, Size: req.Size, TotalElements: total}
}

// MapPage converts every element with fn and keeps the paging metadata.
func MapPage[T, R any](p *Page[T], fn func(T) R) *Page[R] {
	if p == nil {
		return nil
	}
	out := make([]R, 0, len(p.Content))
	for _, item := range p.Content {
		out = append(out, fn(item))
	}
	return &Page[R]{Content: out, Page: p.Page, Size: p.Size, TotalElements: p.TotalElements}
}
