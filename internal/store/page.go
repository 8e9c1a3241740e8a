package store

import "fmt"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects a window of a result set. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return fmt.Errorf("page must not be negative")
	}
	if p.Size <= 0 {
		return fmt.Errorf("size must be positive")
	}
	if p.Size > MaxPageSize {
		return fmt.Errorf("size must be at most %d", MaxPageSize)
	}
	return nil
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Page is one window of a larger result set.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

func NewPage[T any](content []T, req PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          req.Page+1 >= totalPages,
	}
}

// MapPage converts the content of p, keeping the paging metadata.
func MapPage[T, R any](p Page[T], fn func(T) R) Page[R] {
	out := make([]R, len(p.Content))
	for i, item := range p.Content {
		out[i] = fn(item)
	}

	return Page[R]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		First:         p.First,
		Last:          p.Last,
	}
}
