// Package pagination computes offset/limit windows and page metadata.
// It is a pure computation over counts; it never touches storage.
package pagination

import (
	"fmt"

	"taskhub/internal/errors"
)

// SortOrder controls result ordering by creation time.
type SortOrder string

const (
	// SortAsc is oldest-first.
	SortAsc SortOrder = "asc"
	// SortDesc is newest-first.
	SortDesc SortOrder = "desc"
)

const (
	// DefaultLimit is the page size used when the caller does not specify one.
	DefaultLimit = 10
	// MaxLimit caps the page size.
	MaxLimit = 100
)

// Params is a validated pagination window.
type Params struct {
	Limit     int
	Offset    int
	SortOrder SortOrder
}

// DefaultParams returns the window used when the caller specifies nothing.
func DefaultParams() Params {
	return Params{Limit: DefaultLimit, Offset: 0, SortOrder: SortAsc}
}

// NewParams validates and builds pagination parameters. An empty sortOrder
// defaults to ascending.
func NewParams(limit, offset int, sortOrder SortOrder) (Params, error) {
	if limit < 1 {
		return Params{}, errors.NewValidation("limit must be at least 1", "limit")
	}
	if limit > MaxLimit {
		return Params{}, errors.NewValidation(fmt.Sprintf("limit must be at most %d", MaxLimit), "limit")
	}
	if offset < 0 {
		return Params{}, errors.NewValidation("offset must not be negative", "offset")
	}
	switch sortOrder {
	case SortAsc, SortDesc:
	case "":
		sortOrder = SortAsc
	default:
		return Params{}, errors.NewValidation("sort_order must be asc or desc", "sort_order")
	}
	return Params{Limit: limit, Offset: offset, SortOrder: sortOrder}, nil
}

// Page is one window of results plus metadata derived from the total count.
type Page[T any] struct {
	Results    []T   `json:"results"`
	Total      int64 `json:"total"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// NewPage assembles a page from a result window and the total row count.
func NewPage[T any](results []T, total int64, params Params) Page[T] {
	if results == nil {
		results = []T{}
	}
	return Page[T]{
		Results:    results,
		Total:      total,
		Limit:      params.Limit,
		Offset:     params.Offset,
		TotalPages: TotalPages(total, params.Limit),
		HasNext:    int64(params.Offset+params.Limit) < total,
		HasPrev:    params.Offset > 0,
	}
}

// TotalPages returns ceil(total/limit), 0 when total is 0.
func TotalPages(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
