// Package pagination carries page and keyset paging parameters and the
// metadata returned alongside list results.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

const (
	defaultPerPage = 15
	maxPerPage     = 100
)

// ErrInvalidCursor is returned when a cursor cannot be decoded
var ErrInvalidCursor = errors.New("invalid cursor")

// Pagination is the metadata of an offset page
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

// PaginationParams selects an offset page
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination returns the first page with the default size
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: defaultPerPage}
}

// Validate clamps the page to >= 1 and the size to 1..100
func (p *PaginationParams) Validate() {
	if p.Page < 1 {
		p.Page = 1
	}
	p.PerPage = clampSize(p.PerPage)
}

// Offset is the number of rows skipped before the page
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// NewPagination builds page metadata from the total row count
func NewPagination(page, perPage int, total int64) *Pagination {
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult is one offset page of items
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult pairs items with their page metadata
func NewPaginatedResult[T any](items []T, pagination *Pagination) *PaginatedResult[T] {
	return &PaginatedResult[T]{Items: items, Pagination: pagination}
}

// CursorDirection is the way a keyset page moves from its cursor
type CursorDirection string

const (
	// CursorDirectionNext moves towards older rows
	CursorDirectionNext CursorDirection = "next"
	// CursorDirectionPrev moves towards newer rows
	CursorDirectionPrev CursorDirection = "prev"
)

// Cursor is the position of a row in a list ordered newest first by (At, ID)
type Cursor struct {
	ID string    `json:"id"`
	At time.Time `json:"at"`
}

// CursorParams selects a keyset page
type CursorParams struct {
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// DefaultCursorParams returns the newest page with the default size
func DefaultCursorParams() *CursorParams {
	return &CursorParams{Direction: CursorDirectionNext, Limit: defaultPerPage}
}

// Validate clamps the limit to 1..100 and defaults the direction to next
func (c *CursorParams) Validate() {
	c.Limit = clampSize(c.Limit)
	if c.Direction != CursorDirectionPrev {
		c.Direction = CursorDirectionNext
	}
}

// DecodeCursor returns the position the page starts after, or nil for the
// first page
func (c *CursorParams) DecodeCursor() (*Cursor, error) {
	if c.Cursor == "" {
		return nil, nil
	}
	raw, err := base64.URLEncoding.DecodeString(c.Cursor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var cursor Cursor
	if err := json.Unmarshal(raw, &cursor); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if cursor.ID == "" || cursor.At.IsZero() {
		return nil, ErrInvalidCursor
	}
	return &cursor, nil
}

// EncodeCursor encodes a row position
func EncodeCursor(id string, at time.Time) string {
	data, _ := json.Marshal(Cursor{ID: id, At: at})
	return base64.URLEncoding.EncodeToString(data)
}

// CursorPagination is the metadata of a keyset page
type CursorPagination struct {
	NextCursor *string `json:"next_cursor,omitempty"`
	PrevCursor *string `json:"prev_cursor,omitempty"`
	HasNext    bool    `json:"has_next"`
	HasPrev    bool    `json:"has_prev"`
	Limit      int     `json:"limit"`
}

// CursorPaginatedResult is one keyset page of items
type CursorPaginatedResult[T any] struct {
	Items      []T               `json:"items"`
	Pagination *CursorPagination `json:"pagination"`
}

// NewCursorPagination trims rows fetched with Limit+1 to one page and
// derives its metadata. Next pages arrive newest first; prev pages arrive
// oldest first from the cursor and are flipped so every page reads newest
// first.
func NewCursorPagination[T any](rows []T, params *CursorParams, key func(T) (string, time.Time)) (*CursorPagination, []T) {
	more := len(rows) > params.Limit
	if more {
		rows = rows[:params.Limit]
	}

	pag := &CursorPagination{Limit: params.Limit}
	if params.Direction == CursorDirectionPrev {
		slices.Reverse(rows)
		pag.HasPrev = more
		pag.HasNext = params.Cursor != ""
	} else {
		pag.HasNext = more
		pag.HasPrev = params.Cursor != ""
	}

	if len(rows) == 0 {
		return pag, rows
	}
	if pag.HasNext {
		next := EncodeCursor(key(rows[len(rows)-1]))
		pag.NextCursor = &next
	}
	if pag.HasPrev {
		prev := EncodeCursor(key(rows[0]))
		pag.PrevCursor = &prev
	}
	return pag, rows
}

// NewCursorPaginatedResult pairs items with their keyset metadata
func NewCursorPaginatedResult[T any](items []T, pagination *CursorPagination) *CursorPaginatedResult[T] {
	return &CursorPaginatedResult[T]{Items: items, Pagination: pagination}
}

// UnifiedPaginationParams accepts either page or cursor parameters on one
// list endpoint. Any cursor or limit switches the request to keyset paging.
type UnifiedPaginationParams struct {
	Page      int             `form:"page" json:"page"`
	PerPage   int             `form:"per_page" json:"per_page"`
	Cursor    string          `form:"cursor" json:"cursor"`
	Direction CursorDirection `form:"direction" json:"direction"`
	Limit     int             `form:"limit" json:"limit"`
}

// IsCursorBased reports whether keyset paging was asked for
func (u *UnifiedPaginationParams) IsCursorBased() bool {
	return u.Cursor != "" || u.Limit > 0
}

// ToPaginationParams returns the validated offset parameters
func (u *UnifiedPaginationParams) ToPaginationParams() *PaginationParams {
	params := &PaginationParams{Page: u.Page, PerPage: u.PerPage}
	params.Validate()
	return params
}

// ToCursorParams returns the validated keyset parameters. per_page stands in
// for a missing limit.
func (u *UnifiedPaginationParams) ToCursorParams() *CursorParams {
	params := &CursorParams{Cursor: u.Cursor, Direction: u.Direction, Limit: u.Limit}
	if params.Limit == 0 {
		params.Limit = u.PerPage
	}
	params.Validate()
	return params
}

// UnifiedPaginatedResult is a list page in either paging mode. Page fields
// are omitted for keyset pages and cursors for offset pages.
type UnifiedPaginatedResult[T any] struct {
	Items       []T     `json:"items"`
	CurrentPage *int    `json:"current_page,omitempty"`
	TotalPages  *int    `json:"total_pages,omitempty"`
	Total       *int64  `json:"total,omitempty"`
	NextCursor  *string `json:"next_cursor,omitempty"`
	PrevCursor  *string `json:"prev_cursor,omitempty"`
	HasNext     bool    `json:"has_next"`
	HasPrev     bool    `json:"has_prev"`
	PerPage     int     `json:"per_page"`
}

// FromPage flattens an offset page
func FromPage[T any](result *PaginatedResult[T]) *UnifiedPaginatedResult[T] {
	p := result.Pagination
	return &UnifiedPaginatedResult[T]{
		Items:       result.Items,
		CurrentPage: &p.CurrentPage,
		TotalPages:  &p.TotalPages,
		Total:       &p.Total,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
		PerPage:     p.PerPage,
	}
}

// FromCursor flattens a keyset page
func FromCursor[T any](result *CursorPaginatedResult[T]) *UnifiedPaginatedResult[T] {
	p := result.Pagination
	return &UnifiedPaginatedResult[T]{
		Items:      result.Items,
		NextCursor: p.NextCursor,
		PrevCursor: p.PrevCursor,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
		PerPage:    p.Limit,
	}
}

func clampSize(n int) int {
	switch {
	case n < 1:
		return defaultPerPage
	case n > maxPerPage:
		return maxPerPage
	default:
		return n
	}
}
