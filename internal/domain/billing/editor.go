package billing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
)

// Field names a user-editable column of a line item
type Field string

const (
	FieldName     Field = "name"
	FieldQuantity Field = "quantity"
	FieldUnit     Field = "unit"
	FieldPrice    Field = "price"
	FieldCategory Field = "category"
)

var (
	ErrLineOutOfRange = errors.New("line index out of range")
	ErrUnknownField   = errors.New("unknown line item field")
)

// BlankLine is the line appended by Add and used to seed a new editor
func BlankLine() entity.LineItem {
	return entity.LineItem{
		Name:     "",
		Quantity: 1,
		Unit:     enum.DefaultUnit,
		Price:    0,
		Total:    0,
	}
}

// Editor holds the ordered line items of an invoice being composed.
// It is not safe for concurrent use.
type Editor struct {
	items []entity.LineItem
}

// NewEditor starts from the given items, or from a single blank line when none
// are given. Line totals are recomputed.
func NewEditor(items ...entity.LineItem) *Editor {
	if len(items) == 0 {
		return &Editor{items: []entity.LineItem{BlankLine()}}
	}
	return &Editor{items: Reprice(items)}
}

// Add appends a blank line
func (e *Editor) Add() {
	e.items = append(e.items, BlankLine())
}

// Remove deletes the line at i. The last remaining line cannot be removed and
// out-of-range indexes are ignored.
func (e *Editor) Remove(i int) {
	if len(e.items) <= 1 || i < 0 || i >= len(e.items) {
		return
	}
	e.items = append(e.items[:i], e.items[i+1:]...)
}

// Update sets one field of line i from raw form input. Quantity falls back to 1
// and price to 0 when the input does not parse. Only quantity and price
// changes touch the line total.
func (e *Editor) Update(i int, field Field, value string) error {
	if i < 0 || i >= len(e.items) {
		return fmt.Errorf("%w: %d", ErrLineOutOfRange, i)
	}
	line := &e.items[i]

	switch field {
	case FieldName:
		line.Name = value
	case FieldCategory:
		line.Category = strings.TrimSpace(value)
	case FieldUnit:
		unit, err := enum.ParseUnit(strings.TrimSpace(value))
		if err != nil {
			return err
		}
		line.Unit = unit
	case FieldQuantity:
		line.Quantity = ParseQuantity(value)
		line.Total = LineTotal(line.Quantity, line.Price)
	case FieldPrice:
		line.Price = ParsePrice(value)
		line.Total = LineTotal(line.Quantity, line.Price)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Items returns a copy of the current lines
func (e *Editor) Items() []entity.LineItem {
	out := make([]entity.LineItem, len(e.items))
	copy(out, e.items)
	return out
}

// Len is the number of lines
func (e *Editor) Len() int {
	return len(e.items)
}

// Totals derives the invoice totals from the current lines
func (e *Editor) Totals() Totals {
	return CalculateTotals(e.items)
}

// MaxQuantity is the largest quantity a line accepts
const MaxQuantity = math.MaxInt32

// ParseQuantity reads a whole quantity. Fractions are truncated; anything
// unparsable, below one or above MaxQuantity yields 1.
func ParseQuantity(raw string) int {
	raw = strings.TrimSpace(raw)
	if q, err := strconv.Atoi(raw); err == nil {
		if q < 1 || q > MaxQuantity {
			return 1
		}
		return q
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || f < 1 || f > MaxQuantity {
		return 1
	}
	return int(f)
}

// ParsePrice reads a unit price. Anything unparsable or negative yields 0.
func ParsePrice(raw string) float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}
