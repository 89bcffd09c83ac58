package billing

import (
	"errors"
	"fmt"

	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/entity"
	"github.com/bots-hq/truegrow-kashmir-connect/internal/domain/enum"
)

var ErrSessionClosed = errors.New("edit session already closed")

// EditSession is the in-progress edit of one stored sale. The original sale is
// never mutated; Commit produces the edited copy and closes the session.
type EditSession struct {
	original entity.Sale
	editor   *Editor
	status   enum.PaymentStatus
	closed   bool
}

// BeginEdit opens a session over a snapshot of sale
func BeginEdit(sale *entity.Sale) *EditSession {
	snapshot := *sale
	snapshot.Items = append([]entity.LineItem(nil), sale.Items...)
	return &EditSession{
		original: snapshot,
		editor:   NewEditor(snapshot.LineItems()...),
		status:   snapshot.PaymentStatus,
	}
}

// Editor exposes the line items being edited
func (s *EditSession) Editor() *Editor {
	return s.editor
}

// ReplaceItems swaps in a fresh set of lines
func (s *EditSession) ReplaceItems(items []entity.LineItem) error {
	if s.closed {
		return ErrSessionClosed
	}
	s.editor = NewEditor(items...)
	return nil
}

// SetPaymentStatus changes the status the committed sale will carry
func (s *EditSession) SetPaymentStatus(status enum.PaymentStatus) error {
	if s.closed {
		return ErrSessionClosed
	}
	if !status.IsValid() {
		return fmt.Errorf("invalid payment status %q", status)
	}
	s.status = status
	return nil
}

// SaleID identifies the sale under edit
func (s *EditSession) SaleID() string {
	return s.original.ID.String()
}

// Original returns the untouched snapshot
func (s *EditSession) Original() entity.Sale {
	return s.original
}

// Commit closes the session and returns the edited sale with totals
// recomputed from its items.
func (s *EditSession) Commit() (*entity.Sale, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	s.closed = true

	edited := s.original
	edited.Items = s.editor.Items()
	edited.PaymentStatus = s.status
	ApplyTotals(&edited)
	return &edited, nil
}

// Discard closes the session without producing anything
func (s *EditSession) Discard() {
	s.closed = true
}

// Closed reports whether Commit or Discard has been called
func (s *EditSession) Closed() bool {
	return s.closed
}
