package enum

import "strings"

// PaymentStatus is the settlement state of a sale
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusOverdue PaymentStatus = "overdue"
)

// PaymentStatuses lists every accepted payment status
var PaymentStatuses = []PaymentStatus{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusOverdue,
}

func (s PaymentStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known statuses
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusOverdue:
		return true
	}
	return false
}

// IsSettled reports whether the sale has been paid
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusPaid
}

// ParsePaymentStatus parses a status case-insensitively
func ParsePaymentStatus(raw string) (PaymentStatus, bool) {
	s := PaymentStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.IsValid()
}
