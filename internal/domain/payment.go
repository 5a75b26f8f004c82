package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID          int64
	BookingID   int64
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Receipt     string

	// Booking is populated by joined reads used for filtering, nil otherwise.
	Booking *Booking
}

// SummaryState classifies how far along a booking's payments are. It is a
// view-only value derived from the paid sum and is distinct from the
// booking's persisted status.
type SummaryState string

const (
	SummaryStatePending   SummaryState = "PENDING"
	SummaryStatePartial   SummaryState = "PARTIAL"
	SummaryStateCompleted SummaryState = "COMPLETED"
)

// ClassifyPayments derives the summary state from the paid sum against the
// travel price. Comparison is exact decimal comparison.
func ClassifyPayments(paid, total decimal.Decimal) SummaryState {
	switch {
	case paid.IsZero():
		return SummaryStatePending
	case paid.LessThan(total):
		return SummaryStatePartial
	default:
		return SummaryStateCompleted
	}
}

type PaymentSummary struct {
	BookingID int64
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Remaining decimal.Decimal
	State     SummaryState
	Payments  []Payment
}
