package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidCredentials is returned on a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// NotFoundError reports an absent booking, payment, travel or user.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id: %d", e.Entity, e.ID)
}

// ValidationError reports rejected input: a status outside the enumerated
// set, a non-positive amount, a missing required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// BalanceExceededError reports a payment that would push the paid sum over
// the travel price. Remaining and Attempted are carried for the client
// message.
type BalanceExceededError struct {
	Remaining decimal.Decimal
	Attempted decimal.Decimal
}

func (e *BalanceExceededError) Error() string {
	return fmt.Sprintf("payment amount exceeds remaining balance. Remaining: %s, Attempted: %s",
		e.Remaining, e.Attempted)
}

// BookingStateError reports a payment submitted against a booking whose
// status does not accept payments.
type BookingStateError struct {
	BookingID int64
	Status    BookingStatus
}

func (e *BookingStateError) Error() string {
	return fmt.Sprintf("cannot process payment for booking %d with status: %s", e.BookingID, e.Status)
}

// CancellationWindowError reports a cancellation attempted after the
// same-day window closed.
type CancellationWindowError struct {
	PaymentDate time.Time
}

func (e *CancellationWindowError) Error() string {
	return fmt.Sprintf("can only cancel payments made today (payment date: %s)",
		e.PaymentDate.Format("2006-01-02"))
}

// ConflictError reports a uniqueness violation, e.g. a duplicate username.
type ConflictError struct {
	Entity string
}

func (e *ConflictError) Error() string {
	return e.Entity + " already exists or invalid data"
}
