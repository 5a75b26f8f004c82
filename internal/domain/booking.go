package domain

import (
	"strings"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusOnHold    BookingStatus = "ON_HOLD"
	BookingStatusRefunded  BookingStatus = "REFUNDED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
	BookingStatusSettled   BookingStatus = "SETTLED"
	BookingStatusPaid      BookingStatus = "PAID"
)

// bookingStatuses is the closed set of persistable statuses. Status updates
// check membership only; no transition graph is enforced.
var bookingStatuses = map[BookingStatus]struct{}{
	BookingStatusPending:   {},
	BookingStatusConfirmed: {},
	BookingStatusCancelled: {},
	BookingStatusRejected:  {},
	BookingStatusOnHold:    {},
	BookingStatusRefunded:  {},
	BookingStatusNoShow:    {},
	BookingStatusSettled:   {},
	BookingStatusPaid:      {},
}

// ParseBookingStatus maps a caller-supplied string onto the enumerated
// status set. It is the only gate through which status values enter the
// system.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := bookingStatuses[status]; !ok {
		return "", &ValidationError{Field: "status", Reason: "invalid booking status: " + s}
	}
	return status, nil
}

type Booking struct {
	ID       int64
	UserID   int64
	TravelID int64
	Status   BookingStatus

	// Travel and User are populated by joined reads, nil otherwise.
	Travel *Travel
	User   *User
}
