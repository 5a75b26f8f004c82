package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingStatus(t *testing.T) {
	valid := []struct {
		input string
		want  BookingStatus
	}{
		{"PENDING", BookingStatusPending},
		{"CONFIRMED", BookingStatusConfirmed},
		{"CANCELLED", BookingStatusCancelled},
		{"REJECTED", BookingStatusRejected},
		{"ON_HOLD", BookingStatusOnHold},
		{"REFUNDED", BookingStatusRefunded},
		{"NO_SHOW", BookingStatusNoShow},
		{"SETTLED", BookingStatusSettled},
		{"PAID", BookingStatusPaid},
		{"pending", BookingStatusPending},
		{" confirmed ", BookingStatusConfirmed},
	}

	for _, tc := range valid {
		status, err := ParseBookingStatus(tc.input)
		assert.NoError(t, err, tc.input)
		assert.Equal(t, tc.want, status)
	}
}

func TestParseBookingStatus_Invalid(t *testing.T) {
	for _, input := range []string{"", "UNKNOWN", "COMPLETED", "PARTIAL", "SETTLED_TWICE"} {
		_, err := ParseBookingStatus(input)
		assert.Error(t, err, input)

		var validation *ValidationError
		assert.ErrorAs(t, err, &validation)
	}
}
