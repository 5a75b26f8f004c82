package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Travel struct {
	ID            int64
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Price         decimal.Decimal
	Itinerary     string
}
