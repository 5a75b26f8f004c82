package repository

import (
	"context"
	"errors"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// SettlementTx is the slice of storage a single settlement attempt works
// against. Every method runs inside the same database transaction.
type SettlementTx interface {
	// BookingForUpdate loads the booking with its travel joined and takes an
	// exclusive row lock, serializing settlement per booking. Concurrent
	// submissions and cancellations against the same booking queue on this
	// lock; other bookings are unaffected.
	BookingForUpdate(ctx context.Context, bookingID int64) (*domain.Booking, error)
	PaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error)
	SumPayments(ctx context.Context, bookingID int64) (decimal.Decimal, error)
	InsertPayment(ctx context.Context, payment *domain.Payment) error
	DeletePayment(ctx context.Context, paymentID int64) error
	SetBookingStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error
}

// Store runs a function inside a single all-or-nothing transaction. An error
// from fn rolls everything back.
type Store interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx SettlementTx) error) error
}

type PGStore struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *PGStore {
	return &PGStore{pool: pool}
}

func (s *PGStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx SettlementTx) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &pgSettlementTx{db: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type pgSettlementTx struct {
	db pgx.Tx
}

func (t *pgSettlementTx) BookingForUpdate(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	row := t.db.QueryRow(ctx, `SELECT b.id, b.user_id, b.travel_id, b.status,
			t.id, t.destination, t.departure_date, t.return_date, t.price, t.itinerary
		FROM bookings b
		JOIN travels t ON t.id = b.travel_id
		WHERE b.id=$1
		FOR UPDATE OF b`, bookingID)

	var (
		b  domain.Booking
		tr domain.Travel
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.TravelID, &b.Status,
		&tr.ID, &tr.Destination, &tr.DepartureDate, &tr.ReturnDate, &tr.Price, &tr.Itinerary); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "booking", ID: bookingID}
		}
		return nil, err
	}
	b.Travel = &tr
	return &b, nil
}

func (t *pgSettlementTx) PaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	row := t.db.QueryRow(ctx, `SELECT id, booking_id, amount, payment_date, payment_method, receipt FROM payments WHERE id=$1`, paymentID)
	var p domain.Payment
	if err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentDate, &p.Method, &p.Receipt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "payment", ID: paymentID}
		}
		return nil, err
	}
	return &p, nil
}

func (t *pgSettlementTx) SumPayments(ctx context.Context, bookingID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := t.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id=$1`, bookingID).Scan(&sum)
	return sum, err
}

func (t *pgSettlementTx) InsertPayment(ctx context.Context, payment *domain.Payment) error {
	return t.db.QueryRow(ctx, `INSERT INTO payments (booking_id, amount, payment_date, payment_method, receipt)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		payment.BookingID, payment.Amount, payment.PaymentDate, payment.Method, payment.Receipt).
		Scan(&payment.ID)
}

func (t *pgSettlementTx) DeletePayment(ctx context.Context, paymentID int64) error {
	cmd, err := t.db.Exec(ctx, `DELETE FROM payments WHERE id=$1`, paymentID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "payment", ID: paymentID}
	}
	return nil
}

func (t *pgSettlementTx) SetBookingStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) error {
	cmd, err := t.db.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, status, bookingID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "booking", ID: bookingID}
	}
	return nil
}

var (
	_ Store        = (*PGStore)(nil)
	_ SettlementTx = (*pgSettlementTx)(nil)
)
