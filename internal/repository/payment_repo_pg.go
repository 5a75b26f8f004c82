package repository

import (
	"context"
	"errors"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	SumByBooking(ctx context.Context, bookingID int64) (decimal.Decimal, error)
}

// paymentSelect joins the owning booking and its user so payment reads can
// be filtered by user email without extra round trips.
const paymentSelect = `SELECT p.id, p.booking_id, p.amount, p.payment_date, p.payment_method, p.receipt,
		b.id, b.user_id, b.travel_id, b.status, u.email
	FROM payments p
	JOIN bookings b ON b.id = p.booking_id
	JOIN users u ON u.id = b.user_id`

type PGPaymentRepository struct {
	db Querier
}

func NewPaymentRepository(db Querier) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p domain.Payment
		b domain.Booking
		u domain.User
	)
	if err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.PaymentDate, &p.Method, &p.Receipt,
		&b.ID, &b.UserID, &b.TravelID, &b.Status, &u.Email); err != nil {
		return nil, err
	}
	b.User = &u
	p.Booking = &b
	return &p, nil
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := scanPayment(r.db.QueryRow(ctx, paymentSelect+` WHERE p.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "payment", ID: id}
		}
		return nil, err
	}
	return p, nil
}

func (r *PGPaymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	return r.queryPayments(ctx, paymentSelect+` WHERE p.booking_id=$1 ORDER BY p.payment_date DESC`, bookingID)
}

func (r *PGPaymentRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return r.queryPayments(ctx, paymentSelect+` WHERE b.user_id=$1 ORDER BY p.payment_date DESC`, userID)
}

func (r *PGPaymentRepository) List(ctx context.Context) ([]domain.Payment, error) {
	return r.queryPayments(ctx, paymentSelect+` ORDER BY p.id`)
}

func (r *PGPaymentRepository) queryPayments(ctx context.Context, sql string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *PGPaymentRepository) SumByBooking(ctx context.Context, bookingID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id=$1`, bookingID).Scan(&sum)
	return sum, err
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
