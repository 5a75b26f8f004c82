package repository

import (
	"context"
	"errors"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/jackc/pgx/v5"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	CountUnsettled(ctx context.Context) (int64, error)
}

const bookingSelect = `SELECT b.id, b.user_id, b.travel_id, b.status,
		t.id, t.destination, t.departure_date, t.return_date, t.price, t.itinerary,
		u.id, u.username, u.role, u.name, u.surname, u.email
	FROM bookings b
	JOIN travels t ON t.id = b.travel_id
	JOIN users u ON u.id = b.user_id`

type PGBookingRepository struct {
	db Querier
}

func NewBookingRepository(db Querier) BookingRepository {
	return &PGBookingRepository{db: db}
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b domain.Booking
		t domain.Travel
		u domain.User
	)
	if err := row.Scan(&b.ID, &b.UserID, &b.TravelID, &b.Status,
		&t.ID, &t.Destination, &t.DepartureDate, &t.ReturnDate, &t.Price, &t.Itinerary,
		&u.ID, &u.Username, &u.Role, &u.Name, &u.Surname, &u.Email); err != nil {
		return nil, err
	}
	b.Travel = &t
	b.User = &u
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.db.QueryRow(ctx, `INSERT INTO bookings (user_id, travel_id, status)
		VALUES ($1, $2, $3)
		RETURNING id`,
		booking.UserID, booking.TravelID, booking.Status).
		Scan(&booking.ID)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, bookingSelect+` WHERE b.id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "booking", ID: id}
		}
		return nil, err
	}
	return b, nil
}

func (r *PGBookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return r.queryBookings(ctx, bookingSelect+` ORDER BY b.id`)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return r.queryBookings(ctx, bookingSelect+` WHERE b.user_id=$1 ORDER BY b.id`, userID)
}

func (r *PGBookingRepository) queryBookings(ctx context.Context, sql string, args ...any) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status=$1 WHERE id=$2`, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, &domain.NotFoundError{Entity: "booking", ID: id}
	}
	return r.GetByID(ctx, id)
}

func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "booking", ID: id}
	}
	return nil
}

func (r *PGBookingRepository) CountUnsettled(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM bookings WHERE status <> $1`, domain.BookingStatusSettled).Scan(&count)
	return count, err
}

var _ BookingRepository = (*PGBookingRepository)(nil)
