package repository

import (
	"context"
	"errors"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/jackc/pgx/v5"
)

type TravelRepository interface {
	Create(ctx context.Context, travel *domain.Travel) error
	GetByID(ctx context.Context, id int64) (*domain.Travel, error)
	Update(ctx context.Context, travel *domain.Travel) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Travel, error)
}

type PGTravelRepository struct {
	db Querier
}

func NewTravelRepository(db Querier) TravelRepository {
	return &PGTravelRepository{db: db}
}

func (r *PGTravelRepository) Create(ctx context.Context, travel *domain.Travel) error {
	return r.db.QueryRow(ctx, `INSERT INTO travels (destination, departure_date, return_date, price, itinerary)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		travel.Destination, travel.DepartureDate, travel.ReturnDate, travel.Price, travel.Itinerary).
		Scan(&travel.ID)
}

func (r *PGTravelRepository) GetByID(ctx context.Context, id int64) (*domain.Travel, error) {
	row := r.db.QueryRow(ctx, `SELECT id, destination, departure_date, return_date, price, itinerary FROM travels WHERE id=$1`, id)
	var t domain.Travel
	if err := row.Scan(&t.ID, &t.Destination, &t.DepartureDate, &t.ReturnDate, &t.Price, &t.Itinerary); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.NotFoundError{Entity: "travel", ID: id}
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGTravelRepository) Update(ctx context.Context, travel *domain.Travel) error {
	cmd, err := r.db.Exec(ctx, `UPDATE travels SET destination=$1, departure_date=$2, return_date=$3, price=$4, itinerary=$5 WHERE id=$6`,
		travel.Destination, travel.DepartureDate, travel.ReturnDate, travel.Price, travel.Itinerary, travel.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "travel", ID: travel.ID}
	}
	return nil
}

func (r *PGTravelRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM travels WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "travel", ID: id}
	}
	return nil
}

func (r *PGTravelRepository) List(ctx context.Context) ([]domain.Travel, error) {
	rows, err := r.db.Query(ctx, `SELECT id, destination, departure_date, return_date, price, itinerary FROM travels ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var travels []domain.Travel
	for rows.Next() {
		var t domain.Travel
		if err := rows.Scan(&t.ID, &t.Destination, &t.DepartureDate, &t.ReturnDate, &t.Price, &t.Itinerary); err != nil {
			return nil, err
		}
		travels = append(travels, t)
	}
	return travels, rows.Err()
}

var _ TravelRepository = (*PGTravelRepository)(nil)
