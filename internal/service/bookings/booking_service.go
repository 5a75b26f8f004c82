package bookings

import (
	"context"
	"strings"
	"time"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/dvelez-dev/travelbook/internal/repository"
)

type BookingUseCase interface {
	Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]domain.Booking, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error)
	Filter(ctx context.Context, filter Filter) ([]domain.Booking, error)
}

type CreateBookingInput struct {
	UserID   int64  `json:"user_id"`
	TravelID int64  `json:"travel_id"`
	Status   string `json:"status"`
}

type Filter struct {
	Status      string
	UserEmail   string
	Destination string
	DateFrom    *time.Time
	DateTo      *time.Time
}

type BookingService struct {
	bookings repository.BookingRepository
	users    repository.UserRepository
	travels  repository.TravelRepository
}

func NewBookingService(
	bookings repository.BookingRepository,
	users repository.UserRepository,
	travels repository.TravelRepository,
) *BookingService {
	return &BookingService{bookings: bookings, users: users, travels: travels}
}

// Create records a booking with a caller-supplied initial status, which only
// has to belong to the enumerated set.
func (s *BookingService) Create(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	status, err := domain.ParseBookingStatus(input.Status)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	travel, err := s.travels.GetByID(ctx, input.TravelID)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		UserID:   user.ID,
		TravelID: travel.ID,
		Status:   status,
		User:     user,
		Travel:   travel,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

func (s *BookingService) Delete(ctx context.Context, id int64) error {
	return s.bookings.Delete(ctx, id)
}

func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

// UpdateStatus moves a booking to any status in the enumerated set. No
// transition graph is checked.
func (s *BookingService) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Booking, error) {
	parsed, err := domain.ParseBookingStatus(status)
	if err != nil {
		return nil, err
	}
	return s.bookings.UpdateStatus(ctx, id, parsed)
}

// Filter applies all supplied predicates with AND semantics; an absent
// predicate passes everything through.
func (s *BookingService) Filter(ctx context.Context, filter Filter) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !matchBooking(b, filter) {
			continue
		}
		matched = append(matched, b)
	}
	return matched, nil
}

func matchBooking(b domain.Booking, f Filter) bool {
	if f.Status != "" && !strings.EqualFold(string(b.Status), f.Status) {
		return false
	}
	if f.UserEmail != "" {
		if b.User == nil || !strings.Contains(strings.ToLower(b.User.Email), strings.ToLower(f.UserEmail)) {
			return false
		}
	}
	if f.Destination != "" {
		if b.Travel == nil || !strings.Contains(strings.ToLower(b.Travel.Destination), strings.ToLower(f.Destination)) {
			return false
		}
	}
	if f.DateFrom != nil {
		if b.Travel == nil || b.Travel.DepartureDate.Before(*f.DateFrom) {
			return false
		}
	}
	if f.DateTo != nil {
		if b.Travel == nil || b.Travel.DepartureDate.After(*f.DateTo) {
			return false
		}
	}
	return true
}

var _ BookingUseCase = (*BookingService)(nil)
