package travels

import (
	"context"
	"strings"
	"time"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/dvelez-dev/travelbook/internal/repository"
	"github.com/shopspring/decimal"
)

type TravelUseCase interface {
	Create(ctx context.Context, input TravelInput) (*domain.Travel, error)
	List(ctx context.Context) ([]domain.Travel, error)
	GetByID(ctx context.Context, id int64) (*domain.Travel, error)
	Update(ctx context.Context, id int64, input TravelInput) (*domain.Travel, error)
	Delete(ctx context.Context, id int64) error
	Filter(ctx context.Context, filter Filter) ([]domain.Travel, error)
}

// Cache holds the catalog list; writes go through Invalidate so stale lists
// never outlive a catalog change by more than the read that raced it.
type Cache interface {
	GetTravels(ctx context.Context) ([]domain.Travel, error)
	SetTravels(ctx context.Context, travels []domain.Travel) error
	InvalidateTravels(ctx context.Context) error
}

type TravelInput struct {
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Price         decimal.Decimal
	Itinerary     string
}

type Filter struct {
	Destination    string
	DepartureAfter *time.Time
	ReturnBefore   *time.Time
}

type TravelService struct {
	repo  repository.TravelRepository
	cache Cache
}

func NewTravelService(repo repository.TravelRepository, cache Cache) *TravelService {
	return &TravelService{repo: repo, cache: cache}
}

func (s *TravelService) Create(ctx context.Context, input TravelInput) (*domain.Travel, error) {
	if err := validateTravel(input); err != nil {
		return nil, err
	}

	travel := &domain.Travel{
		Destination:   input.Destination,
		DepartureDate: input.DepartureDate,
		ReturnDate:    input.ReturnDate,
		Price:         input.Price,
		Itinerary:     input.Itinerary,
	}
	if err := s.repo.Create(ctx, travel); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return travel, nil
}

func (s *TravelService) List(ctx context.Context) ([]domain.Travel, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTravels(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	travels, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTravels(ctx, travels)
	}
	return travels, nil
}

func (s *TravelService) GetByID(ctx context.Context, id int64) (*domain.Travel, error) {
	return s.repo.GetByID(ctx, id)
}

// Update replaces every mutable field of the offer.
func (s *TravelService) Update(ctx context.Context, id int64, input TravelInput) (*domain.Travel, error) {
	if err := validateTravel(input); err != nil {
		return nil, err
	}

	travel, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	travel.Destination = input.Destination
	travel.DepartureDate = input.DepartureDate
	travel.ReturnDate = input.ReturnDate
	travel.Price = input.Price
	travel.Itinerary = input.Itinerary

	if err := s.repo.Update(ctx, travel); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return travel, nil
}

func (s *TravelService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Filter applies all supplied predicates with AND semantics; date bounds are
// inclusive.
func (s *TravelService) Filter(ctx context.Context, filter Filter) ([]domain.Travel, error) {
	travels, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Travel, 0, len(travels))
	for _, t := range travels {
		if filter.Destination != "" && !strings.Contains(strings.ToLower(t.Destination), strings.ToLower(filter.Destination)) {
			continue
		}
		if filter.DepartureAfter != nil && t.DepartureDate.Before(*filter.DepartureAfter) {
			continue
		}
		if filter.ReturnBefore != nil && t.ReturnDate.After(*filter.ReturnBefore) {
			continue
		}
		matched = append(matched, t)
	}
	return matched, nil
}

func validateTravel(input TravelInput) error {
	if strings.TrimSpace(input.Destination) == "" {
		return &domain.ValidationError{Field: "destination", Reason: "destination is required"}
	}
	if input.Price.IsNegative() {
		return &domain.ValidationError{Field: "price", Reason: "price must not be negative"}
	}
	return nil
}

func (s *TravelService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateTravels(ctx)
	}
}

var _ TravelUseCase = (*TravelService)(nil)
