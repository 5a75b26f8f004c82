package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/dvelez-dev/travelbook/internal/service/travels"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTravelUseCase is a mock implementation of travels.TravelUseCase
type MockTravelUseCase struct {
	mock.Mock
}

func (m *MockTravelUseCase) Create(ctx context.Context, input travels.TravelInput) (*domain.Travel, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Travel), args.Error(1)
}

func (m *MockTravelUseCase) List(ctx context.Context) ([]domain.Travel, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Travel), args.Error(1)
}

func (m *MockTravelUseCase) GetByID(ctx context.Context, id int64) (*domain.Travel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Travel), args.Error(1)
}

func (m *MockTravelUseCase) Update(ctx context.Context, id int64, input travels.TravelInput) (*domain.Travel, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Travel), args.Error(1)
}

func (m *MockTravelUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTravelUseCase) Filter(ctx context.Context, filter travels.Filter) ([]domain.Travel, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Travel), args.Error(1)
}

func TestTravelHandler_create(t *testing.T) {
	mockService := &MockTravelUseCase{}
	handler := NewTravelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(travelRequest{
		Destination:   "Cartagena",
		DepartureDate: "2024-03-15",
		ReturnDate:    "2024-03-22",
		Price:         decimal.RequireFromString("1000.00"),
	})
	c.Request = httptest.NewRequest("POST", "/travels", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.Travel{
		ID:            1,
		Destination:   "Cartagena",
		DepartureDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		ReturnDate:    time.Date(2024, 3, 22, 0, 0, 0, 0, time.UTC),
		Price:         decimal.RequireFromString("1000.00"),
	}
	mockService.On("Create", c.Request.Context(), mock.MatchedBy(func(in travels.TravelInput) bool {
		return in.Destination == "Cartagena" && in.Price.Equal(decimal.RequireFromString("1000.00"))
	})).Return(created, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp travelResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "2024-03-15", resp.DepartureDate)
	mockService.AssertExpectations(t)
}

func TestTravelHandler_create_badDate(t *testing.T) {
	handler := NewTravelHandler(&MockTravelUseCase{})

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(travelRequest{
		Destination:   "Cartagena",
		DepartureDate: "15/03/2024",
		ReturnDate:    "2024-03-22",
		Price:         decimal.RequireFromString("1000.00"),
	})
	c.Request = httptest.NewRequest("POST", "/travels", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTravelHandler_get_notFound(t *testing.T) {
	mockService := &MockTravelUseCase{}
	handler := NewTravelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/travels/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	mockService.On("GetByID", c.Request.Context(), int64(42)).Return(nil, &domain.NotFoundError{Entity: "travel", ID: 42})

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTravelHandler_list(t *testing.T) {
	mockService := &MockTravelUseCase{}
	handler := NewTravelHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/travels", nil)

	mockService.On("List", c.Request.Context()).Return([]domain.Travel{
		{ID: 1, Destination: "Cartagena", Price: decimal.RequireFromString("1000.00")},
		{ID: 2, Destination: "Medellín", Price: decimal.RequireFromString("750.00")},
	}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []travelResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
