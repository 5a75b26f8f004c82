package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/dvelez-dev/travelbook/internal/service/travels"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type TravelHandler struct {
	service travels.TravelUseCase
}

type travelRequest struct {
	Destination   string          `json:"destination"`
	DepartureDate string          `json:"departure_date"`
	ReturnDate    string          `json:"return_date"`
	Price         decimal.Decimal `json:"price"`
	Itinerary     string          `json:"itinerary"`
}

type travelResponse struct {
	ID            int64           `json:"id"`
	Destination   string          `json:"destination"`
	DepartureDate string          `json:"departure_date"`
	ReturnDate    string          `json:"return_date"`
	Price         decimal.Decimal `json:"price"`
	Itinerary     string          `json:"itinerary,omitempty"`
}

func NewTravelHandler(service travels.TravelUseCase) *TravelHandler {
	return &TravelHandler{service: service}
}

func (h *TravelHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/filter", h.filter)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

const dateLayout = "2006-01-02"

func (r travelRequest) toInput() (travels.TravelInput, error) {
	departure, err := time.Parse(dateLayout, r.DepartureDate)
	if err != nil {
		return travels.TravelInput{}, &domain.ValidationError{Field: "departure_date", Reason: "invalid departure date"}
	}
	ret, err := time.Parse(dateLayout, r.ReturnDate)
	if err != nil {
		return travels.TravelInput{}, &domain.ValidationError{Field: "return_date", Reason: "invalid return date"}
	}
	return travels.TravelInput{
		Destination:   r.Destination,
		DepartureDate: departure,
		ReturnDate:    ret,
		Price:         r.Price,
		Itinerary:     r.Itinerary,
	}, nil
}

func toTravelResponse(t *domain.Travel) travelResponse {
	return travelResponse{
		ID:            t.ID,
		Destination:   t.Destination,
		DepartureDate: t.DepartureDate.Format(dateLayout),
		ReturnDate:    t.ReturnDate.Format(dateLayout),
		Price:         t.Price,
		Itinerary:     t.Itinerary,
	}
}

func toTravelResponses(ts []domain.Travel) []travelResponse {
	out := make([]travelResponse, 0, len(ts))
	for i := range ts {
		out = append(out, toTravelResponse(&ts[i]))
	}
	return out
}

func (h *TravelHandler) create(c *gin.Context) {
	var req travelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(c, err)
		return
	}

	travel, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTravelResponse(travel))
}

func (h *TravelHandler) list(c *gin.Context) {
	travels, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponses(travels))
}

func (h *TravelHandler) filter(c *gin.Context) {
	filter := travels.Filter{Destination: c.Query("destination")}

	if v := c.Query("departure_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid departure_date"})
			return
		}
		filter.DepartureAfter = &t
	}
	if v := c.Query("return_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid return_date"})
			return
		}
		filter.ReturnBefore = &t
	}

	matched, err := h.service.Filter(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponses(matched))
}

func (h *TravelHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	travel, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponse(travel))
}

func (h *TravelHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req travelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	input, err := req.toInput()
	if err != nil {
		writeError(c, err)
		return
	}

	travel, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponse(travel))
}

func (h *TravelHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
