package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// writeError maps domain error kinds onto HTTP statuses and the error
// envelope clients render.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"

	var (
		notFound     *domain.NotFoundError
		validation   *domain.ValidationError
		balance      *domain.BalanceExceededError
		bookingState *domain.BookingStateError
		window       *domain.CancellationWindowError
		conflict     *domain.ConflictError
	)
	switch {
	case errors.As(err, &notFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.As(err, &validation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.As(err, &balance):
		status, code = http.StatusUnprocessableEntity, "PAYMENT_EXCEEDS_BALANCE"
	case errors.As(err, &bookingState):
		status, code = http.StatusUnprocessableEntity, "INVALID_BOOKING_STATE"
	case errors.As(err, &window):
		status, code = http.StatusUnprocessableEntity, "CANCELLATION_WINDOW_EXPIRED"
	case errors.As(err, &conflict):
		status, code = http.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "UNAUTHORIZED"
	}

	c.JSON(status, errorResponse{
		Status:    status,
		Error:     code,
		Message:   err.Error(),
		Timestamp: time.Now(),
	})
}
