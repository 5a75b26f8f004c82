package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/dvelez-dev/travelbook/internal/service/payments"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	service payments.PaymentUseCase
}

type submitPaymentRequest struct {
	BookingID int64           `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"payment_method"`
}

type paymentResponse struct {
	ID          int64           `json:"id"`
	BookingID   int64           `json:"booking_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate string          `json:"payment_date"`
	Method      string          `json:"payment_method"`
	Receipt     string          `json:"receipt"`
}

type paymentSummaryResponse struct {
	BookingID int64             `json:"booking_id"`
	Total     decimal.Decimal   `json:"total_amount"`
	Paid      decimal.Decimal   `json:"paid_amount"`
	Remaining decimal.Decimal   `json:"remaining_amount"`
	Status    string            `json:"payment_status"`
	Payments  []paymentResponse `json:"payments"`
}

func NewPaymentHandler(service payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.submit)
	router.GET("", h.list)
	router.GET("/filter", h.filter)
	router.GET("/booking/:bookingId", h.listByBooking)
	router.GET("/booking/:bookingId/summary", h.summary)
	router.GET("/user/:userId", h.listByUser)
	router.GET("/:paymentId", h.get)
	router.DELETE("/:paymentId", h.cancel)
}

func toPaymentResponse(p *domain.Payment) paymentResponse {
	return paymentResponse{
		ID:          p.ID,
		BookingID:   p.BookingID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate.Format(dateLayout),
		Method:      p.Method,
		Receipt:     p.Receipt,
	}
}

func toPaymentResponses(ps []domain.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(ps))
	for i := range ps {
		out = append(out, toPaymentResponse(&ps[i]))
	}
	return out
}

func (h *PaymentHandler) submit(c *gin.Context) {
	var req submitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.service.Submit(c.Request.Context(), payments.SubmitPaymentInput{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Method:    req.Method,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

func (h *PaymentHandler) list(c *gin.Context) {
	payments, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) filter(c *gin.Context) {
	filter := payments.Filter{
		UserEmail: c.Query("userEmail"),
		Method:    c.Query("paymentMethod"),
	}

	if v := c.Query("minAmount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minAmount"})
			return
		}
		filter.MinAmount = &amount
	}
	if v := c.Query("maxAmount"); v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxAmount"})
			return
		}
		filter.MaxAmount = &amount
	}
	if v := c.Query("dateFrom"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateFrom"})
			return
		}
		filter.DateFrom = &t
	}
	if v := c.Query("dateTo"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid dateTo"})
			return
		}
		filter.DateTo = &t
	}

	matched, err := h.service.Filter(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(matched))
}

func (h *PaymentHandler) listByBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	payments, err := h.service.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) summary(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("bookingId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}
	summary, err := h.service.Summary(c.Request.Context(), bookingID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, paymentSummaryResponse{
		BookingID: summary.BookingID,
		Total:     summary.Total,
		Paid:      summary.Paid,
		Remaining: summary.Remaining,
		Status:    string(summary.State),
		Payments:  toPaymentResponses(summary.Payments),
	})
}

func (h *PaymentHandler) listByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	payments, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(payments))
}

func (h *PaymentHandler) get(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("paymentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}
	payment, err := h.service.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func (h *PaymentHandler) cancel(c *gin.Context) {
	paymentID, err := strconv.ParseInt(c.Param("paymentId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment id"})
		return
	}
	if err := h.service.Cancel(c.Request.Context(), paymentID); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
