package payments

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/dvelez-dev/travelbook/internal/domain"
	"github.com/dvelez-dev/travelbook/internal/kafka"
	"github.com/dvelez-dev/travelbook/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentUseCase interface {
	Submit(ctx context.Context, input SubmitPaymentInput) (*domain.Payment, error)
	Cancel(ctx context.Context, paymentID int64) error
	Summary(ctx context.Context, bookingID int64) (*domain.PaymentSummary, error)
	GetByID(ctx context.Context, paymentID int64) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error)
	List(ctx context.Context) ([]domain.Payment, error)
	Filter(ctx context.Context, filter Filter) ([]domain.Payment, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type SubmitPaymentInput struct {
	BookingID int64           `json:"booking_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"payment_method"`
}

type Filter struct {
	UserEmail string
	Method    string
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	DateFrom  *time.Time
	DateTo    *time.Time
}

type PaymentService struct {
	store         repository.Store
	payments      repository.PaymentRepository
	bookings      repository.BookingRepository
	producer      Producer
	paymentsTopic string
	now           func() time.Time
}

type PaymentServiceOption func(*PaymentService)

// WithClock overrides the service clock; tests use it to pin "today" for the
// same-day cancellation window.
func WithClock(now func() time.Time) PaymentServiceOption {
	return func(s *PaymentService) {
		s.now = now
	}
}

func NewPaymentService(
	store repository.Store,
	payments repository.PaymentRepository,
	bookings repository.BookingRepository,
	producer Producer,
	paymentsTopic string,
	opts ...PaymentServiceOption,
) *PaymentService {
	service := &PaymentService{
		store:         store,
		payments:      payments,
		bookings:      bookings,
		producer:      producer,
		paymentsTopic: paymentsTopic,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Submit records an installment against a booking. The whole
// check-insert-transition sequence runs inside one transaction holding the
// booking's row lock, so two concurrent submissions can never both pass the
// balance check.
func (s *PaymentService) Submit(ctx context.Context, input SubmitPaymentInput) (*domain.Payment, error) {
	if input.Amount.Sign() <= 0 {
		return nil, &domain.ValidationError{Field: "amount", Reason: "payment amount must be positive"}
	}
	if strings.TrimSpace(input.Method) == "" {
		return nil, &domain.ValidationError{Field: "payment_method", Reason: "payment method is required"}
	}

	var (
		payment *domain.Payment
		settled bool
	)
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.SettlementTx) error {
		booking, err := tx.BookingForUpdate(ctx, input.BookingID)
		if err != nil {
			return err
		}

		// Payments are rejected only for CONFIRMED bookings; every other
		// status accepts installments.
		if booking.Status == domain.BookingStatusConfirmed {
			return &domain.BookingStateError{BookingID: booking.ID, Status: booking.Status}
		}

		total := booking.Travel.Price
		paid, err := tx.SumPayments(ctx, booking.ID)
		if err != nil {
			return err
		}

		newTotal := paid.Add(input.Amount)
		if newTotal.GreaterThan(total) {
			return &domain.BalanceExceededError{Remaining: total.Sub(paid), Attempted: input.Amount}
		}

		payment = &domain.Payment{
			BookingID:   booking.ID,
			Amount:      input.Amount,
			PaymentDate: s.now(),
			Method:      input.Method,
			Receipt:     uuid.NewString(),
		}
		if err := tx.InsertPayment(ctx, payment); err != nil {
			return err
		}

		if newTotal.Equal(total) {
			if err := tx.SetBookingStatus(ctx, booking.ID, domain.BookingStatusSettled); err != nil {
				return err
			}
			settled = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventPaymentReceived, payment, settled)
	if settled {
		s.publish(ctx, kafka.EventBookingSettled, payment, settled)
	}
	return payment, nil
}

// Cancel removes a payment made today and reverts the booking to CONFIRMED
// if the removal breaks settlement.
func (s *PaymentService) Cancel(ctx context.Context, paymentID int64) error {
	var cancelled *domain.Payment
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx repository.SettlementTx) error {
		payment, err := tx.PaymentByID(ctx, paymentID)
		if err != nil {
			return err
		}
		if !sameDay(payment.PaymentDate, s.now()) {
			return &domain.CancellationWindowError{PaymentDate: payment.PaymentDate}
		}

		booking, err := tx.BookingForUpdate(ctx, payment.BookingID)
		if err != nil {
			return err
		}

		total := booking.Travel.Price
		currentPaid, err := tx.SumPayments(ctx, booking.ID)
		if err != nil {
			return err
		}
		newPaid := currentPaid.Sub(payment.Amount)

		if currentPaid.Equal(total) && newPaid.LessThan(total) {
			if err := tx.SetBookingStatus(ctx, booking.ID, domain.BookingStatusConfirmed); err != nil {
				return err
			}
		}

		if err := tx.DeletePayment(ctx, payment.ID); err != nil {
			return err
		}
		cancelled = payment
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, kafka.EventPaymentCancelled, cancelled, false)
	return nil
}

// Summary derives the paid/remaining view for a booking. Reads run at the
// pool's default isolation; the paid sum is recomputed from the payment rows,
// never cached.
func (s *PaymentService) Summary(ctx context.Context, bookingID int64) (*domain.PaymentSummary, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	paid, err := s.payments.SumByBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	total := booking.Travel.Price
	return &domain.PaymentSummary{
		BookingID: bookingID,
		Total:     total,
		Paid:      paid,
		Remaining: total.Sub(paid),
		State:     domain.ClassifyPayments(paid, total),
		Payments:  payments,
	}, nil
}

func (s *PaymentService) GetByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, paymentID)
}

func (s *PaymentService) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.payments.ListByBooking(ctx, bookingID)
}

func (s *PaymentService) ListByUser(ctx context.Context, userID int64) ([]domain.Payment, error) {
	return s.payments.ListByUser(ctx, userID)
}

func (s *PaymentService) List(ctx context.Context) ([]domain.Payment, error) {
	return s.payments.List(ctx)
}

// Filter applies all supplied predicates with AND semantics over the full
// payment set; an absent predicate passes everything through.
func (s *PaymentService) Filter(ctx context.Context, filter Filter) ([]domain.Payment, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]domain.Payment, 0, len(payments))
	for _, p := range payments {
		if !matchPayment(p, filter) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func matchPayment(p domain.Payment, f Filter) bool {
	if f.UserEmail != "" {
		if p.Booking == nil || p.Booking.User == nil {
			return false
		}
		if !strings.Contains(strings.ToLower(p.Booking.User.Email), strings.ToLower(f.UserEmail)) {
			return false
		}
	}
	if f.Method != "" && !strings.EqualFold(p.Method, f.Method) {
		return false
	}
	if f.MinAmount != nil && p.Amount.LessThan(*f.MinAmount) {
		return false
	}
	if f.MaxAmount != nil && p.Amount.GreaterThan(*f.MaxAmount) {
		return false
	}
	if f.DateFrom != nil && p.PaymentDate.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && p.PaymentDate.After(*f.DateTo) {
		return false
	}
	return true
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (s *PaymentService) publish(ctx context.Context, eventType string, payment *domain.Payment, settled bool) {
	if s.producer == nil || s.paymentsTopic == "" {
		return
	}
	status := ""
	if settled {
		status = string(domain.BookingStatusSettled)
	}
	event := kafka.PaymentEvent{
		Type:          eventType,
		PaymentID:     payment.ID,
		BookingID:     payment.BookingID,
		Receipt:       payment.Receipt,
		Amount:        payment.Amount.String(),
		Method:        payment.Method,
		BookingStatus: status,
		OccurredAt:    s.now(),
	}
	if err := s.producer.Publish(ctx, s.paymentsTopic, payment.Receipt, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for payment %d: %v", eventType, payment.ID, err)
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
