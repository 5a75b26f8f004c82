package email

import (
	"context"
	"fmt"

	"github.com/dvelez-dev/travelbook/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.PaymentEvent) error {
	fmt.Printf("send receipt %s for %s of %s on booking %d\n", event.Receipt, event.Type, event.Amount, event.BookingID)
	return nil
}
