package email

import (
	"context"

	"go.uber.org/zap"

	"github.com/anurakx/villadesk/internal/kafka"
)

// Sender delivers guest notifications for booking events. The current
// implementation logs the outgoing message; SMTP wiring plugs in here.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	if event.GuestEmail == "" {
		s.logger.Debug("skipping notification without guest email",
			zap.String("type", event.Type),
			zap.String("bookingId", event.BookingID))
		return nil
	}

	s.logger.Info("sending booking notification",
		zap.String("to", event.GuestEmail),
		zap.String("type", event.Type),
		zap.String("room", event.RoomNumber),
		zap.String("checkIn", event.CheckIn),
		zap.String("checkOut", event.CheckOut))
	return nil
}
