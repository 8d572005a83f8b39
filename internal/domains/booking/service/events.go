package service

import (
	"context"

	"atrium/infras/kafka"
	"atrium/internal/domains/booking/model"
	"atrium/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	EventBookingCreated = "booking.created"
	EventBookingUpdated = "booking.updated"
	EventBookingDeleted = "booking.deleted"
)

// BookingEvent is the payload published to the booking events topic after a
// successful mutation. Consumers (notifications, audit) are outside this
// service.
type BookingEvent struct {
	Type      string `json:"type"`
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	UserID    string `json:"user_id"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

func (s *serviceImpl) publishEvent(ctx context.Context, eventType string, booking model.Booking) {
	topic := s.cfg.Kafka.Topics.BookingEvents
	if topic == "" || s.events == nil {
		return
	}

	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".publishEvent")
	defer scope.End()

	event := BookingEvent{
		Type:      eventType,
		BookingID: booking.ID,
		RoomID:    booking.RoomID,
		UserID:    booking.UserID,
		Title:     booking.Title,
		StartTime: booking.StartTime.Format(constant.TimestampFormat),
		EndTime:   booking.EndTime.Format(constant.TimestampFormat),
		Status:    booking.Status,
	}

	// Best effort: a lost event never fails the mutation.
	if err := s.events.SendMessages(ctx, topic, kafka.Message{Key: booking.ID, Value: event}); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("type", eventType).Str("bookingID", booking.ID).Msg("failed to publish booking event")
	}
}
