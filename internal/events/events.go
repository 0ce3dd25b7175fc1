package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"
	"time"

	"jam/config"
	"jam/infras/kafka"
	"jam/infras/otel"
	"jam/internal/domains/reservation/model"
	"jam/shared/constant"
	"jam/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	TypeReservationBooked    = "reservation.booked"
	TypeReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is the payload published for every reservation lifecycle
// change. Amounts travel as fixed two-decimal strings.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	RoomID        string    `json:"room_id"`
	OwnerID       string    `json:"owner_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	TotalAmount   string    `json:"total_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewReservationEvent(eventType string, reservation model.Reservation) ReservationEvent {
	return ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		RoomID:        reservation.RoomID,
		OwnerID:       reservation.OwnerID,
		StartTime:     reservation.StartTime,
		EndTime:       reservation.EndTime,
		TotalAmount:   reservation.TotalAmount.StringFixed(2),
		OccurredAt:    timezone.Now(),
	}
}

type Publisher interface {
	ReservationBooked(ctx context.Context, reservation model.Reservation) error
	ReservationCancelled(ctx context.Context, reservation model.Reservation) error
}

type kafkaPublisher struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &kafkaPublisher{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *kafkaPublisher) ReservationBooked(ctx context.Context, reservation model.Reservation) error {
	return p.publish(ctx, TypeReservationBooked, reservation)
}

func (p *kafkaPublisher) ReservationCancelled(ctx context.Context, reservation model.Reservation) error {
	return p.publish(ctx, TypeReservationCancelled, reservation)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, reservation model.Reservation) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"event.type":     eventType,
		"reservation.id": reservation.ID,
	})

	// Keyed by room so per-room ordering survives partitioning.
	message := kafka.Message{
		Key:   reservation.RoomID,
		Value: NewReservationEvent(eventType, reservation),
	}

	if err = p.client.SendMessages(ctx, p.cfg.Kafka.Topic.Reservations, message); err != nil {
		log.Error().Err(err).Str("type", eventType).Str("reservation_id", reservation.ID).Msg("failed to publish reservation event")

		return err
	}

	return nil
}
