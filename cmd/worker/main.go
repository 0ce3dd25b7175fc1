package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"jam/config"
	"jam/infras/kafka"
	"jam/internal/events"
	"jam/shared/logger"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// The worker consumes reservation lifecycle events and acts on them outside
// the request path. Delivery is at-least-once, so everything done here must
// tolerate replays.
func main() {
	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	client := kafka.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("topic", cfg.Kafka.Topic.Reservations).
		Str("consumer_group", cfg.Kafka.ConsumerGroup).
		Msg("Starting up reservation worker.")

	client.Consume(ctx, cfg.Kafka.ConsumerGroup, cfg.Kafka.Topic.Reservations, handleMessage)
}

func handleMessage(message kafkaGo.Message) {
	decoded, err := kafka.DecodeKafkaMessage[events.ReservationEvent](message)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode reservation event")

		return
	}

	event, ok := decoded.Value.(events.ReservationEvent)
	if !ok {
		log.Error().Msg("unexpected reservation event payload")

		return
	}

	switch event.Type {
	case events.TypeReservationBooked:
		log.Info().
			Str("reservation_id", event.ReservationID).
			Str("room_id", event.RoomID).
			Str("owner_id", event.OwnerID).
			Str("total_amount", event.TotalAmount).
			Msg("reservation booked, sending confirmation")
	case events.TypeReservationCancelled:
		log.Info().
			Str("reservation_id", event.ReservationID).
			Str("room_id", event.RoomID).
			Str("owner_id", event.OwnerID).
			Msg("reservation cancelled, sending notice")
	default:
		log.Warn().Str("type", event.Type).Msg("unknown reservation event type")
	}
}
