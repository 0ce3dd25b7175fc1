package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"jam/config"
	"jam/infras/kafka"
	kafkaMocks "jam/infras/kafka/mocks"
	otelMocks "jam/infras/otel/mocks"
	"jam/internal/domains/reservation/model"
	"jam/internal/events"
	"jam/shared/timezone"
)

func TestPublisher_ReservationBooked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := kafkaMocks.NewMockClient(ctrl)
	mockOtel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topic.Reservations = "jam.reservations"

	publisher := events.NewPublisher(mockClient, cfg, mockOtel)

	reservation := model.Reservation{
		ID:          "res-1",
		RoomID:      "room-1",
		OwnerID:     "user-1",
		StartTime:   timezone.Now().Add(24 * time.Hour),
		EndTime:     timezone.Now().Add(26 * time.Hour),
		TotalAmount: decimal.RequireFromString("170.30"),
		Status:      model.StatusConfirmed,
	}

	mockClient.EXPECT().
		SendMessages(gomock.Any(), "jam.reservations", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			assert.Len(t, messages, 1)
			assert.Equal(t, "room-1", messages[0].Key)

			event, ok := messages[0].Value.(events.ReservationEvent)
			assert.True(t, ok)
			assert.Equal(t, events.TypeReservationBooked, event.Type)
			assert.Equal(t, "res-1", event.ReservationID)
			assert.Equal(t, "170.30", event.TotalAmount)

			return nil
		})

	err := publisher.ReservationBooked(context.Background(), reservation)

	assert.NoError(t, err)
}

func TestPublisher_ReservationCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := kafkaMocks.NewMockClient(ctrl)
	mockOtel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topic.Reservations = "jam.reservations"

	publisher := events.NewPublisher(mockClient, cfg, mockOtel)

	reservation := model.Reservation{
		ID:          "res-1",
		RoomID:      "room-1",
		TotalAmount: decimal.RequireFromString("85.15"),
		Status:      model.StatusCancelled,
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful publish",
			setupMock: func() {
				mockClient.EXPECT().
					SendMessages(gomock.Any(), "jam.reservations", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						event, _ := messages[0].Value.(events.ReservationEvent)
						assert.Equal(t, events.TypeReservationCancelled, event.Type)

						return nil
					})
			},
		},
		{
			name: "broker unavailable",
			setupMock: func() {
				mockClient.EXPECT().
					SendMessages(gomock.Any(), "jam.reservations", gomock.Any()).
					Return(errors.New("broker unavailable"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := publisher.ReservationCancelled(context.Background(), reservation)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
