package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"jam/config"
	otelMocks "jam/infras/otel/mocks"
	resMocks "jam/internal/domains/reservation/mocks"
	resModel "jam/internal/domains/reservation/model"
	roomMocks "jam/internal/domains/room/mocks"
	"jam/internal/domains/stats/service"
	gDto "jam/shared/dto"
	"jam/shared/timezone"
)

func TestStatsService_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockOtel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Booking.RecentLimit = 5

	svc := service.New(mockResRepo, mockRoomRepo, cfg, mockOtel)

	now := timezone.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	reservations := []resModel.Reservation{
		{
			// Started at midnight today: counts for today and for both
			// revenue windows.
			ID:          "res-today",
			Status:      resModel.StatusConfirmed,
			StartTime:   startOfDay,
			EndTime:     startOfDay.Add(2 * time.Hour),
			TotalAmount: decimal.RequireFromString("200.00"),
		},
		{
			// Started two days ago: weekly and monthly revenue.
			ID:          "res-week",
			Status:      resModel.StatusConfirmed,
			StartTime:   now.AddDate(0, 0, -2),
			EndTime:     now.AddDate(0, 0, -2).Add(3 * time.Hour),
			TotalAmount: decimal.RequireFromString("300.50"),
		},
		{
			// Started three weeks ago: monthly revenue only.
			ID:          "res-month",
			Status:      resModel.StatusConfirmed,
			StartTime:   now.AddDate(0, 0, -21),
			EndTime:     now.AddDate(0, 0, -21).Add(time.Hour),
			TotalAmount: decimal.RequireFromString("125.25"),
		},
		{
			// Cancelled: counted in the total, excluded everywhere else.
			ID:          "res-cancelled",
			Status:      resModel.StatusCancelled,
			StartTime:   now.AddDate(0, 0, -1),
			EndTime:     now.AddDate(0, 0, -1).Add(time.Hour),
			TotalAmount: decimal.RequireFromString("999.99"),
		},
	}

	mockRoomRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(4, nil)

	mockRoomRepo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		Return(3, nil)

	mockResRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(reservations, nil)

	res, err := svc.Summary(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 4, res.TotalRooms)
	assert.Equal(t, 3, res.ActiveRooms)
	assert.Equal(t, 4, res.TotalReservations)
	assert.Equal(t, 1, res.TodayReservations)
	assert.Equal(t, "500.50", res.WeeklyRevenue)
	assert.Equal(t, "625.75", res.MonthlyRevenue)
}

func TestStatsService_Summary_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockOtel := otelMocks.NewOtel()

	svc := service.New(mockResRepo, mockRoomRepo, &config.Config{}, mockOtel)

	tests := []struct {
		name      string
		setupMock func()
	}{
		{
			name: "room count fails",
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("database error"))
			},
		},
		{
			name: "reservation scan fails",
			setupMock: func() {
				mockRoomRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil).
					Times(2)

				mockResRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("database error"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			_, err := svc.Summary(context.Background())

			assert.Error(t, err)
		})
	}
}

func TestStatsService_Recent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockResRepo := resMocks.NewMockReservation(ctrl)
	mockRoomRepo := roomMocks.NewMockRoom(ctrl)
	mockOtel := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Booking.RecentLimit = 5

	svc := service.New(mockResRepo, mockRoomRepo, cfg, mockOtel)

	now := timezone.Now()

	mockResRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]resModel.Reservation, error) {
			assert.Equal(t, 5, params.Limit)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []resModel.Reservation{
				{
					ID:          "res-1",
					RoomID:      "room-1",
					RoomName:    "Studio A",
					StartTime:   now.Add(24 * time.Hour),
					EndTime:     now.Add(26 * time.Hour),
					TotalAmount: decimal.RequireFromString("170.30"),
					Status:      resModel.StatusConfirmed,
				},
			}, nil
		})

	res, err := svc.Recent(context.Background())

	assert.NoError(t, err)
	assert.Len(t, res.Reservations, 1)
	assert.Equal(t, "Studio A", res.Reservations[0].RoomName)
	assert.Equal(t, "170.30", res.Reservations[0].TotalAmount)
}
