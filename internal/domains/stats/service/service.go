package service

import (
	"context"
	"fmt"
	"time"

	"jam/config"
	"jam/infras/otel"
	resModel "jam/internal/domains/reservation/model"
	resRepo "jam/internal/domains/reservation/repository"
	roomModel "jam/internal/domains/room/model"
	roomRepo "jam/internal/domains/room/repository"
	"jam/internal/domains/stats/model/dto"
	"jam/shared/constant"
	gDto "jam/shared/dto"
	"jam/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Stats aggregates over the live tables at call time. Nothing here is cached
// and no running counters are kept; a failed read fails the whole call rather
// than returning partial zeroes.
type Stats interface {
	Summary(ctx context.Context) (dto.SummaryResponse, error)
	Recent(ctx context.Context) (dto.RecentReservationsResponse, error)
}

type serviceImpl struct {
	reservations resRepo.Reservation
	rooms        roomRepo.Room
	cfg          *config.Config
	otel         otel.Otel
}

func New(reservations resRepo.Reservation, rooms roomRepo.Room, cfg *config.Config, otel otel.Otel) Stats {
	return &serviceImpl{
		reservations: reservations,
		rooms:        rooms,
		cfg:          cfg,
		otel:         otel,
	}
}

func (s *serviceImpl) Summary(ctx context.Context) (res dto.SummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	totalRooms, err := s.rooms.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	activeRooms, err := s.rooms.Count(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    roomModel.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    roomModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count active rooms")

		return res, fmt.Errorf("failed to count active rooms: %w", err)
	}

	reservations, err := s.reservations.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to scan reservations")

		return res, fmt.Errorf("failed to scan reservations: %w", err)
	}

	now := timezone.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	weekly := decimal.Zero
	monthly := decimal.Zero
	todayCount := 0

	for _, reservation := range reservations {
		if reservation.Status != resModel.StatusConfirmed {
			continue
		}

		start := reservation.StartTime

		if !start.Before(startOfDay) && start.Before(endOfDay) {
			todayCount++
		}

		if !start.Before(weekAgo) && start.Before(now) {
			weekly = weekly.Add(reservation.TotalAmount)
		}

		if !start.Before(monthAgo) && start.Before(now) {
			monthly = monthly.Add(reservation.TotalAmount)
		}
	}

	res = dto.SummaryResponse{
		TotalRooms:        totalRooms,
		ActiveRooms:       activeRooms,
		TotalReservations: len(reservations),
		TodayReservations: todayCount,
		WeeklyRevenue:     weekly.StringFixed(2),
		MonthlyRevenue:    monthly.StringFixed(2),
	}

	return res, nil
}

func (s *serviceImpl) Recent(ctx context.Context) (res dto.RecentReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Recent")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		Limit:   s.cfg.Booking.RecentLimit,
		SortBy:  resModel.TableName + "." + resModel.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    resModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    resModel.StatusConfirmed,
				Table:    resModel.TableName,
			},
		},
	}

	reservations, err := s.reservations.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get recent reservations")

		return res, fmt.Errorf("failed to get recent reservations: %w", err)
	}

	res.FromModels(reservations, timezone.Now())

	return res, nil
}
