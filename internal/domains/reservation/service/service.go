package service

import (
	"context"
	"fmt"
	"time"

	"jam/config"
	"jam/infras/otel"
	"jam/internal/domains/reservation/model"
	"jam/internal/domains/reservation/model/dto"
	"jam/internal/domains/reservation/repository"
	roomModel "jam/internal/domains/room/model"
	roomRepo "jam/internal/domains/room/repository"
	"jam/internal/events"
	"jam/shared"
	"jam/shared/cache"
	"jam/shared/constant"
	gDto "jam/shared/dto"
	"jam/shared/failure"
	"jam/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// Single reservation reads are never cached: the derived status depends on
// the clock, and a stale status would leak through a cache TTL.
const (
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"
)

type Reservation interface {
	Book(ctx context.Context, req dto.CreateReservationRequest) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id string) (dto.ReservationResponse, error)
	CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.AvailabilityResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	roomRepo  roomRepo.Room
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher events.Publisher
}

func New(repo repository.Reservation, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, publisher events.Publisher) Reservation {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

// Book creates a confirmed reservation. The conflict check and the insert run
// in one transaction under the room's advisory lock, so of N concurrent
// attempts on overlapping intervals exactly one commits and the rest get a
// conflict.
func (s *serviceImpl) Book(ctx context.Context, req dto.CreateReservationRequest) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	owner, _ := ctx.Value(constant.ContextKeyUserID).(string)

	interval, err := req.Interval()
	if err != nil {
		return res, err
	}

	if err = interval.Validate(); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	if req.DurationHours > s.cfg.Booking.MaxDurationHours {
		return res, failure.BadRequestFromString(fmt.Sprintf("duration cannot exceed %d hours", s.cfg.Booking.MaxDurationHours)) // nolint:wrapcheck
	}

	now := timezone.Now()
	if interval.Start.Before(now) {
		return res, failure.BadRequestFromString("start_time cannot be in the past") // nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	if !room.Active {
		return res, failure.NotAllowed("room is not accepting reservations") // nolint:wrapcheck
	}

	reservation := req.ToModel(owner, interval, room.HourlyRate)

	err = s.repo.WithRoomLock(ctx, req.RoomID, func(ctx context.Context, tx *sqlx.Tx) error {
		conflicts, err := s.repo.FindConflictsTx(ctx, tx, req.RoomID, interval, constant.Empty)
		if err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return failure.Conflict("room is already reserved for the requested time") // nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, tx, reservation)
	})
	if err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID).Msg("failed to book reservation")

		return res, err
	}

	reservation.RoomName = room.Name

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.ReservationBooked(c, reservation); err != nil {
			log.Error().Err(err).Str("reservation_id", reservation.ID).Msg("failed to publish booked event")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	res.FromModel(reservation, now)

	return res, nil
}

// Cancel moves a confirmed reservation to cancelled. The decision is made on a
// row locked FOR UPDATE under the room lock, so it cannot race with a
// concurrent booking or cancellation. Violations of the lifecycle rules come
// back as policy rejections, never as silent no-ops.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	existing, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if existing.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if existing.OwnerID != user && role != constant.RoleOperator {
		return res, failure.ResourceRestrictedError // nolint:wrapcheck
	}

	deadline := time.Duration(s.cfg.Booking.CancelDeadlineHours) * time.Hour

	var cancelled model.Reservation

	err = s.repo.WithRoomLock(ctx, existing.RoomID, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if current.ID == constant.Empty {
			return failure.NotFound("reservation not found") // nolint:wrapcheck
		}

		now := timezone.Now()

		switch current.DerivedStatus(now) {
		case model.StatusCancelled:
			return failure.NotAllowed("reservation is already cancelled") // nolint:wrapcheck
		case model.StatusCompleted:
			return failure.NotAllowed("reservation has already ended") // nolint:wrapcheck
		}

		if !current.CancellableAt(now, deadline) {
			return failure.NotAllowed(fmt.Sprintf("reservations can only be cancelled at least %d hours before start", s.cfg.Booking.CancelDeadlineHours)) // nolint:wrapcheck
		}

		updatedFields := map[string]any{
			model.FieldStatus:        model.StatusCancelled,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return err
		}

		cancelled = current
		cancelled.Status = model.StatusCancelled
		cancelled.ModifiedAt = now
		cancelled.ModifiedBy = user

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("reservation_id", id).Msg("failed to cancel reservation")

		return res, err
	}

	cancelled.RoomName = existing.RoomName

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.publisher.ReservationCancelled(c, cancelled); err != nil {
			log.Error().Err(err).Str("reservation_id", id).Msg("failed to publish cancelled event")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	res.FromModel(cancelled, timezone.Now())

	return res, nil
}

// CheckAvailability answers the conflict question read-only, outside any lock.
// The answer is advisory; Book re-checks under the lock and is never cached.
func (s *serviceImpl) CheckAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CheckAvailability")
	defer scope.End()
	defer scope.TraceIfError(err)

	interval, err := req.Interval()
	if err != nil {
		return res, err
	}

	if err = interval.Validate(); err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	exist, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	conflicts, err := s.repo.FindConflicts(ctx, req.RoomID, interval, constant.Empty)
	if err != nil {
		log.Error().Err(err).Msg("failed to find conflicting reservations")

		return res, err
	}

	res.FromConflicts(req.RoomID, conflicts)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	res.FromModel(reservation, timezone.Now())

	return res, nil
}
