package dto

import (
	"fmt"
	"time"

	"jam/internal/domains/reservation/model"
	"jam/shared"
	"jam/shared/constant"
	gDto "jam/shared/dto"
	"jam/shared/failure"
	gModel "jam/shared/model"
	"jam/shared/timezone"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateReservationRequest struct {
	RoomID        string `json:"room_id"        validate:"required,uuid"`
	StartTime     string `json:"start_time"     validate:"required"`
	DurationHours int    `json:"duration_hours" validate:"required,min=1"`
}

// Interval parses the requested start and derives the half-open interval the
// reservation would occupy.
func (c *CreateReservationRequest) Interval() (model.Interval, error) {
	start, err := time.Parse(constant.DateFormat, c.StartTime)
	if err != nil {
		return model.Interval{}, failure.BadRequestFromString(fmt.Sprintf("invalid start_time, expected RFC3339: %v", err)) //nolint:wrapcheck
	}

	return model.Interval{
		Start: start,
		End:   start.Add(time.Duration(c.DurationHours) * time.Hour),
	}, nil
}

func (c *CreateReservationRequest) ToModel(owner string, interval model.Interval, hourlyRate decimal.Decimal) model.Reservation {
	return model.Reservation{
		ID:          uuid.NewString(),
		RoomID:      c.RoomID,
		OwnerID:     owner,
		StartTime:   interval.Start,
		EndTime:     interval.End,
		TotalAmount: hourlyRate.Mul(decimal.NewFromInt(int64(c.DurationHours))),
		Status:      model.StatusConfirmed,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  owner,
			ModifiedBy: owner,
		},
	}
}

type AvailabilityRequest struct {
	RoomID        string `json:"room_id"        validate:"required,uuid"`
	StartTime     string `json:"start_time"     validate:"required"`
	DurationHours int    `json:"duration_hours" validate:"required,min=1"`
}

func (a *AvailabilityRequest) Interval() (model.Interval, error) {
	req := CreateReservationRequest{StartTime: a.StartTime, DurationHours: a.DurationHours}

	return req.Interval()
}

type AvailabilityResponse struct {
	RoomID    string           `json:"room_id"`
	Available bool             `json:"available"`
	Conflicts []model.Interval `json:"conflicts"`
}

func (a *AvailabilityResponse) FromConflicts(roomID string, conflicts []model.Reservation) {
	a.RoomID = roomID
	a.Available = len(conflicts) == 0
	a.Conflicts = make([]model.Interval, len(conflicts))

	for i, conflict := range conflicts {
		a.Conflicts[i] = conflict.Interval()
	}
}

type ReservationResponse struct {
	ID          string `json:"id"`
	RoomID      string `json:"room_id"`
	RoomName    string `json:"room_name,omitempty"`
	OwnerID     string `json:"owner_id"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	TotalAmount string `json:"total_amount"`
	Status      string `json:"status"`
	gDto.Metadata
}

// FromModel renders a reservation as of the given time so that finished
// confirmed reservations read as completed.
func (r *ReservationResponse) FromModel(mod model.Reservation, now time.Time) {
	r.ID = mod.ID
	r.RoomID = mod.RoomID
	r.RoomName = mod.RoomName
	r.OwnerID = mod.OwnerID
	r.StartTime = timezone.Format(mod.StartTime, constant.DateFormat)
	r.EndTime = timezone.Format(mod.EndTime, constant.DateFormat)
	r.TotalAmount = mod.TotalAmount.StringFixed(2)
	r.Status = mod.DerivedStatus(now)
	r.Metadata.FromModel(mod.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int, now time.Time) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod, now)
	}
}
