package model

import (
	"time"

	"jam/shared/model"

	"github.com/shopspring/decimal"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID          = "id"
	FieldRoomID      = "room_id"
	FieldOwnerID     = "owner_id"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldTotalAmount = "total_amount"
	FieldStatus      = "status"
	FieldCreatedAt   = "created_at"
)

const (
	// StatusConfirmed is the only status a reservation is created with.
	StatusConfirmed = "confirmed"
	// StatusCancelled is terminal. Cancelled rows stay in the table and are
	// excluded from conflict checks.
	StatusCancelled = "cancelled"
	// StatusCompleted is derived on reads, never persisted.
	StatusCompleted = "completed"
)

type Reservation struct {
	ID          string          `db:"id"`
	RoomID      string          `db:"room_id"`
	OwnerID     string          `db:"owner_id"`
	StartTime   time.Time       `db:"start_time"`
	EndTime     time.Time       `db:"end_time"`
	TotalAmount decimal.Decimal `db:"total_amount"`
	Status      string          `db:"status"`
	RoomName    string          `db:"room_name" table:"rooms" column:"name"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "LEFT JOIN rooms ON rooms.id = reservations.room_id"
}

func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartTime, End: r.EndTime}
}

// DerivedStatus reports the status as observed at the given time. A confirmed
// reservation whose end has passed reads as completed without a write.
func (r *Reservation) DerivedStatus(now time.Time) string {
	if r.Status == StatusConfirmed && !now.Before(r.EndTime) {
		return StatusCompleted
	}

	return r.Status
}

// CancellableAt reports whether the reservation may still be cancelled at the
// given time. A reservation starting in exactly the deadline is still
// cancellable.
func (r *Reservation) CancellableAt(now time.Time, deadline time.Duration) bool {
	return r.Status == StatusConfirmed && r.StartTime.Sub(now) >= deadline
}
