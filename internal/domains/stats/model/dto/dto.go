package dto

import (
	"time"

	resModel "jam/internal/domains/reservation/model"
	resDto "jam/internal/domains/reservation/model/dto"
)

type SummaryResponse struct {
	TotalRooms        int    `json:"total_rooms"`
	ActiveRooms       int    `json:"active_rooms"`
	TotalReservations int    `json:"total_reservations"`
	TodayReservations int    `json:"today_reservations"`
	WeeklyRevenue     string `json:"weekly_revenue"`
	MonthlyRevenue    string `json:"monthly_revenue"`
}

type RecentReservationsResponse struct {
	Reservations []resDto.ReservationResponse `json:"reservations"`
}

func (r *RecentReservationsResponse) FromModels(models []resModel.Reservation, now time.Time) {
	r.Reservations = make([]resDto.ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod, now)
	}
}
