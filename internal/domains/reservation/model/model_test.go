package model_test

import (
	"testing"
	"time"

	"jam/internal/domains/reservation/model"

	"github.com/stretchr/testify/assert"
)

func TestReservation_DerivedStatus(t *testing.T) {
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	tests := []struct {
		name   string
		status string
		now    time.Time
		want   string
	}{
		{
			name:   "confirmed before end stays confirmed",
			status: model.StatusConfirmed,
			now:    end.Add(-time.Minute),
			want:   model.StatusConfirmed,
		},
		{
			name:   "confirmed at end reads completed",
			status: model.StatusConfirmed,
			now:    end,
			want:   model.StatusCompleted,
		},
		{
			name:   "confirmed after end reads completed",
			status: model.StatusConfirmed,
			now:    end.Add(time.Hour),
			want:   model.StatusCompleted,
		},
		{
			name:   "cancelled never reads completed",
			status: model.StatusCancelled,
			now:    end.Add(time.Hour),
			want:   model.StatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := model.Reservation{Status: tt.status, StartTime: start, EndTime: end}
			assert.Equal(t, tt.want, r.DerivedStatus(tt.now))
		})
	}
}

func TestReservation_CancellableAt(t *testing.T) {
	start := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	deadline := 2 * time.Hour

	tests := []struct {
		name   string
		status string
		now    time.Time
		want   bool
	}{
		{
			name:   "well before deadline",
			status: model.StatusConfirmed,
			now:    start.Add(-24 * time.Hour),
			want:   true,
		},
		{
			name:   "exactly at deadline is still cancellable",
			status: model.StatusConfirmed,
			now:    start.Add(-deadline),
			want:   true,
		},
		{
			name:   "one second past deadline",
			status: model.StatusConfirmed,
			now:    start.Add(-deadline).Add(time.Second),
			want:   false,
		},
		{
			name:   "after start",
			status: model.StatusConfirmed,
			now:    start.Add(time.Minute),
			want:   false,
		},
		{
			name:   "already cancelled",
			status: model.StatusCancelled,
			now:    start.Add(-24 * time.Hour),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := model.Reservation{Status: tt.status, StartTime: start, EndTime: start.Add(time.Hour)}
			assert.Equal(t, tt.want, r.CancellableAt(tt.now, deadline))
		})
	}
}
