package reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "jam/infras/otel/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// A malformed path id is rejected before the service runs, so it can never
// reach the database as an invalid uuid literal.
func TestHandler_MalformedReservationID(t *testing.T) {
	handler := New(nil, nil, otelMocks.NewOtel())

	tests := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
	}{
		{
			name: "get by id",
			call: handler.GetReservationByID,
		},
		{
			name: "cancel",
			call: handler.CancelReservation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routeCtx := chi.NewRouteContext()
			routeCtx.URLParams.Add("id", "not-a-uuid")

			req := httptest.NewRequest(http.MethodGet, "/v1/reservations/not-a-uuid", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

			recorder := httptest.NewRecorder()
			tt.call(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

func TestHandler_MalformedRoomIDFilter(t *testing.T) {
	handler := New(nil, nil, otelMocks.NewOtel())

	req := httptest.NewRequest(http.MethodGet, "/v1/reservations?room_id=not-a-uuid", nil)
	recorder := httptest.NewRecorder()

	handler.GetReservations(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
