package room

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	otelMocks "jam/infras/otel/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestHandler_MalformedRoomID(t *testing.T) {
	handler := New(nil, nil, otelMocks.NewOtel())

	tests := []struct {
		name string
		call func(w http.ResponseWriter, r *http.Request)
	}{
		{
			name: "get by id",
			call: handler.GetRoomByID,
		},
		{
			name: "update",
			call: handler.UpdateRoom,
		},
		{
			name: "deactivate",
			call: handler.DeactivateRoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			routeCtx := chi.NewRouteContext()
			routeCtx.URLParams.Add("id", "not-a-uuid")

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms/not-a-uuid", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

			recorder := httptest.NewRecorder()
			tt.call(recorder, req)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}
