package stats

import (
	"net/http"

	"jam/infras/otel"
	"jam/internal/domains/stats/service"
	"jam/shared/constant"
	"jam/transport/http/middleware"
	"jam/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service    service.Stats
	middleware middleware.Auth
	otel       otel.Otel
}

func New(service service.Stats, middleware middleware.Auth, otel otel.Otel) Handler {
	return Handler{
		service:    service,
		middleware: middleware,
		otel:       otel,
	}
}

// Router registers the stats routes, restricted to operators.
func (handler *Handler) Router(router chi.Router) {
	router.Route("/stats", func(routerGroup chi.Router) {
		routerGroup.Use(handler.middleware.Auth)
		routerGroup.Use(handler.middleware.RequireRole(constant.RoleOperator))

		routerGroup.Get("/", handler.GetSummary)
		routerGroup.Get("/recent", handler.GetRecentReservations)
	})
}

// GetSummary aggregates room and reservation counts and revenue windows.
// @Summary Get reservation statistics
// @Description Retrieve room counts, reservation counts, and rolling revenue sums.
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.SummaryResponse] "Statistics summary"
// @Failure 500 {object} response.Error
// @Router /v1/stats [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get statistics summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Statistics summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// GetRecentReservations lists the most recently created confirmed reservations.
// @Summary Get recent reservations
// @Description Retrieve the most recently created confirmed reservations with their room names.
// @Tags Stats
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.RecentReservationsResponse] "Recent reservations"
// @Failure 500 {object} response.Error
// @Router /v1/stats/recent [get]
// @Security BearerAuth
func (handler *Handler) GetRecentReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRecentReservations")
	defer scope.End()

	recent, err := handler.service.Recent(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get recent reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Recent reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, recent)
}
