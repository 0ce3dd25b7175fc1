//go:build wireinject
// +build wireinject

package di

import (
	"jam/config"
	"jam/infras/jwt"
	"jam/infras/kafka"
	"jam/infras/otel"
	"jam/infras/postgres"
	"jam/infras/redis"
	"jam/infras/s3"
	"jam/internal/events"
	reservationHandler "jam/internal/handlers/reservation"
	roomHandler "jam/internal/handlers/room"
	statsHandler "jam/internal/handlers/stats"
	"jam/shared/cache"
	"jam/transport/http"
	"jam/transport/http/middleware"
	"jam/transport/http/router"

	reservationRepository "jam/internal/domains/reservation/repository"
	reservationService "jam/internal/domains/reservation/service"
	roomRepository "jam/internal/domains/room/repository"
	roomService "jam/internal/domains/room/service"
	statsService "jam/internal/domains/stats/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
	events.NewPublisher,
)

var statsDomain = wire.NewSet(
	statsService.New,
)

var domains = wire.NewSet(
	roomDomain,
	reservationDomain,
	statsDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	roomHandler.New,
	reservationHandler.New,
	statsHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
