//go:build wireinject
// +build wireinject

package di

import (
	"roomslot/config"
	"roomslot/infras/jwt"
	"roomslot/infras/kafka"
	"roomslot/infras/otel"
	"roomslot/infras/postgres"
	"roomslot/infras/redis"
	"roomslot/infras/s3"
	"roomslot/permissions"
	"roomslot/shared/cache"
	"roomslot/shared/clock"
	"roomslot/transport/http"
	"roomslot/transport/http/middleware"
	"roomslot/transport/http/router"

	"github.com/google/wire"

	authService "roomslot/internal/domains/auth/service"
	bookingRepository "roomslot/internal/domains/booking/repository"
	bookingService "roomslot/internal/domains/booking/service"
	dashboardService "roomslot/internal/domains/dashboard/service"
	roomRepository "roomslot/internal/domains/room/repository"
	roomService "roomslot/internal/domains/room/service"
	slotRepository "roomslot/internal/domains/slot/repository"
	slotService "roomslot/internal/domains/slot/service"
	userRepository "roomslot/internal/domains/user/repository"
	userService "roomslot/internal/domains/user/service"
	authHandler "roomslot/internal/handlers/auth"
	bookingHandler "roomslot/internal/handlers/booking"
	dashboardHandler "roomslot/internal/handlers/dashboard"
	roomHandler "roomslot/internal/handlers/room"
	userHandler "roomslot/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	clock.Real,
)

var slotDomain = wire.NewSet(
	slotRepository.New,
	slotService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	slotDomain,
	roomDomain,
	bookingDomain,
	dashboardDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	bookingHandler.New,
	dashboardHandler.New,
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
