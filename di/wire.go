//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"

	"tzbot/config"
	infraDiscord "tzbot/infras/discord"
	"tzbot/infras/otel"
	"tzbot/infras/redis"
	"tzbot/infras/s3"
	zoneHandler "tzbot/internal/handlers/zone"
	"tzbot/shared/cache"
	"tzbot/shared/timezone"
	"tzbot/shared/validator"
	"tzbot/transport"
	"tzbot/transport/discord"
	"tzbot/transport/http"
	"tzbot/transport/http/middleware"
	"tzbot/transport/http/router"

	zoneReport "tzbot/internal/domains/zone/report"
	zoneRepository "tzbot/internal/domains/zone/repository"
	zoneService "tzbot/internal/domains/zone/service"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	s3.New,
	infraDiscord.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	timezone.NewFromConfig,
	validator.New,
)

var zoneDomain = wire.NewSet(
	zoneRepository.New,
	ProvideRegistry,
	zoneReport.New,
	zoneService.New,
)

var domains = wire.NewSet(
	zoneDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	zoneHandler.New,
	router.New,
)

var transports = wire.NewSet(
	http.New,
	discord.New,
	transport.New,
)

func InitializeApp(ctx context.Context) (*transport.App, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		transports,
	)

	return &transport.App{}, nil
}
