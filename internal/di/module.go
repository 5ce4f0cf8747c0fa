package di

import (
	"go.uber.org/fx"

	"github.com/wassalha/wassalha/internal/adapter/broker"
	"github.com/wassalha/wassalha/internal/adapter/payment"
	"github.com/wassalha/wassalha/internal/app"
	"github.com/wassalha/wassalha/internal/cache"
	"github.com/wassalha/wassalha/internal/config"
	"github.com/wassalha/wassalha/internal/logger"
	"github.com/wassalha/wassalha/internal/observability"
	"github.com/wassalha/wassalha/internal/pkg/auth"
	"github.com/wassalha/wassalha/internal/realtime"
	"github.com/wassalha/wassalha/internal/server/http/router"
	"github.com/wassalha/wassalha/internal/server/ws"
	"github.com/wassalha/wassalha/internal/storage/postgres"
	"github.com/wassalha/wassalha/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		broker.Module,
		cache.Module,
		realtime.Module,
		observability.Module,
		usecase.Module,
		ws.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
