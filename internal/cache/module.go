package cache

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/wassalha/wassalha/internal/config"
	"github.com/wassalha/wassalha/internal/usecase"
)

// Module exposes the notification cache to the fx graph.
var Module = fx.Provide(newCache)

type cacheParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newCache(p cacheParams) (usecase.NotificationCache, error) {
	if p.Config.RedisAddress == "" {
		p.Logger.Info("no redis address configured, notification caching disabled")
		return NoopCache{}, nil
	}
	return NewNotificationCache(p.Config.RedisAddress, p.Config.NotificationCacheTTL, p.Logger)
}
