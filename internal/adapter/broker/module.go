package broker

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/wassalha/wassalha/internal/config"
)

// Module exposes the event publisher to the fx graph.
var Module = fx.Provide(newPublisher)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		p.Logger.Info("no kafka brokers configured, broker publishing disabled")
		return NoopPublisher{}
	}
	return NewProducer(p.Config.KafkaBrokers, p.Config.KafkaTopic, p.Logger)
}
