package payment

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/wassalha/wassalha/internal/config"
	"github.com/wassalha/wassalha/internal/usecase"
)

// Module exposes the payment gateway client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (usecase.PaymentProvider, error) {
	return NewHTTPClient(p.Config.PaymentGatewayAddress, p.Logger)
}
