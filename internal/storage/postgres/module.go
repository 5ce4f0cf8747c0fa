package postgres

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/wassalha/wassalha/internal/config"
	"github.com/wassalha/wassalha/internal/domain/repository"
)

// Module wires PostgreSQL storage and repository adapters.
var Module = fx.Options(
	fx.Provide(newStorage),
	fx.Provide(
		func(s *Storage) repository.UserRepository { return s.Users() },
		func(s *Storage) repository.RequestRepository { return s.Requests() },
		func(s *Storage) repository.OfferRepository { return s.Offers() },
		func(s *Storage) repository.OrderRepository { return s.Orders() },
		func(s *Storage) repository.ProcessRepository { return s.Processes() },
		func(s *Storage) repository.PickupRepository { return s.Pickups() },
		func(s *Storage) repository.SponsorshipRepository { return s.Sponsorships() },
		func(s *Storage) repository.SponsorshipProcessRepository { return s.SponsorshipProcesses() },
		func(s *Storage) repository.NotificationRepository { return s.Notifications() },
		func(s *Storage) repository.OutboxRepository { return s.Outbox() },
	),
	fx.Invoke(registerLifecycle),
)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

func newStorage(p storageParams) (*Storage, error) {
	return New(p.Ctx, p.Config.DatabaseURI, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, storage *Storage) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			storage.Close()
			return nil
		},
	})
}
