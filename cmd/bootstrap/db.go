package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"amenity-booking/internal/infra/db"
	"amenity-booking/internal/infra/memstore"
	"amenity-booking/internal/infra/uow"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewUnitOfWork,
	),
)

// NewUnitOfWork selects the store named by STORE_DRIVER.
func NewUnitOfWork(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.UnitOfWork, error) {
	switch cfg.Store.Driver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return memstore.New(), nil
	case "postgres", "":
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	pool, cleanup, err := db.Connect(context.Background(), cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return uow.NewPostgresUoW(pool, logger), nil
}
