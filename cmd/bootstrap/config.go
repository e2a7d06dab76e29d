package bootstrap

import (
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		shared.NewSettings,
	),
)
