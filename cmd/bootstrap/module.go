package bootstrap

import (
	"amenity-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	MetricsModule,
	StoreModule,
	CacheModule,
	JWTModule,
	NotificationModule,
	components.UseCaseModule,
	components.HandlerModule,
	SchedulerModule,
)
