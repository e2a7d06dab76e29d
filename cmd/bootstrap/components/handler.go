package components

import (
	"amenity-booking/internal/handler"
	"amenity-booking/internal/handler/api"
	"amenity-booking/internal/handler/middleware"
	"amenity-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewAmenityHandler,
		api.NewWaitlistHandler,
		api.NewConfirmationHandler,
		middleware.NewAuthMiddleware,
		func(cfg config.Config) *middleware.IPRateLimiter {
			return middleware.NewIPRateLimiter(cfg.RateLimit)
		},
	),
	fx.Invoke(handler.NewRouter),
)
