package bootstrap

import (
	"fmt"
	"time"

	"amenity-booking/internal/handler/api"
	"amenity-booking/internal/infra/confirmlink"
	"amenity-booking/internal/pkg/config"
	"amenity-booking/internal/pkg/jwt"
	"amenity-booking/internal/usecase/promotion"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(api.LinkValidator)),
		),
		fx.Annotate(
			NewLinkIssuer,
			fx.As(new(promotion.LinkIssuer)),
		),
	),
)

func NewJWTService(cfg config.Config) (*jwt.Service, error) {
	duration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_DURATION: %w", err)
	}
	return jwt.NewService(cfg.JWT.Secret, cfg.JWT.LinkSecret, duration), nil
}

func NewLinkIssuer(s *jwt.Service, cfg config.Config) *confirmlink.Issuer {
	return confirmlink.NewIssuer(s, cfg.Booking.PublicBaseURL)
}
