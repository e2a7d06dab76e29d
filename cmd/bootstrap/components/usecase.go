package components

import (
	"amenity-booking/internal/pkg/clock"
	"amenity-booking/internal/usecase"
	"amenity-booking/internal/usecase/commands"
	"amenity-booking/internal/usecase/promotion"
	"amenity-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecasePromotionModule,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecasePromotionModule = fx.Module("usecase/promotion",
	fx.Provide(
		promotion.NewScheduler,
		promotion.NewSweeper,
		fx.Annotate(
			func(s *promotion.Sweeper) *promotion.Sweeper { return s },
			fx.As(new(queries.OfferExpirer)),
		),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewAmenityCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewAmenityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
