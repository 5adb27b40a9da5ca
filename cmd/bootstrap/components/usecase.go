package components

import (
	"workshop-engine/internal/pkg/clock"
	"workshop-engine/internal/pkg/metrics"
	"workshop-engine/internal/usecase/commands"
	"workshop-engine/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
	usecaseQueriesModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	metrics.New,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAdmissionCommands,
		commands.NewPromotionCommands,
		commands.NewTransitionCommands,
		commands.NewUndoCommands,
		commands.NewMechanicCommands,
		commands.NewPartCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewMechanicQueries,
		queries.NewPartQueries,
	),
)
