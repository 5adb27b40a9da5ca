package components

import (
	"workshop-engine/internal/handler"
	"workshop-engine/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewMechanicHandler,
		api.NewPartHandler,
	),
	fx.Invoke(handler.NewRouter),
)
