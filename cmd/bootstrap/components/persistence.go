package components

import (
	"workshop-engine/internal/infra/db"
	"workshop-engine/internal/infra/readstore"
	"workshop-engine/internal/infra/uow"
	"workshop-engine/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		// UnitOfWork
		uow.NewPostgresUoW,
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingViewRepo)),
		),
		// Mechanic
		fx.Annotate(
			readstore.NewMechanicReadStore,
			fx.As(new(queries.MechanicViewRepo)),
		),
		// Part
		fx.Annotate(
			readstore.NewPartReadStore,
			fx.As(new(queries.PartViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
