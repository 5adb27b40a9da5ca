package queries

import (
	"context"

	"workshop-engine/internal/domain/mechanic"
	"workshop-engine/internal/pkg/config"

	"github.com/google/uuid"
)

type MechanicQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*MechanicView, error)
	ListAll(ctx context.Context) ([]*MechanicView, error)
}

// MechanicViewRepo returns rows without the display status; the query layer
// derives it from the configured capacity limit.
type MechanicViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MechanicView, error)
	FindAll(ctx context.Context) ([]*MechanicView, error)
}

type mechanicQueriesImpl struct {
	repo   MechanicViewRepo
	engine config.EngineConfig
}

func NewMechanicQueries(repo MechanicViewRepo, cfg config.Config) MechanicQueries {
	return &mechanicQueriesImpl{repo: repo, engine: cfg.Engine}
}

func (q *mechanicQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*MechanicView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	q.fillDisplay(view)
	return view, nil
}

func (q *mechanicQueriesImpl) ListAll(ctx context.Context) ([]*MechanicView, error) {
	views, err := q.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		q.fillDisplay(v)
	}
	return views, nil
}

func (q *mechanicQueriesImpl) fillDisplay(v *MechanicView) {
	m := mechanic.NewMechanic(v.ID, v.Name, v.OnDuty, v.ActiveJobs)
	v.DisplayStatus = string(m.Display(q.engine.CapacityLimit))
}
