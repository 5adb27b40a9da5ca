package queries

import (
	"context"

	"github.com/google/uuid"
)

type PartQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*PartView, error)
	ListAll(ctx context.Context) ([]*PartView, error)
}

type PartViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PartView, error)
	FindAll(ctx context.Context) ([]*PartView, error)
}

type partQueriesImpl struct {
	repo PartViewRepo
}

func NewPartQueries(repo PartViewRepo) PartQueries {
	return &partQueriesImpl{repo: repo}
}

func (q *partQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*PartView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *partQueriesImpl) ListAll(ctx context.Context) ([]*PartView, error) {
	return q.repo.FindAll(ctx)
}
