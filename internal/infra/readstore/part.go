package readstore

import (
	"context"
	"errors"

	"workshop-engine/internal/infra"
	"workshop-engine/internal/infra/db"
	"workshop-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PartReadStore struct {
	db db.DBTX
}

func NewPartReadStore(dbtx db.DBTX) *PartReadStore {
	return &PartReadStore{db: dbtx}
}

func (r *PartReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PartView, error) {
	const q = `
SELECT id, name, unit_price::text, stock_on_hand, reserved, stock_on_hand - reserved
FROM parts
WHERE id = $1
`
	var view queries.PartView
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID, &view.Name, &view.UnitPrice, &view.StockOnHand, &view.Reserved, &view.Available,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("part not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find part by ID", err)
	}
	return &view, nil
}

func (r *PartReadStore) FindAll(ctx context.Context) ([]*queries.PartView, error) {
	const q = `
SELECT id, name, unit_price::text, stock_on_hand, reserved, stock_on_hand - reserved
FROM parts
ORDER BY name, id
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list parts", err)
	}
	defer rows.Close()

	var out []*queries.PartView
	for rows.Next() {
		var view queries.PartView
		if err := rows.Scan(&view.ID, &view.Name, &view.UnitPrice,
			&view.StockOnHand, &view.Reserved, &view.Available); err != nil {
			return nil, infra.WrapRepoErr("failed to scan part view", err)
		}
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read part list", err)
	}
	return out, nil
}
