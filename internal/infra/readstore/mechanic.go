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

type MechanicReadStore struct {
	db db.DBTX
}

func NewMechanicReadStore(dbtx db.DBTX) *MechanicReadStore {
	return &MechanicReadStore{db: dbtx}
}

const mechanicViewQuery = `
SELECT m.id, m.name, m.on_duty,
       COUNT(b.id) FILTER (WHERE b.status IN ('ready', 'in_progress')) AS active_jobs
FROM mechanics m
LEFT JOIN bookings b ON b.mechanic_id = m.id
`

func (r *MechanicReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.MechanicView, error) {
	q := mechanicViewQuery + `
WHERE m.id = $1
GROUP BY m.id, m.name, m.on_duty
`
	var view queries.MechanicView
	err := r.db.QueryRow(ctx, q, id).Scan(&view.ID, &view.Name, &view.OnDuty, &view.ActiveJobs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("mechanic not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find mechanic by ID", err)
	}
	return &view, nil
}

func (r *MechanicReadStore) FindAll(ctx context.Context) ([]*queries.MechanicView, error) {
	q := mechanicViewQuery + `
GROUP BY m.id, m.name, m.on_duty
ORDER BY m.name, m.id
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list mechanics", err)
	}
	defer rows.Close()

	var out []*queries.MechanicView
	for rows.Next() {
		var view queries.MechanicView
		if err := rows.Scan(&view.ID, &view.Name, &view.OnDuty, &view.ActiveJobs); err != nil {
			return nil, infra.WrapRepoErr("failed to scan mechanic view", err)
		}
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read mechanic list", err)
	}
	return out, nil
}
