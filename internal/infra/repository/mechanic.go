package repository

import (
	"context"
	"errors"

	"workshop-engine/internal/infra"
	"workshop-engine/internal/infra/db"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type MechanicRepository struct {
	db db.DBTX
}

func NewMechanicRepository(dbtx db.DBTX) *MechanicRepository {
	return &MechanicRepository{db: dbtx}
}

func (r *MechanicRepository) Create(ctx context.Context, id uuid.UUID, name string, onDuty bool) error {
	const q = `
INSERT INTO mechanics (id, name, on_duty) VALUES ($1, $2, $3)
`
	if _, err := r.db.Exec(ctx, q, id, name, onDuty); err != nil {
		return infra.WrapRepoErr("failed to create mechanic", err)
	}
	return nil
}

// LockWithActiveCount takes the mechanic row lock, then derives the active
// booking count under it. Holding the row lock for the rest of the
// transaction is what serializes promotion scans per mechanic.
func (r *MechanicRepository) LockWithActiveCount(ctx context.Context, id uuid.UUID) (*shared.MechanicSnapshot, error) {
	const lockQ = `
SELECT id, name, on_duty FROM mechanics WHERE id = $1 FOR UPDATE
`
	var snap shared.MechanicSnapshot
	if err := r.db.QueryRow(ctx, lockQ, id).Scan(&snap.ID, &snap.Name, &snap.OnDuty); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("mechanic not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock mechanic", err)
	}

	const countQ = `
SELECT COUNT(*) FROM bookings
WHERE mechanic_id = $1 AND status IN ('ready', 'in_progress')
`
	if err := r.db.QueryRow(ctx, countQ, id).Scan(&snap.ActiveJobs); err != nil {
		return nil, infra.WrapRepoErr("failed to count active bookings", err)
	}
	return &snap, nil
}

func (r *MechanicRepository) SetDuty(ctx context.Context, id uuid.UUID, onDuty bool) error {
	const q = `
UPDATE mechanics SET on_duty = $2, updated_at = now() WHERE id = $1
`
	tag, err := r.db.Exec(ctx, q, id, onDuty)
	if err != nil {
		return infra.WrapRepoErr("failed to set duty flag", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("mechanic not found", infra.KindNotFound)
	}
	return nil
}

func (r *MechanicRepository) AllIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM mechanics ORDER BY id`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list mechanics", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan mechanic id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read mechanic ids", err)
	}
	return ids, nil
}
