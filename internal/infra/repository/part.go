package repository

import (
	"context"
	"errors"

	"workshop-engine/internal/infra"
	"workshop-engine/internal/infra/db"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PartRepository is the part ledger. Every mutation is a single conditional
// UPDATE so concurrent reserve/release/consume on the same part serialize on
// the row without a read-then-write window.
type PartRepository struct {
	db db.DBTX
}

func NewPartRepository(dbtx db.DBTX) *PartRepository {
	return &PartRepository{db: dbtx}
}

func (r *PartRepository) Create(ctx context.Context, id uuid.UUID, name string, unitPrice decimal.Decimal, stockOnHand int) error {
	const q = `
INSERT INTO parts (id, name, unit_price, stock_on_hand, reserved)
VALUES ($1, $2, $3, $4, 0)
`
	if _, err := r.db.Exec(ctx, q, id, name, unitPrice.String(), stockOnHand); err != nil {
		return infra.WrapRepoErr("failed to create part", err)
	}
	return nil
}

func (r *PartRepository) LockByIDs(ctx context.Context, ids []uuid.UUID) ([]*shared.PartSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	// Deterministic lock order keeps concurrent multi-part transactions from
	// deadlocking each other.
	const q = `
SELECT id, name, unit_price::text, stock_on_hand, reserved
FROM parts
WHERE id = ANY($1)
ORDER BY id
FOR UPDATE
`
	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock parts", err)
	}
	defer rows.Close()

	found := make(map[uuid.UUID]bool, len(ids))
	var out []*shared.PartSnapshot
	for rows.Next() {
		snap, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		found[snap.ID] = true
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read locked parts", err)
	}
	for _, id := range ids {
		if !found[id] {
			return nil, infra.NewRepoErr("part not found: "+id.String(), infra.KindNotFound)
		}
	}
	return out, nil
}

func (r *PartRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*shared.PartSnapshot, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const q = `
SELECT id, name, unit_price::text, stock_on_hand, reserved
FROM parts
WHERE id = ANY($1)
ORDER BY id
`
	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query parts", err)
	}
	defer rows.Close()

	var out []*shared.PartSnapshot
	for rows.Next() {
		snap, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read parts", err)
	}
	return out, nil
}

func (r *PartRepository) Reserve(ctx context.Context, partID uuid.UUID, qty int) error {
	const q = `
UPDATE parts
SET reserved = reserved + $2, updated_at = now()
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, q, partID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve part", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	return nil
}

func (r *PartRepository) Release(ctx context.Context, partID uuid.UUID, qty int) error {
	const q = `
UPDATE parts
SET reserved = GREATEST(reserved - $2, 0), updated_at = now()
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, q, partID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to release part", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	return nil
}

func (r *PartRepository) Consume(ctx context.Context, partID uuid.UUID, qty int) error {
	// Conditional so stock can never go negative, even when it was manually
	// adjusted below the reserved level after reservation.
	const q = `
UPDATE parts
SET stock_on_hand = stock_on_hand - $2,
    reserved = GREATEST(reserved - $2, 0),
    updated_at = now()
WHERE id = $1 AND stock_on_hand >= $2
`
	tag, err := r.db.Exec(ctx, q, partID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to consume part", err)
	}
	if tag.RowsAffected() == 0 {
		if exists, err := r.exists(ctx, partID); err != nil {
			return err
		} else if !exists {
			return infra.NewRepoErr("part not found", infra.KindNotFound)
		}
		return infra.NewRepoErr("insufficient stock for part "+partID.String(), infra.KindInsufficientStock)
	}
	return nil
}

func (r *PartRepository) Restock(ctx context.Context, partID uuid.UUID, qty int) error {
	const q = `
UPDATE parts
SET stock_on_hand = stock_on_hand + $2,
    reserved = reserved + $2,
    updated_at = now()
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, q, partID, qty)
	if err != nil {
		return infra.WrapRepoErr("failed to restock part", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	return nil
}

func (r *PartRepository) AdjustStock(ctx context.Context, partID uuid.UUID, delta int) (*shared.PartSnapshot, error) {
	const q = `
UPDATE parts
SET stock_on_hand = stock_on_hand + $2, updated_at = now()
WHERE id = $1 AND stock_on_hand + $2 >= 0
RETURNING id, name, unit_price::text, stock_on_hand, reserved
`
	row := r.db.QueryRow(ctx, q, partID, delta)
	snap, err := scanPart(row)
	if err == nil {
		return snap, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}
	if exists, eerr := r.exists(ctx, partID); eerr != nil {
		return nil, eerr
	} else if !exists {
		return nil, infra.NewRepoErr("part not found", infra.KindNotFound)
	}
	return nil, infra.NewRepoErr("stock adjustment would take stock negative", infra.KindInsufficientStock)
}

func (r *PartRepository) exists(ctx context.Context, partID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM parts WHERE id = $1)`, partID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check part existence", err)
	}
	return exists, nil
}

func scanPart(row pgx.Row) (*shared.PartSnapshot, error) {
	var (
		snap      shared.PartSnapshot
		unitPrice string
	)
	if err := row.Scan(&snap.ID, &snap.Name, &unitPrice, &snap.StockOnHand, &snap.Reserved); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("part not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan part", err)
	}
	price, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid unit price in part row", err)
	}
	snap.UnitPrice = price
	return &snap, nil
}
