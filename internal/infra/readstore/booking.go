package readstore

import (
	"context"
	"errors"
	"strconv"

	"workshop-engine/internal/infra"
	"workshop-engine/internal/infra/db"
	"workshop-engine/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const q = `
SELECT b.id, b.customer_name, b.vehicle, b.mechanic_id, m.name,
       b.scheduled_at, b.status, b.prior_status, b.promoted_by,
       b.estimated_cost::text, b.created_at, b.updated_at
FROM bookings b
JOIN mechanics m ON m.id = b.mechanic_id
WHERE b.id = $1
`
	var view queries.BookingView
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID, &view.CustomerName, &view.Vehicle, &view.MechanicID, &view.MechanicName,
		&view.ScheduledAt, &view.Status, &view.PriorStatus, &view.PromotedBy,
		&view.EstimatedCost, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("booking not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	const lineQ = `
SELECT bp.part_id, p.name, bp.quantity
FROM booking_parts bp
JOIN parts p ON p.id = bp.part_id
WHERE bp.booking_id = $1
ORDER BY bp.part_id
`
	rows, err := r.db.Query(ctx, lineQ, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query booking part lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line queries.PartLineView
		if err := rows.Scan(&line.PartID, &line.PartName, &line.Quantity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking part line", err)
		}
		view.Lines = append(view.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking part lines", err)
	}
	return &view, nil
}

func (r *BookingReadStore) Find(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	q := `
SELECT id, customer_name, mechanic_id, scheduled_at, status, promoted_by
FROM bookings
`
	var (
		conds []string
		args  []any
	)
	if filter.MechanicID != nil {
		args = append(args, *filter.MechanicID)
		conds = append(conds, "mechanic_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != nil {
		args = append(args, filter.Status.String())
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			q += "WHERE " + c
		} else {
			q += " AND " + c
		}
	}
	q += "\nORDER BY scheduled_at, id"

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingListItem
	for rows.Next() {
		var item queries.BookingListItem
		if err := rows.Scan(&item.ID, &item.CustomerName, &item.MechanicID,
			&item.ScheduledAt, &item.Status, &item.PromotedBy); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking list", err)
	}
	return out, nil
}
