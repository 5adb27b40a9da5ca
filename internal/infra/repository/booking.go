package repository

import (
	"context"
	"errors"

	"workshop-engine/internal/domain/booking"
	"workshop-engine/internal/infra"
	"workshop-engine/internal/infra/db"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

const pgErrCodeForeignKeyViolation = "23503"

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	const q = `
INSERT INTO bookings (id, customer_name, vehicle, mechanic_id, scheduled_at,
                      status, prior_status, promoted_by, estimated_cost,
                      created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
`
	var prior *string
	if p := b.PriorStatus(); p != nil {
		s := p.String()
		prior = &s
	}
	_, err := r.db.Exec(ctx, q,
		b.ID(), b.CustomerName(), b.Vehicle(), b.MechanicID(), b.ScheduledAt(),
		b.Status().String(), prior, b.PromotedBy(), b.EstimatedCost().String(),
		b.CreatedAt(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation {
			return infra.WrapRepoErr("booking references unknown mechanic", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}

	const lineQ = `
INSERT INTO booking_parts (booking_id, part_id, quantity)
VALUES ($1, $2, $3)
`
	for _, line := range b.Lines() {
		if _, err := r.db.Exec(ctx, lineQ, b.ID(), line.PartID, line.Quantity); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeForeignKeyViolation {
				return infra.WrapRepoErr("booking references unknown part", err, infra.KindForeignKeyViolated)
			}
			return infra.WrapRepoErr("failed to create booking part line", err)
		}
	}
	return nil
}

func (r *BookingRepository) FindForUpdate(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const q = `
SELECT id, customer_name, vehicle, mechanic_id, scheduled_at,
       status, prior_status, promoted_by, estimated_cost::text
FROM bookings
WHERE id = $1
FOR UPDATE
`
	snap, err := scanBooking(r.db.QueryRow(ctx, q, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, []*shared.BookingSnapshot{snap}); err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *BookingRepository) WaitingByMechanic(ctx context.Context, mechanicID uuid.UUID) ([]*shared.BookingSnapshot, error) {
	// Earliest-requested first; id breaks ties so the scan order is stable.
	const q = `
SELECT id, customer_name, vehicle, mechanic_id, scheduled_at,
       status, prior_status, promoted_by, estimated_cost::text
FROM bookings
WHERE mechanic_id = $1 AND status = 'waiting'
ORDER BY scheduled_at, id
`
	return r.queryBookings(ctx, q, mechanicID)
}

func (r *BookingRepository) DirectlyPromotedBy(ctx context.Context, id uuid.UUID) ([]*shared.BookingSnapshot, error) {
	const q = `
SELECT id, customer_name, vehicle, mechanic_id, scheduled_at,
       status, prior_status, promoted_by, estimated_cost::text
FROM bookings
WHERE promoted_by = $1
ORDER BY scheduled_at, id
`
	return r.queryBookings(ctx, q, id)
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, to booking.Status) error {
	const q = `
UPDATE bookings SET status = $2, updated_at = now() WHERE id = $1
`
	return r.exec(ctx, q, "failed to update booking status", id, to.String())
}

func (r *BookingRepository) MarkTerminal(ctx context.Context, id uuid.UUID, to, prior booking.Status) error {
	const q = `
UPDATE bookings SET status = $2, prior_status = $3, updated_at = now() WHERE id = $1
`
	return r.exec(ctx, q, "failed to mark booking terminal", id, to.String(), prior.String())
}

func (r *BookingRepository) MarkPromoted(ctx context.Context, id uuid.UUID, triggeredBy *uuid.UUID) error {
	// Guarded on status so a concurrent transition cannot promote a booking
	// that already left waiting.
	const q = `
UPDATE bookings SET status = 'ready', promoted_by = $2, updated_at = now()
WHERE id = $1 AND status = 'waiting'
`
	tag, err := r.db.Exec(ctx, q, id, triggeredBy)
	if err != nil {
		return infra.WrapRepoErr("failed to promote booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("booking is not waiting", infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) MarkReverted(ctx context.Context, id uuid.UUID, prior booking.Status) error {
	const q = `
UPDATE bookings SET status = 'waiting', prior_status = $2, promoted_by = NULL, updated_at = now()
WHERE id = $1
`
	return r.exec(ctx, q, "failed to revert booking", id, prior.String())
}

func (r *BookingRepository) MarkUndone(ctx context.Context, id uuid.UUID, restored booking.Status) error {
	const q = `
UPDATE bookings SET status = $2, prior_status = NULL, promoted_by = NULL, updated_at = now()
WHERE id = $1
`
	return r.exec(ctx, q, "failed to undo booking", id, restored.String())
}

func (r *BookingRepository) exec(ctx context.Context, q, msg string, args ...any) error {
	tag, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return infra.WrapRepoErr(msg, err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NewRepoErr("booking not found", infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) queryBookings(ctx context.Context, q string, args ...any) ([]*shared.BookingSnapshot, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query bookings", err)
	}
	defer rows.Close()

	var out []*shared.BookingSnapshot
	for rows.Next() {
		snap, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read bookings", err)
	}
	if err := r.loadLines(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) loadLines(ctx context.Context, snaps []*shared.BookingSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*shared.BookingSnapshot, len(snaps))
	ids := make([]uuid.UUID, 0, len(snaps))
	for _, s := range snaps {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	const q = `
SELECT booking_id, part_id, quantity
FROM booking_parts
WHERE booking_id = ANY($1)
ORDER BY part_id
`
	rows, err := r.db.Query(ctx, q, ids)
	if err != nil {
		return infra.WrapRepoErr("failed to query booking part lines", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			bookingID uuid.UUID
			line      booking.PartLine
		)
		if err := rows.Scan(&bookingID, &line.PartID, &line.Quantity); err != nil {
			return infra.WrapRepoErr("failed to scan booking part line", err)
		}
		if snap, ok := byID[bookingID]; ok {
			snap.Lines = append(snap.Lines, line)
		}
	}
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to read booking part lines", err)
	}
	return nil
}

func scanBooking(row pgx.Row) (*shared.BookingSnapshot, error) {
	var (
		snap          shared.BookingSnapshot
		status        string
		priorStatus   *string
		estimatedCost string
	)
	err := row.Scan(
		&snap.ID, &snap.CustomerName, &snap.Vehicle, &snap.MechanicID, &snap.ScheduledAt,
		&status, &priorStatus, &snap.PromotedBy, &estimatedCost,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.NewRepoErr("booking not found", infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan booking", err)
	}

	st, err := booking.ParseStatus(status)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid status in booking row", err)
	}
	snap.Status = st
	if priorStatus != nil {
		ps, err := booking.ParseStatus(*priorStatus)
		if err != nil {
			return nil, infra.WrapRepoErr("invalid prior status in booking row", err)
		}
		snap.PriorStatus = &ps
	}
	cost, err := decimal.NewFromString(estimatedCost)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid estimated cost in booking row", err)
	}
	snap.EstimatedCost = cost
	return &snap, nil
}
