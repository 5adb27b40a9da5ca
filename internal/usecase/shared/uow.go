package shared

import (
	"context"
	"time"

	"workshop-engine/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type UnitOfWork interface {
	// Within: full read-write transaction with retry on serialization
	// failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Parts() PartRepository
	Mechanics() MechanicRepository
}

// Minimal write-side snapshots; the read side has its own view types.
type BookingSnapshot struct {
	ID            uuid.UUID
	CustomerName  string
	Vehicle       string
	MechanicID    uuid.UUID
	ScheduledAt   time.Time
	Status        booking.Status
	PriorStatus   *booking.Status
	PromotedBy    *uuid.UUID
	EstimatedCost decimal.Decimal
	Lines         []booking.PartLine
}

type PartSnapshot struct {
	ID          uuid.UUID
	Name        string
	UnitPrice   decimal.Decimal
	StockOnHand int
	Reserved    int
}

type MechanicSnapshot struct {
	ID         uuid.UUID
	Name       string
	OnDuty     bool
	ActiveJobs int
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// FindForUpdate locks the booking row for the rest of the transaction.
	FindForUpdate(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	// WaitingByMechanic returns waiting bookings in (scheduled_at, id)
	// ascending order, the promotion scan order.
	WaitingByMechanic(ctx context.Context, mechanicID uuid.UUID) ([]*BookingSnapshot, error)
	// DirectlyPromotedBy returns the bookings whose promoted_by edge points
	// at the given booking.
	DirectlyPromotedBy(ctx context.Context, id uuid.UUID) ([]*BookingSnapshot, error)

	// UpdateStatus performs a plain status change (e.g. ready -> in_progress)
	// without touching prior_status or promoted_by.
	UpdateStatus(ctx context.Context, id uuid.UUID, to booking.Status) error
	// MarkTerminal records the prior status alongside the terminal one.
	MarkTerminal(ctx context.Context, id uuid.UUID, to, prior booking.Status) error
	// MarkPromoted flips waiting -> ready and writes the causal edge.
	MarkPromoted(ctx context.Context, id uuid.UUID, triggeredBy *uuid.UUID) error
	// MarkReverted sends a cascade-hit booking back to waiting, recording its
	// prior status and clearing the causal edge.
	MarkReverted(ctx context.Context, id uuid.UUID, prior booking.Status) error
	// MarkUndone restores the prior status, consuming it and clearing the
	// causal edge.
	MarkUndone(ctx context.Context, id uuid.UUID, restored booking.Status) error
}

type PartRepository interface {
	Create(ctx context.Context, id uuid.UUID, name string, unitPrice decimal.Decimal, stockOnHand int) error
	// LockByIDs locks the part rows in deterministic (id) order and returns
	// their current ledger state. Missing IDs yield a NOT_FOUND error.
	LockByIDs(ctx context.Context, ids []uuid.UUID) ([]*PartSnapshot, error)
	// FindByIDs reads current ledger state without locking.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*PartSnapshot, error)

	Reserve(ctx context.Context, partID uuid.UUID, qty int) error
	Release(ctx context.Context, partID uuid.UUID, qty int) error
	// Consume decrements both stock and reserved; fails with the
	// INSUFFICIENT_STOCK kind when stock has dropped below qty since
	// reservation.
	Consume(ctx context.Context, partID uuid.UUID, qty int) error
	// Restock is the inverse of Consume, used by undo.
	Restock(ctx context.Context, partID uuid.UUID, qty int) error
	// AdjustStock applies a manual delta, refusing to take stock negative.
	AdjustStock(ctx context.Context, partID uuid.UUID, delta int) (*PartSnapshot, error)
}

type MechanicRepository interface {
	Create(ctx context.Context, id uuid.UUID, name string, onDuty bool) error
	// LockWithActiveCount locks the mechanic row and derives the active
	// booking count under that lock. The lock also serializes promotion
	// scans per mechanic.
	LockWithActiveCount(ctx context.Context, id uuid.UUID) (*MechanicSnapshot, error)
	SetDuty(ctx context.Context, id uuid.UUID, onDuty bool) error
	AllIDs(ctx context.Context) ([]uuid.UUID, error)
}
