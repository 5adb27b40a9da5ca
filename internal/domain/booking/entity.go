package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNothingToUndo     = errors.New("nothing to undo")
	ErrInvalidQuantity   = errors.New("part quantity must be positive")
	ErrDuplicatePartLine = errors.New("duplicate part in part lines")
	ErrNotPromotable     = errors.New("only waiting bookings can be promoted")
)

// PartLine is one required (part, quantity) pair.
type PartLine struct {
	PartID   uuid.UUID
	Quantity int
}

func NewPartLine(partID uuid.UUID, quantity int) (PartLine, error) {
	if quantity <= 0 {
		return PartLine{}, ErrInvalidQuantity
	}
	return PartLine{PartID: partID, Quantity: quantity}, nil
}

// DecideInitialStatus folds the admission-time shortfall flags into the
// initial status. Shortfalls are outcomes, not errors.
func DecideInitialStatus(insufficientParts, capacityBlocked bool) Status {
	if insufficientParts || capacityBlocked {
		return StatusWaiting
	}
	return StatusReady
}

type Booking struct {
	id            uuid.UUID
	customerName  string
	vehicle       string
	mechanicID    uuid.UUID
	scheduledAt   time.Time
	lines         []PartLine
	status        Status
	priorStatus   *Status
	promotedBy    *uuid.UUID
	estimatedCost decimal.Decimal
	createdAt     time.Time
	updatedAt     time.Time
}

func NewBooking(
	customerName, vehicle string,
	mechanicID uuid.UUID,
	scheduledAt time.Time,
	lines []PartLine,
	initialStatus Status,
	estimatedCost decimal.Decimal,
	now time.Time,
) (*Booking, error) {
	if initialStatus != StatusWaiting && initialStatus != StatusReady {
		return nil, ErrInvalidTransition
	}
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, l := range lines {
		if l.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if seen[l.PartID] {
			return nil, ErrDuplicatePartLine
		}
		seen[l.PartID] = true
	}

	prior := initialStatus
	return &Booking{
		id:            uuid.New(),
		customerName:  customerName,
		vehicle:       vehicle,
		mechanicID:    mechanicID,
		scheduledAt:   scheduledAt,
		lines:         lines,
		status:        initialStatus,
		priorStatus:   &prior,
		promotedBy:    nil,
		estimatedCost: estimatedCost,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	customerName, vehicle string,
	mechanicID uuid.UUID,
	scheduledAt time.Time,
	lines []PartLine,
	status Status,
	priorStatus *Status,
	promotedBy *uuid.UUID,
	estimatedCost decimal.Decimal,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		customerName:  customerName,
		vehicle:       vehicle,
		mechanicID:    mechanicID,
		scheduledAt:   scheduledAt,
		lines:         lines,
		status:        status,
		priorStatus:   priorStatus,
		promotedBy:    promotedBy,
		estimatedCost: estimatedCost,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// TransitionTo moves the booking along the legality table. Entering a
// terminal state records the prior status for undo.
func (b *Booking) TransitionTo(to Status, now time.Time) error {
	if !CanTransition(b.status, to) {
		return ErrInvalidTransition
	}
	if to.IsTerminal() {
		prior := b.status
		b.priorStatus = &prior
	}
	b.status = to
	b.updatedAt = now
	return nil
}

// Promote moves a waiting booking to ready, recording the causal edge to the
// booking whose terminal transition freed the capacity or parts. triggeredBy
// is nil for manual or duty-flag-driven scans.
func (b *Booking) Promote(triggeredBy *uuid.UUID, now time.Time) error {
	if b.status != StatusWaiting {
		return ErrNotPromotable
	}
	b.status = StatusReady
	b.promotedBy = triggeredBy
	b.updatedAt = now
	return nil
}

// Undo restores the status recorded before the last terminal transition and
// returns it. The prior status is consumed; a second undo fails.
func (b *Booking) Undo(now time.Time) (Status, error) {
	if b.priorStatus == nil {
		return "", ErrNothingToUndo
	}
	restored := *b.priorStatus
	b.status = restored
	b.priorStatus = nil
	b.promotedBy = nil
	b.updatedAt = now
	return restored, nil
}

// RevertToWaiting is the cascade leg of undo: a booking promoted by the
// undone transition goes back to waiting. Its reservations stay held.
func (b *Booking) RevertToWaiting(now time.Time) error {
	if !b.status.IsActive() {
		return ErrInvalidTransition
	}
	prior := b.status
	b.priorStatus = &prior
	b.status = StatusWaiting
	b.promotedBy = nil
	b.updatedAt = now
	return nil
}

func (b *Booking) ID() uuid.UUID                  { return b.id }
func (b *Booking) CustomerName() string           { return b.customerName }
func (b *Booking) Vehicle() string                { return b.vehicle }
func (b *Booking) MechanicID() uuid.UUID          { return b.mechanicID }
func (b *Booking) ScheduledAt() time.Time         { return b.scheduledAt }
func (b *Booking) Lines() []PartLine              { return b.lines }
func (b *Booking) Status() Status                 { return b.status }
func (b *Booking) PriorStatus() *Status           { return b.priorStatus }
func (b *Booking) PromotedBy() *uuid.UUID         { return b.promotedBy }
func (b *Booking) EstimatedCost() decimal.Decimal { return b.estimatedCost }
func (b *Booking) CreatedAt() time.Time           { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time           { return b.updatedAt }
