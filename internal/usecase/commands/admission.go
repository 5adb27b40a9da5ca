package commands

import (
	"context"
	"sort"
	"time"

	"workshop-engine/internal/domain/booking"
	"workshop-engine/internal/domain/mechanic"
	"workshop-engine/internal/domain/part"
	"workshop-engine/internal/infra"
	"workshop-engine/internal/pkg/clock"
	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/pkg/metrics"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdmitBooking struct {
	CustomerName string
	Vehicle      string
	MechanicID   uuid.UUID
	ScheduledAt  time.Time
	Lines        []booking.PartLine
}

type AdmissionResult struct {
	BookingID         uuid.UUID
	Status            booking.Status
	InsufficientParts bool
	CapacityBlocked   bool
	EstimatedCost     decimal.Decimal
}

type AdmissionCommands interface {
	// Admit decides the initial status and reserves every required part,
	// all inside one transaction. Shortfalls are folded into the waiting
	// outcome, never returned as errors.
	Admit(ctx context.Context, cmd AdmitBooking) (*AdmissionResult, error)
}

type admissionImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	engine   config.EngineConfig
	metrics  *metrics.Metrics
	notifier shared.Notifier
}

func NewAdmissionCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	cfg config.Config,
	m *metrics.Metrics,
	notifier shared.Notifier,
) AdmissionCommands {
	return &admissionImpl{
		uow:      uow,
		clock:    clk,
		engine:   cfg.Engine,
		metrics:  m,
		notifier: notifier,
	}
}

func (a *admissionImpl) Admit(ctx context.Context, cmd AdmitBooking) (*AdmissionResult, error) {
	var (
		result     AdmissionResult
		afterParts []*shared.PartSnapshot
	)

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		mechSnap, err := tx.Mechanics().LockWithActiveCount(ctx, cmd.MechanicID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrMechanicNotFound
			}
			return err
		}
		mech := mechanic.NewMechanic(mechSnap.ID, mechSnap.Name, mechSnap.OnDuty, mechSnap.ActiveJobs)

		partIDs := collectPartIDs(cmd.Lines)
		partSnaps, err := tx.Parts().LockByIDs(ctx, partIDs)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPartNotFound
			}
			return err
		}

		parts := make(map[uuid.UUID]*part.Part, len(partSnaps))
		for _, snap := range partSnaps {
			p, err := part.NewPart(snap.ID, snap.Name, snap.UnitPrice, snap.StockOnHand, snap.Reserved)
			if err != nil {
				return err
			}
			parts[p.ID()] = p
		}

		insufficient := false
		estimate := decimal.Zero
		for _, line := range cmd.Lines {
			p := parts[line.PartID]
			if p.Available() < line.Quantity {
				insufficient = true
			}
			estimate = estimate.Add(p.LineCost(line.Quantity))
		}
		capacityBlocked := !mech.CanAccept(a.engine.CapacityLimit)

		initial := booking.DecideInitialStatus(insufficient, capacityBlocked)
		b, err := booking.NewBooking(
			cmd.CustomerName, cmd.Vehicle, cmd.MechanicID, cmd.ScheduledAt,
			cmd.Lines, initial, estimate, a.clock.Now(),
		)
		if err != nil {
			return err
		}

		if err := tx.Bookings().Create(ctx, b); err != nil {
			return err
		}

		// Parts are held even when the booking waits; the reservation backs
		// its claim in future promotion scans. The surrounding transaction
		// makes the group all-or-nothing.
		for _, line := range sortedLines(cmd.Lines) {
			if err := tx.Parts().Reserve(ctx, line.PartID, line.Quantity); err != nil {
				return err
			}
		}

		afterParts, err = tx.Parts().FindByIDs(ctx, partIDs)
		if err != nil {
			return err
		}

		result = AdmissionResult{
			BookingID:         b.ID(),
			Status:            initial,
			InsufficientParts: insufficient,
			CapacityBlocked:   capacityBlocked,
			EstimatedCost:     estimate,
		}
		return nil
	})
	if err != nil {
		return nil, a.mapErr(err)
	}

	a.metrics.AdmissionsTotal.WithLabelValues(result.Status.String()).Inc()
	notifyLowStock(a.notifier, a.engine.LowStockThreshold, a.clock.Now(), afterParts)
	return &result, nil
}

func (a *admissionImpl) mapErr(err error) error {
	switch {
	case isTaxonomyErr(err):
		return err
	default:
		return markStorageErr(err)
	}
}

func collectPartIDs(lines []booking.PartLine) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.PartID)
	}
	return ids
}

// sortedLines copies the lines in part-id order so every transaction touches
// part rows in the same sequence.
func sortedLines(lines []booking.PartLine) []booking.PartLine {
	out := make([]booking.PartLine, len(lines))
	copy(out, lines)
	sort.Slice(out, func(i, j int) bool {
		return out[i].PartID.String() < out[j].PartID.String()
	})
	return out
}
