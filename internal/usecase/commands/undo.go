package commands

import (
	"context"

	"workshop-engine/internal/domain/booking"
	"workshop-engine/internal/infra"
	"workshop-engine/internal/pkg/clock"
	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/pkg/metrics"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type UndoResult struct {
	BookingID      uuid.UUID
	RestoredStatus booking.Status
	// CascadeReverted counts the directly-promoted bookings sent back to
	// waiting.
	CascadeReverted int
}

type UndoCommands interface {
	// Undo restores the status recorded before the booking's last terminal
	// transition, reverses that transition's ledger effect, and reverts
	// every booking this one directly promoted back to waiting. The cascade
	// is single-level: second-order promotions are left alone.
	Undo(ctx context.Context, bookingID uuid.UUID) (*UndoResult, error)
}

type undoImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	engine   config.EngineConfig
	metrics  *metrics.Metrics
	notifier shared.Notifier
}

func NewUndoCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	cfg config.Config,
	m *metrics.Metrics,
	notifier shared.Notifier,
) UndoCommands {
	return &undoImpl{
		uow:      uow,
		clock:    clk,
		engine:   cfg.Engine,
		metrics:  m,
		notifier: notifier,
	}
}

func (u *undoImpl) Undo(ctx context.Context, bookingID uuid.UUID) (*UndoResult, error) {
	var (
		result     UndoResult
		afterParts []*shared.PartSnapshot
	)

	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		result = UndoResult{BookingID: bookingID}

		snap, err := tx.Bookings().FindForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if snap.PriorStatus == nil {
			return ErrNothingToUndo
		}
		restored := *snap.PriorStatus

		// Reverse the ledger effect of the transition being undone so the
		// booking comes back with its original reservations intact.
		switch snap.Status {
		case booking.StatusDone:
			for _, line := range sortedLines(snap.Lines) {
				if err := tx.Parts().Restock(ctx, line.PartID, line.Quantity); err != nil {
					return err
				}
			}
		case booking.StatusCancelled:
			for _, line := range sortedLines(snap.Lines) {
				if err := tx.Parts().Reserve(ctx, line.PartID, line.Quantity); err != nil {
					return err
				}
			}
		}

		if err := tx.Bookings().MarkUndone(ctx, bookingID, restored); err != nil {
			return err
		}

		// Single-level cascade over the recorded causal edges. No heuristic
		// fallback: every promotion wrote its edge at promotion time.
		children, err := tx.Bookings().DirectlyPromotedBy(ctx, bookingID)
		if err != nil {
			return err
		}
		for _, child := range children {
			if !child.Status.IsActive() {
				continue
			}
			if err := tx.Bookings().MarkReverted(ctx, child.ID, child.Status); err != nil {
				return err
			}
			result.CascadeReverted++
		}

		if len(snap.Lines) > 0 {
			afterParts, err = tx.Parts().FindByIDs(ctx, collectPartIDs(snap.Lines))
			if err != nil {
				return err
			}
		}

		result.RestoredStatus = restored
		return nil
	})
	if err != nil {
		if isTaxonomyErr(err) {
			return nil, err
		}
		return nil, markStorageErr(err)
	}

	u.metrics.UndosTotal.Inc()
	if result.CascadeReverted > 0 {
		u.metrics.CascadeReverts.Add(float64(result.CascadeReverted))
	}
	notifyLowStock(u.notifier, u.engine.LowStockThreshold, u.clock.Now(), afterParts)
	return &result, nil
}
