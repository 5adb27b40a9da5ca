package commands

import (
	"context"
	"log/slog"

	"workshop-engine/internal/domain/booking"
	"workshop-engine/internal/infra"
	"workshop-engine/internal/pkg/clock"
	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/pkg/errs"
	"workshop-engine/internal/pkg/metrics"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type TransitionResult struct {
	BookingID uuid.UUID
	From      booking.Status
	To        booking.Status
	// Promoted is how many waiting bookings the follow-up scan unlocked.
	Promoted int
}

type TransitionCommands interface {
	// Transition moves a booking along the legality table. Entering done
	// consumes the reservation, entering cancelled releases it; both record
	// the prior status for undo and trigger a promotion scan for the
	// mechanic with this booking as the causal edge.
	Transition(ctx context.Context, bookingID uuid.UUID, to booking.Status) (*TransitionResult, error)
}

type transitionImpl struct {
	uow       shared.UnitOfWork
	promotion PromotionCommands
	clock     clock.Clock
	engine    config.EngineConfig
	metrics   *metrics.Metrics
	notifier  shared.Notifier
}

func NewTransitionCommands(
	uow shared.UnitOfWork,
	promotion PromotionCommands,
	clk clock.Clock,
	cfg config.Config,
	m *metrics.Metrics,
	notifier shared.Notifier,
) TransitionCommands {
	return &transitionImpl{
		uow:       uow,
		promotion: promotion,
		clock:     clk,
		engine:    cfg.Engine,
		metrics:   m,
		notifier:  notifier,
	}
}

func (t *transitionImpl) Transition(ctx context.Context, bookingID uuid.UUID, to booking.Status) (*TransitionResult, error) {
	if !to.IsValid() {
		return nil, ErrInvalidTransition
	}

	var (
		result     TransitionResult
		afterParts []*shared.PartSnapshot
		mechanicID uuid.UUID
	)

	err := t.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Bookings().FindForUpdate(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		mechanicID = snap.MechanicID

		if !booking.CanTransition(snap.Status, to) {
			return errs.Mark(
				errs.New("cannot transition from "+snap.Status.String()+" to "+to.String()),
				ErrInvalidTransition,
			)
		}

		switch to {
		case booking.StatusDone:
			// Consume in part-id order; stock may have been adjusted below
			// the reserved level since admission.
			for _, line := range sortedLines(snap.Lines) {
				if err := tx.Parts().Consume(ctx, line.PartID, line.Quantity); err != nil {
					if infra.IsKind(err, infra.KindInsufficientStock) {
						return errs.Mark(err, ErrInsufficientStock)
					}
					if infra.IsKind(err, infra.KindNotFound) {
						return ErrPartNotFound
					}
					return err
				}
			}
			if err := tx.Bookings().MarkTerminal(ctx, bookingID, to, snap.Status); err != nil {
				return err
			}

		case booking.StatusCancelled:
			for _, line := range sortedLines(snap.Lines) {
				if err := tx.Parts().Release(ctx, line.PartID, line.Quantity); err != nil {
					return err
				}
			}
			if err := tx.Bookings().MarkTerminal(ctx, bookingID, to, snap.Status); err != nil {
				return err
			}

		default:
			// Only ready to in_progress reaches here. Waiting exits through
			// the promotion scan or cancellation, so no capacity or parts
			// re-check is needed on this path.
			if err := tx.Bookings().UpdateStatus(ctx, bookingID, to); err != nil {
				return err
			}
		}

		if to.IsTerminal() && len(snap.Lines) > 0 {
			afterParts, err = tx.Parts().FindByIDs(ctx, collectPartIDs(snap.Lines))
			if err != nil {
				return err
			}
		}

		result = TransitionResult{BookingID: bookingID, From: snap.Status, To: to}
		return nil
	})
	if err != nil {
		if isTaxonomyErr(err) {
			return nil, err
		}
		return nil, markStorageErr(err)
	}

	t.metrics.TransitionsTotal.WithLabelValues(to.String()).Inc()
	notifyLowStock(t.notifier, t.engine.LowStockThreshold, t.clock.Now(), afterParts)

	// Terminal transitions free capacity and possibly parts; scan the
	// mechanic's queue with this booking as the triggering edge. The scan
	// runs in its own transaction: a scan failure must not unwind the
	// committed transition.
	if to.IsTerminal() {
		trigger := bookingID
		promoted, err := t.promotion.Promote(ctx, mechanicID, &trigger)
		if err != nil {
			slog.Warn("post-transition promotion scan failed",
				"booking_id", bookingID,
				"mechanic_id", mechanicID,
				"error", err.Error())
		}
		result.Promoted = promoted
	}
	return &result, nil
}
