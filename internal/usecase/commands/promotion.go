package commands

import (
	"context"
	"log/slog"

	"workshop-engine/internal/domain/mechanic"
	"workshop-engine/internal/domain/part"
	"workshop-engine/internal/infra"
	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/pkg/metrics"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type PromotionCommands interface {
	// Promote scans the mechanic's waiting bookings in schedule order and
	// promotes every one whose capacity and parts checks pass. A capacity
	// shortfall stops the scan (FIFO: later bookings must not jump an
	// un-promotable earlier one); a parts shortfall only skips the booking.
	// triggeredBy is recorded as the causal edge, nil for manual or
	// duty-flag-driven scans. Returns the number promoted.
	Promote(ctx context.Context, mechanicID uuid.UUID, triggeredBy *uuid.UUID) (int, error)

	// PromoteAll runs the reconciliation sweep: one independent scan per
	// mechanic, each with its own ordering and stop rule. A failing mechanic
	// does not abort the sweep.
	PromoteAll(ctx context.Context) (int, error)
}

type promotionImpl struct {
	uow     shared.UnitOfWork
	engine  config.EngineConfig
	metrics *metrics.Metrics
}

func NewPromotionCommands(uow shared.UnitOfWork, cfg config.Config, m *metrics.Metrics) PromotionCommands {
	return &promotionImpl{
		uow:     uow,
		engine:  cfg.Engine,
		metrics: m,
	}
}

func (p *promotionImpl) Promote(ctx context.Context, mechanicID uuid.UUID, triggeredBy *uuid.UUID) (int, error) {
	promoted := 0

	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		promoted = 0

		// The mechanic row lock serializes scans for this mechanic and
		// freezes the derived active count for the whole decision.
		mechSnap, err := tx.Mechanics().LockWithActiveCount(ctx, mechanicID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrMechanicNotFound
			}
			return err
		}
		active := mechSnap.ActiveJobs

		waiting, err := tx.Bookings().WaitingByMechanic(ctx, mechanicID)
		if err != nil {
			return err
		}

		for _, cand := range waiting {
			mech := mechanic.NewMechanic(mechSnap.ID, mechSnap.Name, mechSnap.OnDuty, active)
			if !mech.CanAccept(p.engine.CapacityLimit) {
				break
			}

			ok, err := p.partsSatisfiable(ctx, tx, cand)
			if err != nil {
				// A per-booking check failure must not starve the rest of
				// the scan.
				slog.Warn("promotion check failed, skipping booking",
					"booking_id", cand.ID,
					"mechanic_id", mechanicID,
					"error", err.Error())
				continue
			}
			if !ok {
				continue
			}

			if err := tx.Bookings().MarkPromoted(ctx, cand.ID, triggeredBy); err != nil {
				return err
			}
			active++
			promoted++
		}
		return nil
	})
	if err != nil {
		if isTaxonomyErr(err) {
			return 0, err
		}
		return 0, markStorageErr(err)
	}

	p.metrics.PromotionScans.Inc()
	if promoted > 0 {
		p.metrics.PromotionsTotal.Add(float64(promoted))
	}
	return promoted, nil
}

// partsSatisfiable re-checks every required part under a row lock, excluding
// the candidate's own reservation from the scarcity calculation. The lock
// closes the window where two scans could both claim the last units.
func (p *promotionImpl) partsSatisfiable(ctx context.Context, tx shared.Tx, cand *shared.BookingSnapshot) (bool, error) {
	if len(cand.Lines) == 0 {
		return true, nil
	}
	snaps, err := tx.Parts().LockByIDs(ctx, collectPartIDs(cand.Lines))
	if err != nil {
		return false, err
	}
	byID := make(map[uuid.UUID]*shared.PartSnapshot, len(snaps))
	for _, s := range snaps {
		byID[s.ID] = s
	}
	for _, line := range cand.Lines {
		snap := byID[line.PartID]
		pt, err := part.NewPart(snap.ID, snap.Name, snap.UnitPrice, snap.StockOnHand, snap.Reserved)
		if err != nil {
			return false, err
		}
		if pt.AvailableFor(line.Quantity) < line.Quantity {
			return false, nil
		}
	}
	return true, nil
}

func (p *promotionImpl) PromoteAll(ctx context.Context) (int, error) {
	var ids []uuid.UUID
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		ids, err = tx.Mechanics().AllIDs(ctx)
		return err
	})
	if err != nil {
		return 0, markStorageErr(err)
	}

	total := 0
	for _, id := range ids {
		n, err := p.Promote(ctx, id, nil)
		if err != nil {
			slog.Warn("promotion sweep failed for mechanic",
				"mechanic_id", id,
				"error", err.Error())
			continue
		}
		total += n
	}
	return total, nil
}
