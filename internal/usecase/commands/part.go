package commands

import (
	"context"

	"workshop-engine/internal/infra"
	"workshop-engine/internal/pkg/clock"
	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/pkg/errs"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PartCommands interface {
	CreatePart(ctx context.Context, name string, unitPrice decimal.Decimal, stockOnHand int) (uuid.UUID, error)
	// AdjustStock applies a manual delta to stock on hand. It may take stock
	// below the reserved level; consume re-checks at completion time. The
	// periodic reconciliation sweep picks up any waiting bookings a
	// replenishment unblocks.
	AdjustStock(ctx context.Context, partID uuid.UUID, delta int) (*shared.PartSnapshot, error)
}

type partImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	engine   config.EngineConfig
	notifier shared.Notifier
}

func NewPartCommands(uow shared.UnitOfWork, clk clock.Clock, cfg config.Config, notifier shared.Notifier) PartCommands {
	return &partImpl{
		uow:      uow,
		clock:    clk,
		engine:   cfg.Engine,
		notifier: notifier,
	}
}

func (p *partImpl) CreatePart(ctx context.Context, name string, unitPrice decimal.Decimal, stockOnHand int) (uuid.UUID, error) {
	if stockOnHand < 0 || unitPrice.IsNegative() {
		return uuid.Nil, errs.Mark(errs.New("part requires non-negative stock and price"), ErrInvalidStockAdjustment)
	}
	id := uuid.New()
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Parts().Create(ctx, id, name, unitPrice, stockOnHand)
	})
	if err != nil {
		return uuid.Nil, markStorageErr(err)
	}
	return id, nil
}

func (p *partImpl) AdjustStock(ctx context.Context, partID uuid.UUID, delta int) (*shared.PartSnapshot, error) {
	var snap *shared.PartSnapshot
	err := p.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		snap, err = tx.Parts().AdjustStock(ctx, partID, delta)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPartNotFound
			}
			if infra.IsKind(err, infra.KindInsufficientStock) {
				return errs.Mark(err, ErrInvalidStockAdjustment)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if isTaxonomyErr(err) {
			return nil, err
		}
		return nil, markStorageErr(err)
	}

	notifyLowStock(p.notifier, p.engine.LowStockThreshold, p.clock.Now(), []*shared.PartSnapshot{snap})
	return snap, nil
}
