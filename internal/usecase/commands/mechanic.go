package commands

import (
	"context"

	"workshop-engine/internal/infra"
	"workshop-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type SetDutyResult struct {
	MechanicID uuid.UUID
	OnDuty     bool
	// Promoted is how many waiting bookings the duty flip unlocked.
	Promoted int
}

type MechanicCommands interface {
	CreateMechanic(ctx context.Context, name string, onDuty bool) (uuid.UUID, error)
	// SetDuty flips the duty flag. Coming on duty triggers a promotion scan
	// with no causal edge (capacity appeared, no booking freed it).
	SetDuty(ctx context.Context, mechanicID uuid.UUID, onDuty bool) (*SetDutyResult, error)
}

type mechanicImpl struct {
	uow       shared.UnitOfWork
	promotion PromotionCommands
}

func NewMechanicCommands(uow shared.UnitOfWork, promotion PromotionCommands) MechanicCommands {
	return &mechanicImpl{uow: uow, promotion: promotion}
}

func (m *mechanicImpl) CreateMechanic(ctx context.Context, name string, onDuty bool) (uuid.UUID, error) {
	id := uuid.New()
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Mechanics().Create(ctx, id, name, onDuty)
	})
	if err != nil {
		return uuid.Nil, markStorageErr(err)
	}
	return id, nil
}

func (m *mechanicImpl) SetDuty(ctx context.Context, mechanicID uuid.UUID, onDuty bool) (*SetDutyResult, error) {
	var wasOnDuty bool
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Mechanics().LockWithActiveCount(ctx, mechanicID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrMechanicNotFound
			}
			return err
		}
		wasOnDuty = snap.OnDuty
		return tx.Mechanics().SetDuty(ctx, mechanicID, onDuty)
	})
	if err != nil {
		if isTaxonomyErr(err) {
			return nil, err
		}
		return nil, markStorageErr(err)
	}

	result := &SetDutyResult{MechanicID: mechanicID, OnDuty: onDuty}
	if onDuty && !wasOnDuty {
		promoted, err := m.promotion.Promote(ctx, mechanicID, nil)
		if err != nil {
			return nil, err
		}
		result.Promoted = promoted
	}
	return result, nil
}
