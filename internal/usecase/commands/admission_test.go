//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"workshop-engine/internal/domain/booking"
	"workshop-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func admitCmd(mechanicID uuid.UUID, lines ...booking.PartLine) commands.AdmitBooking {
	return commands.AdmitBooking{
		CustomerName: "Alice",
		Vehicle:      "SUV-01",
		MechanicID:   mechanicID,
		ScheduledAt:  time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Lines:        lines,
	}
}

func TestAdmit(t *testing.T) {
	ctx := context.Background()

	t.Run("everything available admits ready", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		pid := f.seedPart("19.90", 10, 0)

		result, err := f.admission.Admit(ctx, admitCmd(mech, booking.PartLine{PartID: pid, Quantity: 2}))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusReady, result.Status)
		assert.False(t, result.InsufficientParts)
		assert.False(t, result.CapacityBlocked)
		assert.True(t, result.EstimatedCost.Equal(decimal.RequireFromString("39.80")))
		assert.Equal(t, 2, f.part(pid).Reserved)

		stored := f.booking(result.BookingID)
		require.NotNil(t, stored)
		assert.Equal(t, booking.StatusReady, stored.Status)
	})

	t.Run("parts shortfall admits waiting but still reserves", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		pid := f.seedPart("10.00", 5, 3)

		result, err := f.admission.Admit(ctx, admitCmd(mech, booking.PartLine{PartID: pid, Quantity: 4}))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusWaiting, result.Status)
		assert.True(t, result.InsufficientParts)
		assert.False(t, result.CapacityBlocked)
		// Reservation exceeds stock: the waiting booking holds its claim.
		assert.Equal(t, 7, f.part(pid).Reserved)
		assert.Equal(t, 5, f.part(pid).StockOnHand)
	})

	t.Run("full mechanic admits waiting", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		for i := 0; i < f.cfg.Engine.CapacityLimit; i++ {
			f.seedBooking(mech, booking.StatusReady, time.Now())
		}
		pid := f.seedPart("10.00", 10, 0)

		result, err := f.admission.Admit(ctx, admitCmd(mech, booking.PartLine{PartID: pid, Quantity: 1}))
		require.NoError(t, err)

		assert.Equal(t, booking.StatusWaiting, result.Status)
		assert.True(t, result.CapacityBlocked)
		assert.False(t, result.InsufficientParts)
		assert.Equal(t, 1, f.part(pid).Reserved)
	})

	t.Run("off-duty mechanic admits waiting", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(false)
		pid := f.seedPart("10.00", 10, 0)

		result, err := f.admission.Admit(ctx, admitCmd(mech, booking.PartLine{PartID: pid, Quantity: 1}))
		require.NoError(t, err)
		assert.Equal(t, booking.StatusWaiting, result.Status)
		assert.True(t, result.CapacityBlocked)
	})

	t.Run("unknown mechanic", func(t *testing.T) {
		f := newFixture()
		pid := f.seedPart("10.00", 10, 0)

		_, err := f.admission.Admit(ctx, admitCmd(uuid.New(), booking.PartLine{PartID: pid, Quantity: 1}))
		assert.ErrorIs(t, err, commands.ErrMechanicNotFound)
	})

	t.Run("unknown part leaves no booking behind", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)

		_, err := f.admission.Admit(ctx, admitCmd(mech, booking.PartLine{PartID: uuid.New(), Quantity: 1}))
		assert.ErrorIs(t, err, commands.ErrPartNotFound)
		assert.Empty(t, f.store.bookings)
	})
}
