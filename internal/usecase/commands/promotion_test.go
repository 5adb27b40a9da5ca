//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"workshop-engine/internal/domain/booking"
	"workshop-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromote(t *testing.T) {
	ctx := context.Background()
	sched := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("promotes in schedule order until capacity runs out", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		for i := 0; i < f.cfg.Engine.CapacityLimit-1; i++ {
			f.seedBooking(mech, booking.StatusInProgress, sched)
		}
		later := f.seedBooking(mech, booking.StatusWaiting, sched.Add(2*time.Hour))
		earlier := f.seedBooking(mech, booking.StatusWaiting, sched.Add(time.Hour))

		promoted, err := f.promotion.Promote(ctx, mech, nil)
		require.NoError(t, err)

		// One free slot: the earlier-scheduled booking takes it.
		assert.Equal(t, 1, promoted)
		assert.Equal(t, booking.StatusReady, f.booking(earlier).Status)
		assert.Equal(t, booking.StatusWaiting, f.booking(later).Status)
	})

	t.Run("a capacity shortfall stops the scan for everyone", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		for i := 0; i < f.cfg.Engine.CapacityLimit; i++ {
			f.seedBooking(mech, booking.StatusInProgress, sched)
		}
		w := f.seedBooking(mech, booking.StatusWaiting, sched.Add(time.Hour))

		promoted, err := f.promotion.Promote(ctx, mech, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, promoted)
		assert.Equal(t, booking.StatusWaiting, f.booking(w).Status)
	})

	t.Run("a parts shortfall skips only that booking", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		scarce := f.seedPart("10.00", 1, 4)
		plentiful := f.seedPart("10.00", 10, 2)
		first := f.seedBooking(mech, booking.StatusWaiting, sched.Add(time.Hour),
			booking.PartLine{PartID: scarce, Quantity: 4})
		second := f.seedBooking(mech, booking.StatusWaiting, sched.Add(2*time.Hour),
			booking.PartLine{PartID: plentiful, Quantity: 2})

		promoted, err := f.promotion.Promote(ctx, mech, nil)
		require.NoError(t, err)

		assert.Equal(t, 1, promoted)
		assert.Equal(t, booking.StatusWaiting, f.booking(first).Status)
		assert.Equal(t, booking.StatusReady, f.booking(second).Status)
	})

	t.Run("a repeat scan with no state change promotes nothing", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		f.seedBooking(mech, booking.StatusWaiting, sched)
		f.seedBooking(mech, booking.StatusWaiting, sched.Add(time.Hour))

		first, err := f.promotion.Promote(ctx, mech, nil)
		require.NoError(t, err)
		require.Equal(t, 2, first)

		second, err := f.promotion.Promote(ctx, mech, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, second)
	})

	t.Run("off-duty mechanic promotes nothing", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(false)
		w := f.seedBooking(mech, booking.StatusWaiting, sched)

		promoted, err := f.promotion.Promote(ctx, mech, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, promoted)
		assert.Equal(t, booking.StatusWaiting, f.booking(w).Status)
	})

	t.Run("records the trigger as the causal edge", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		w := f.seedBooking(mech, booking.StatusWaiting, sched)
		trigger := uuid.New()

		promoted, err := f.promotion.Promote(ctx, mech, &trigger)
		require.NoError(t, err)
		require.Equal(t, 1, promoted)

		stored := f.booking(w)
		require.NotNil(t, stored.PromotedBy)
		assert.Equal(t, trigger, *stored.PromotedBy)
	})

	t.Run("unknown mechanic", func(t *testing.T) {
		f := newFixture()
		_, err := f.promotion.Promote(ctx, uuid.New(), nil)
		assert.ErrorIs(t, err, commands.ErrMechanicNotFound)
	})
}

func TestPromoteAll(t *testing.T) {
	ctx := context.Background()
	sched := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("sweeps every mechanic independently", func(t *testing.T) {
		f := newFixture()
		m1 := f.seedMechanic(true)
		m2 := f.seedMechanic(true)
		m3 := f.seedMechanic(false)
		b1 := f.seedBooking(m1, booking.StatusWaiting, sched)
		b2 := f.seedBooking(m2, booking.StatusWaiting, sched)
		b3 := f.seedBooking(m3, booking.StatusWaiting, sched)

		promoted, err := f.promotion.PromoteAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, 2, promoted)
		assert.Equal(t, booking.StatusReady, f.booking(b1).Status)
		assert.Equal(t, booking.StatusReady, f.booking(b2).Status)
		assert.Equal(t, booking.StatusWaiting, f.booking(b3).Status)
	})

	t.Run("sweep promotions carry no causal edge", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		w := f.seedBooking(mech, booking.StatusWaiting, sched)

		_, err := f.promotion.PromoteAll(ctx)
		require.NoError(t, err)
		assert.Nil(t, f.booking(w).PromotedBy)
	})
}
