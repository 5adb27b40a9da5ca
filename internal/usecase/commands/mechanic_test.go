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

func TestSetDuty(t *testing.T) {
	ctx := context.Background()
	sched := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	t.Run("coming on duty promotes the waiting queue", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(false)
		w := f.seedBooking(mech, booking.StatusWaiting, sched)

		result, err := f.mechanics.SetDuty(ctx, mech, true)
		require.NoError(t, err)

		assert.True(t, result.OnDuty)
		assert.Equal(t, 1, result.Promoted)
		promoted := f.booking(w)
		assert.Equal(t, booking.StatusReady, promoted.Status)
		assert.Nil(t, promoted.PromotedBy)
	})

	t.Run("going off duty leaves active work alone", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		active := f.seedBooking(mech, booking.StatusInProgress, sched)

		result, err := f.mechanics.SetDuty(ctx, mech, false)
		require.NoError(t, err)

		assert.False(t, result.OnDuty)
		assert.Equal(t, 0, result.Promoted)
		assert.Equal(t, booking.StatusInProgress, f.booking(active).Status)
	})

	t.Run("staying on duty does not rescan", func(t *testing.T) {
		f := newFixture()
		mech := f.seedMechanic(true)
		w := f.seedBooking(mech, booking.StatusWaiting, sched)

		result, err := f.mechanics.SetDuty(ctx, mech, true)
		require.NoError(t, err)
		assert.Equal(t, 0, result.Promoted)
		assert.Equal(t, booking.StatusWaiting, f.booking(w).Status)
	})

	t.Run("unknown mechanic", func(t *testing.T) {
		f := newFixture()
		_, err := f.mechanics.SetDuty(ctx, uuid.New(), true)
		assert.ErrorIs(t, err, commands.ErrMechanicNotFound)
	})
}

func TestCreateMechanic(t *testing.T) {
	f := newFixture()
	id, err := f.mechanics.CreateMechanic(context.Background(), "Mel", true)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	assert.True(t, f.store.mechanics[id].OnDuty)
}
