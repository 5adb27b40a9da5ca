//go:build unit

package commands_test

import (
	"context"
	"testing"

	"workshop-engine/internal/pkg/errs"
	"workshop-engine/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePart(t *testing.T) {
	ctx := context.Background()

	t.Run("creates with initial stock", func(t *testing.T) {
		f := newFixture()
		id, err := f.parts.CreatePart(ctx, "brake pad", decimal.RequireFromString("19.90"), 10)
		require.NoError(t, err)
		assert.Equal(t, 10, f.part(id).StockOnHand)
		assert.Equal(t, 0, f.part(id).Reserved)
	})

	t.Run("rejects negative initial stock", func(t *testing.T) {
		f := newFixture()
		_, err := f.parts.CreatePart(ctx, "brake pad", decimal.Zero, -1)
		assert.True(t, errs.Is(err, commands.ErrInvalidStockAdjustment), "got %v", err)
	})
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()

	t.Run("applies a replenishment", func(t *testing.T) {
		f := newFixture()
		pid := f.seedPart("10.00", 2, 4)

		snap, err := f.parts.AdjustStock(ctx, pid, 5)
		require.NoError(t, err)
		assert.Equal(t, 7, snap.StockOnHand)
		// Replenishment never touches reservations.
		assert.Equal(t, 4, snap.Reserved)
	})

	t.Run("allows drawing stock below the reserved level", func(t *testing.T) {
		f := newFixture()
		pid := f.seedPart("10.00", 5, 3)

		snap, err := f.parts.AdjustStock(ctx, pid, -4)
		require.NoError(t, err)
		assert.Equal(t, 1, snap.StockOnHand)
	})

	t.Run("refuses to take stock negative", func(t *testing.T) {
		f := newFixture()
		pid := f.seedPart("10.00", 2, 0)

		_, err := f.parts.AdjustStock(ctx, pid, -3)
		assert.True(t, errs.Is(err, commands.ErrInvalidStockAdjustment), "got %v", err)
		assert.Equal(t, 2, f.part(pid).StockOnHand)
	})

	t.Run("unknown part", func(t *testing.T) {
		f := newFixture()
		_, err := f.parts.AdjustStock(ctx, uuid.New(), 1)
		assert.ErrorIs(t, err, commands.ErrPartNotFound)
	})
}
