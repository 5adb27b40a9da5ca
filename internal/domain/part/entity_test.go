//go:build unit

package part_test

import (
	"testing"

	"workshop-engine/internal/domain/part"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPart(t *testing.T, stock, reserved int) *part.Part {
	t.Helper()
	p, err := part.NewPart(uuid.New(), "brake pad", decimal.NewFromFloat(19.90), stock, reserved)
	require.NoError(t, err)
	return p
}

func TestNewPart(t *testing.T) {
	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := part.NewPart(uuid.New(), "brake pad", decimal.Zero, -1, 0)
		assert.ErrorIs(t, err, part.ErrNegativeStock)
	})

	t.Run("rejects negative reserved", func(t *testing.T) {
		_, err := part.NewPart(uuid.New(), "brake pad", decimal.Zero, 0, -1)
		assert.ErrorIs(t, err, part.ErrNegativeReserved)
	})
}

func TestAvailable(t *testing.T) {
	t.Run("reserved can exceed stock", func(t *testing.T) {
		p := newPart(t, 5, 7)
		assert.Equal(t, -2, p.Available())
	})

	t.Run("own reservation is excluded from scarcity", func(t *testing.T) {
		// stock 2, reserved 4, booking holds 4 of those: promotion would see
		// stock fully claimable but still short of the requirement.
		p := newPart(t, 2, 4)
		assert.Equal(t, 2, p.AvailableFor(4))
	})
}

func TestLineCost(t *testing.T) {
	p := newPart(t, 10, 0)
	assert.True(t, p.LineCost(3).Equal(decimal.NewFromFloat(59.70)))
}

func TestIsLowStock(t *testing.T) {
	cases := []struct {
		name      string
		stock     int
		reserved  int
		threshold int
		want      bool
	}{
		{"above threshold", 10, 2, 3, false},
		{"at threshold", 5, 2, 3, true},
		{"negative available", 2, 5, 3, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := newPart(t, tc.stock, tc.reserved)
			assert.Equal(t, tc.want, p.IsLowStock(tc.threshold))
		})
	}
}
