//go:build unit

package mechanic_test

import (
	"testing"

	"workshop-engine/internal/domain/mechanic"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

const capacityLimit = 5

func TestCanAccept(t *testing.T) {
	cases := []struct {
		name       string
		onDuty     bool
		activeJobs int
		want       bool
	}{
		{"off duty never accepts", false, 0, false},
		{"idle on duty accepts", true, 0, true},
		{"under the limit accepts", true, 4, true},
		{"at the limit refuses", true, 5, false},
		{"over the limit refuses", true, 7, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := mechanic.NewMechanic(uuid.New(), "Bea", tc.onDuty, tc.activeJobs)
			assert.Equal(t, tc.want, m.CanAccept(capacityLimit))
		})
	}
}

func TestDisplay(t *testing.T) {
	cases := []struct {
		name       string
		onDuty     bool
		activeJobs int
		want       mechanic.DisplayStatus
	}{
		{"off duty", false, 3, mechanic.DisplayOffDuty},
		{"available", true, 0, mechanic.DisplayAvailable},
		{"busy", true, 3, mechanic.DisplayBusy},
		{"overloaded at limit", true, 5, mechanic.DisplayOverloaded},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := mechanic.NewMechanic(uuid.New(), "Bea", tc.onDuty, tc.activeJobs)
			assert.Equal(t, tc.want, m.Display(capacityLimit))
		})
	}
}
