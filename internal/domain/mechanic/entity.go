package mechanic

import (
	"github.com/google/uuid"
)

type DisplayStatus string

const (
	DisplayOffDuty    DisplayStatus = "off_duty"
	DisplayAvailable  DisplayStatus = "available"
	DisplayBusy       DisplayStatus = "busy"
	DisplayOverloaded DisplayStatus = "overloaded"
)

// Mechanic holds the explicit duty flag and the derived count of active
// (ready or in-progress) bookings. The count is never stored; it is computed
// from the booking table inside the same transaction that uses it.
type Mechanic struct {
	id         uuid.UUID
	name       string
	onDuty     bool
	activeJobs int
}

func NewMechanic(id uuid.UUID, name string, onDuty bool, activeJobs int) *Mechanic {
	if activeJobs < 0 {
		activeJobs = 0
	}
	return &Mechanic{id: id, name: name, onDuty: onDuty, activeJobs: activeJobs}
}

// CanAccept reports whether a new active booking fits under the capacity
// limit. Off-duty mechanics never accept.
func (m *Mechanic) CanAccept(capacityLimit int) bool {
	return m.onDuty && m.activeJobs < capacityLimit
}

func (m *Mechanic) Display(capacityLimit int) DisplayStatus {
	switch {
	case !m.onDuty:
		return DisplayOffDuty
	case m.activeJobs == 0:
		return DisplayAvailable
	case m.activeJobs < capacityLimit:
		return DisplayBusy
	default:
		return DisplayOverloaded
	}
}

func (m *Mechanic) ID() uuid.UUID   { return m.id }
func (m *Mechanic) Name() string    { return m.name }
func (m *Mechanic) OnDuty() bool    { return m.onDuty }
func (m *Mechanic) ActiveJobs() int { return m.activeJobs }
