package request

import (
	"errors"
	"strings"
	"time"

	"workshop-engine/internal/domain/booking"
	"workshop-engine/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingPartLine struct {
	PartID   uuid.UUID `json:"part_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
}

type CreateBookingRequest struct {
	CustomerName string            `json:"customer_name" binding:"required"`
	Vehicle      string            `json:"vehicle" binding:"required"`
	MechanicID   uuid.UUID         `json:"mechanic_id" binding:"required"`
	ScheduledAt  time.Time         `json:"scheduled_at" binding:"required"`
	Parts        []BookingPartLine `json:"parts" binding:"required,min=1,dive"`
}

func (r CreateBookingRequest) ToCommand() (commands.AdmitBooking, error) {
	seen := make(map[uuid.UUID]struct{}, len(r.Parts))
	lines := make([]booking.PartLine, 0, len(r.Parts))
	for _, p := range r.Parts {
		if _, dup := seen[p.PartID]; dup {
			return commands.AdmitBooking{}, errors.New("duplicate part line: " + p.PartID.String())
		}
		seen[p.PartID] = struct{}{}
		line, err := booking.NewPartLine(p.PartID, p.Quantity)
		if err != nil {
			return commands.AdmitBooking{}, err
		}
		lines = append(lines, line)
	}
	return commands.AdmitBooking{
		CustomerName: strings.TrimSpace(r.CustomerName),
		Vehicle:      strings.TrimSpace(r.Vehicle),
		MechanicID:   r.MechanicID,
		ScheduledAt:  r.ScheduledAt,
		Lines:        lines,
	}, nil
}

type TransitionRequest struct {
	To string `json:"to" binding:"required"`
}
