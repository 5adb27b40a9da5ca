package response

import (
	"github.com/google/uuid"

	"workshop-engine/internal/usecase/commands"
)

type AdmissionResponse struct {
	ID                uuid.UUID `json:"id"`
	Status            string    `json:"status"`
	InsufficientParts bool      `json:"insufficient_parts"`
	CapacityBlocked   bool      `json:"capacity_blocked"`
	EstimatedCost     string    `json:"estimated_cost"`
}

type TransitionResponse struct {
	ID       uuid.UUID `json:"id"`
	From     string    `json:"from"`
	To       string    `json:"to"`
	Promoted int       `json:"promoted"`
}

type UndoResponse struct {
	ID              uuid.UUID `json:"id"`
	RestoredStatus  string    `json:"restored_status"`
	CascadeReverted int       `json:"cascade_reverted"`
}

func FromAdmissionResult(r *commands.AdmissionResult) *AdmissionResponse {
	return &AdmissionResponse{
		ID:                r.BookingID,
		Status:            r.Status.String(),
		InsufficientParts: r.InsufficientParts,
		CapacityBlocked:   r.CapacityBlocked,
		EstimatedCost:     r.EstimatedCost.StringFixed(2),
	}
}

func FromTransitionResult(r *commands.TransitionResult) *TransitionResponse {
	return &TransitionResponse{
		ID:       r.BookingID,
		From:     r.From.String(),
		To:       r.To.String(),
		Promoted: r.Promoted,
	}
}

func FromUndoResult(r *commands.UndoResult) *UndoResponse {
	return &UndoResponse{
		ID:              r.BookingID,
		RestoredStatus:  r.RestoredStatus.String(),
		CascadeReverted: r.CascadeReverted,
	}
}
