package response

import (
	"github.com/google/uuid"

	"workshop-engine/internal/usecase/commands"
)

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type SetDutyResponse struct {
	ID       uuid.UUID `json:"id"`
	OnDuty   bool      `json:"on_duty"`
	Promoted int       `json:"promoted"`
}

type PromotionResponse struct {
	Promoted int `json:"promoted"`
}

func FromSetDutyResult(r *commands.SetDutyResult) *SetDutyResponse {
	return &SetDutyResponse{
		ID:       r.MechanicID,
		OnDuty:   r.OnDuty,
		Promoted: r.Promoted,
	}
}
