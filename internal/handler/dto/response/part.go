package response

import (
	"github.com/google/uuid"

	"workshop-engine/internal/usecase/shared"
)

type PartStockResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	StockOnHand int       `json:"stock_on_hand"`
	Reserved    int       `json:"reserved"`
	Available   int       `json:"available"`
}

func FromPartSnapshot(s *shared.PartSnapshot) *PartStockResponse {
	return &PartStockResponse{
		ID:          s.ID,
		Name:        s.Name,
		StockOnHand: s.StockOnHand,
		Reserved:    s.Reserved,
		Available:   s.StockOnHand - s.Reserved,
	}
}
