package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// LowStockEvent is published whenever a ledger mutation leaves a part at or
// below the configured availability threshold.
type LowStockEvent struct {
	PartID      uuid.UUID `json:"part_id"`
	Name        string    `json:"name"`
	StockOnHand int       `json:"stock_on_hand"`
	Reserved    int       `json:"reserved"`
	Available   int       `json:"available"`
	Threshold   int       `json:"threshold"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Notifier is the fire-and-forget notification collaborator. Implementations
// must not block the engine; failures are logged, never returned to callers.
type Notifier interface {
	LowStock(ctx context.Context, evt LowStockEvent)
}
