package notify

import (
	"context"
	"log/slog"

	"workshop-engine/internal/usecase/shared"
)

// LogNotifier stands in when no broker is configured.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) LowStock(_ context.Context, evt shared.LowStockEvent) {
	slog.Warn("part stock low",
		"part_id", evt.PartID,
		"name", evt.Name,
		"stock_on_hand", evt.StockOnHand,
		"reserved", evt.Reserved,
		"available", evt.Available,
		"threshold", evt.Threshold)
}
