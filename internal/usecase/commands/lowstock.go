package commands

import (
	"context"
	"time"

	"workshop-engine/internal/domain/part"
	"workshop-engine/internal/usecase/shared"
)

// notifyLowStock fires the notification collaborator for every part whose
// availability sits at or below the threshold after a ledger mutation. It
// runs detached from the request; the engine never waits on it.
func notifyLowStock(notifier shared.Notifier, threshold int, now time.Time, snaps []*shared.PartSnapshot) {
	var events []shared.LowStockEvent
	for _, snap := range snaps {
		p, err := part.NewPart(snap.ID, snap.Name, snap.UnitPrice, snap.StockOnHand, snap.Reserved)
		if err != nil {
			continue
		}
		if !p.IsLowStock(threshold) {
			continue
		}
		events = append(events, shared.LowStockEvent{
			PartID:      p.ID(),
			Name:        p.Name(),
			StockOnHand: p.StockOnHand(),
			Reserved:    p.Reserved(),
			Available:   p.Available(),
			Threshold:   threshold,
			OccurredAt:  now,
		})
	}
	if len(events) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		for _, evt := range events {
			notifier.LowStock(ctx, evt)
		}
	}()
}
