package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(StartSweeper),
)

// StartSweeper runs the periodic promotion sweep. Stock replenishments and
// other out-of-band changes have no triggering event, so a background scan
// reconciles any waiting bookings they unblocked.
func StartSweeper(lc fx.Lifecycle, cfg config.Config, promotion commands.PromotionCommands) {
	interval := cfg.Engine.SweepInterval
	if interval <= 0 {
		slog.Info("promotion sweep disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						promoted, err := promotion.PromoteAll(ctx)
						if err != nil {
							slog.Warn("promotion sweep failed", "error", err.Error())
							continue
						}
						if promoted > 0 {
							slog.Info("promotion sweep completed", "promoted", promoted)
						}
					}
				}
			}()
			slog.Info("promotion sweep started", "interval", interval)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
