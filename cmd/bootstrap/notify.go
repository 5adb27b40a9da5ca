package bootstrap

import (
	"context"

	"workshop-engine/internal/infra/notify"
	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/usecase/shared"

	"go.uber.org/fx"
)

var NotifierModule = fx.Module("notifier",
	fx.Provide(
		NewNotifier,
	),
)

// NewNotifier publishes over AMQP when a broker URL is configured and falls
// back to log output otherwise.
func NewNotifier(lc fx.Lifecycle, cfg config.Config) (shared.Notifier, error) {
	if cfg.AMQP.URL == "" {
		return notify.NewLogNotifier(), nil
	}

	n, err := notify.NewAMQPNotifier(cfg.AMQP)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			n.Close()
			return nil
		},
	})
	return n, nil
}
