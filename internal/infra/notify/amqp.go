package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"workshop-engine/internal/pkg/config"
	"workshop-engine/internal/pkg/errs"
	"workshop-engine/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

const lowStockRoutingKey = "stock.low"

// AMQPNotifier publishes stock events to a topic exchange. The engine never
// waits on delivery; publish errors are logged and dropped.
type AMQPNotifier struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQPNotifier(cfg config.AMQPConfig) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errs.Wrap(err, "failed to dial AMQP broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errs.Wrap(err, "failed to open AMQP channel")
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, errs.Wrap(err, "failed to declare AMQP exchange")
	}
	return &AMQPNotifier{conn: conn, ch: ch, exchange: cfg.Exchange}, nil
}

func (n *AMQPNotifier) LowStock(ctx context.Context, evt shared.LowStockEvent) {
	body, err := json.Marshal(evt)
	if err != nil {
		slog.Error("failed to marshal low stock event", "part_id", evt.PartID, "error", err.Error())
		return
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = n.ch.PublishWithContext(pubCtx, n.exchange, lowStockRoutingKey, false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   evt.OccurredAt,
		Body:        body,
	})
	if err != nil {
		slog.Error("failed to publish low stock event",
			"part_id", evt.PartID,
			"available", evt.Available,
			"error", err.Error())
		return
	}
	slog.Debug("published low stock event", "part_id", evt.PartID, "available", evt.Available)
}

func (n *AMQPNotifier) Close() {
	if n.ch != nil {
		_ = n.ch.Close()
	}
	if n.conn != nil {
		_ = n.conn.Close()
	}
}
