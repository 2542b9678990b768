package mqtt

import (
	"encoding/json"

	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/logging"
)

// EventRelay publishes farm events to the MQTT broker.
//
// It satisfies the farm.Broadcaster interface so it can be composed with
// the WebSocket hub behind a single fan-out point. Events are published
// to <topic_prefix>/<topic> as JSON.
//
// Delivery is best-effort: marshal or publish failures are logged and the
// event is dropped. The relay never blocks the caller beyond the publish
// acknowledgment timeout.
type EventRelay struct {
	client *Client
	prefix string
	qos    byte
	logger *logging.Logger
}

// NewEventRelay creates a relay over a connected client.
func NewEventRelay(client *Client, logger *logging.Logger) *EventRelay {
	return &EventRelay{
		client: client,
		prefix: client.cfg.TopicPrefix,
		qos:    byte(client.cfg.QoS),
		logger: logger.With("component", "mqtt_relay"),
	}
}

// Broadcast publishes one event. Failures are logged, never returned;
// a down broker must not fail device ingestion or operator commands.
func (r *EventRelay) Broadcast(topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		r.logger.Error("failed to marshal event", "topic", topic, "error", err)
		return
	}

	if err := r.client.Publish(r.prefix+"/"+topic, data, r.qos, false); err != nil {
		r.logger.Warn("failed to publish event", "topic", topic, "error", err)
	}
}
