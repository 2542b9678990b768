// Package mqtt relays farm events to an MQTT broker.
//
// The relay is optional and outbound-only: when enabled in config, every
// event broadcast to WebSocket viewers is also published as JSON to
// <topic_prefix>/<topic> (e.g. smartfarm/events/sensor_update). Downstream
// consumers such as dashboards or rule engines can subscribe without
// holding a WebSocket connection open.
//
// Delivery is best-effort. A failed publish is logged and dropped; it never
// blocks or fails the operation that produced the event.
//
// The client maintains its own connection lifecycle with auto-reconnect and
// a Last Will message so consumers can detect when the backend goes offline.
package mqtt
