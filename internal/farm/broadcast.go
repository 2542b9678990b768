package farm

// Broadcaster delivers events to all currently connected viewers.
//
// Delivery is best-effort: no queuing for disconnected viewers, no delivery
// guarantee, and no ordering guarantee across independent publishers beyond
// the order calls are issued to the transport. Implementations must not block
// the caller. Broadcasters are purely observational and are never consulted
// for authority decisions.
type Broadcaster interface {
	Broadcast(topic string, payload any)
}

// MultiBroadcaster fans a single event out to several broadcasters,
// e.g. the WebSocket hub and the MQTT event relay.
type MultiBroadcaster []Broadcaster

// Broadcast delivers the event to every wrapped broadcaster in order.
func (m MultiBroadcaster) Broadcast(topic string, payload any) {
	for _, b := range m {
		b.Broadcast(topic, payload)
	}
}

// NopBroadcaster discards all events. Useful in tests and tools that run
// the core services without a transport.
type NopBroadcaster struct{}

// Broadcast discards the event.
func (NopBroadcaster) Broadcast(string, any) {}
