package farm

// Telemetry mirrors numeric observations to an external time-series store
// for dashboards outside this core. Writes are fire-and-forget: the core
// never reads the mirror back, and implementations must not block or
// surface errors into the ingestion path.
type Telemetry interface {
	WriteSensorValue(channel string, value float64)
	WriteActuatorState(name string, on bool)
}
