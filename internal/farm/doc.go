// Package farm contains the core coordination services for Smart Farm Core:
//
//   - Ingestor: accepts device-reported sensor readings and actuator status,
//     persists them, and publishes a consolidated update to viewers.
//   - Commander: applies operator commands (manual on/off, mode toggle) and
//     records them in the command audit log.
//   - Snapshotter: assembles a point-in-time view of all sensor latest values
//     and actuator states for newly connected viewers.
//
// The services hold no transport or storage details themselves: persistence
// goes through the sensor and actuator repositories, and fan-out goes through
// the Broadcaster interface injected at construction time. This keeps the
// core testable without a live WebSocket hub or MQTT broker.
//
// Write ownership is split by service: the Ingestor writes sensor readings
// and actuator current_state only; the Commander writes target_state and
// is_auto_mode only. Device-reported mode fields that arrive alongside status
// reports are carried into the fan-out payload but never persisted - device
// observations must not silently overwrite operator or automation intent.
package farm
