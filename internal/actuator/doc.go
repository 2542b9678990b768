// Package actuator provides the actuator state model, the command audit log,
// and their persistence.
//
// Each actuator carries three independently-owned boolean fields:
//
//   - current_state: what the device last reported it is actually doing.
//     Written only by device reports (ingestion), never by operators.
//   - target_state: what the operator or automation wants it to do.
//     Written only by commands, never by device reports.
//   - is_auto_mode: ownership flag. True means automation is the intended
//     authority over target_state; false means an operator owns it.
//
// The auto-mode flag is NOT enforced as a write gate here: a manual command
// updates target_state even while is_auto_mode is true. Whether the device
// honours a manual target in auto mode is decided on the device side. This
// core only records which executor asked for what, in the command log.
package actuator
