package actuator

import "time"

// ID identifies an actuator. IDs are fixed at provisioning time and match
// what the device firmware uses in its polling requests.
type ID int

// Provisioned actuators.
const (
	Fan  ID = 1
	Pump ID = 2
	LED  ID = 3
)

// Valid reports whether the ID refers to a provisioned actuator.
func (id ID) Valid() bool {
	switch id {
	case Fan, Pump, LED:
		return true
	}
	return false
}

// String returns the actuator's short name.
func (id ID) String() string {
	switch id {
	case Fan:
		return "fan"
	case Pump:
		return "pump"
	case LED:
		return "led"
	default:
		return "unknown"
	}
}

// State is the full persisted record for one actuator.
//
// CurrentState is written only by device reports; TargetState and IsAutoMode
// only by commands. See the package documentation for the ownership rules.
type State struct {
	ID           ID        `json:"actuator_id"`
	Name         string    `json:"name"`
	CurrentState bool      `json:"current_state"`
	TargetState  bool      `json:"target_state"`
	IsAutoMode   bool      `json:"is_auto_mode"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ControlState is the subset of State delivered to a polling device:
// the authoritative desired state and mode ownership flag.
type ControlState struct {
	TargetState bool `json:"target_state"`
	IsAutoMode  bool `json:"is_auto_mode"`
}

// Commands and mode changes recorded in the audit log.
const (
	CommandOn         = "ON"
	CommandOff        = "OFF"
	CommandAutoMode   = "AUTO_MODE"
	CommandManualMode = "MANUAL_MODE"
)

// Executors recorded in the audit log.
const (
	ExecutorUser   = "USER"
	ExecutorSystem = "SYSTEM"
)

// LogEntry is a single append-only audit record of an accepted command or
// mode change. Entries are immutable once created and retained indefinitely.
type LogEntry struct {
	ID         string    `json:"id"`
	ActuatorID ID        `json:"actuator_id"`
	Command    string    `json:"command"`
	Executor   string    `json:"executor"`
	CreatedAt  time.Time `json:"created_at"`
}
