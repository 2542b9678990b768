package farm

import (
	"time"

	"github.com/evryt-goodday/smartfarm-core/internal/actuator"
)

// Fan-out topics.
const (
	// TopicSensorUpdate carries a consolidated device report; published once
	// per ingestion call.
	TopicSensorUpdate = "sensor_update"

	// TopicActuatorUpdate carries an applied operator command or mode change.
	TopicActuatorUpdate = "actuator_update"

	// TopicSnapshot carries a full state snapshot, sent to newly connected
	// viewers.
	TopicSnapshot = "snapshot"
)

// TelemetryReport is the payload a device submits on its reporting cycle.
//
// All fields are optional and independent: any subset may be present, and
// absent fields leave the corresponding stored values untouched. The
// *_auto fields are informational only - they describe what mode the device
// believes it is in, are carried into the fan-out payload, and are never
// persisted (mode ownership belongs to the command path).
type TelemetryReport struct {
	Temp *float64 `json:"temp,omitempty"`
	Humi *float64 `json:"humi,omitempty"`
	Soil *float64 `json:"soil,omitempty"`

	FanState  *bool `json:"fan_state,omitempty"`
	PumpState *bool `json:"pump_state,omitempty"`
	LEDState  *bool `json:"led_state,omitempty"`

	FanAuto  *bool `json:"fan_auto,omitempty"`
	PumpAuto *bool `json:"pump_auto,omitempty"`
	LEDAuto  *bool `json:"led_auto,omitempty"`
}

// ActuatorReport is one actuator's slice of a device report as broadcast
// to viewers. Fields the device did not supply are omitted from the JSON
// payload rather than serialised as nulls.
type ActuatorReport struct {
	State *bool `json:"state,omitempty"`
	Auto  *bool `json:"auto,omitempty"`
}

// ActuatorReportSet groups the per-actuator report slices.
type ActuatorReportSet struct {
	Fan  ActuatorReport `json:"fan"`
	Pump ActuatorReport `json:"pump"`
	LED  ActuatorReport `json:"led"`
}

// SensorUpdate is the consolidated payload broadcast to viewers after every
// ingestion call. It reflects what the device reported, not what the store
// holds; the timestamp is server-assigned.
type SensorUpdate struct {
	Temp      *float64          `json:"temp,omitempty"`
	Humi      *float64          `json:"humi,omitempty"`
	Soil      *float64          `json:"soil,omitempty"`
	Actuators ActuatorReportSet `json:"actuators"`
	Timestamp time.Time         `json:"timestamp"`
}

// Update builds the broadcast payload for this report with the given
// server-assigned timestamp.
func (r TelemetryReport) Update(ts time.Time) SensorUpdate {
	return SensorUpdate{
		Temp: r.Temp,
		Humi: r.Humi,
		Soil: r.Soil,
		Actuators: ActuatorReportSet{
			Fan:  ActuatorReport{State: r.FanState, Auto: r.FanAuto},
			Pump: ActuatorReport{State: r.PumpState, Auto: r.PumpAuto},
			LED:  ActuatorReport{State: r.LEDState, Auto: r.LEDAuto},
		},
		Timestamp: ts,
	}
}

// CommandRequest is an operator command against one actuator. Command and
// IsAuto are independent: either, both, or neither may be present.
type CommandRequest struct {
	ActuatorID actuator.ID `json:"actuator_id"`
	Command    *string     `json:"command,omitempty"`
	IsAuto     *bool       `json:"is_auto,omitempty"`
}

// ActuatorUpdate is broadcast to viewers after a command call changes
// observable state.
type ActuatorUpdate struct {
	ActuatorID  actuator.ID `json:"actuator_id"`
	TargetState *bool       `json:"target_state,omitempty"`
	IsAutoMode  *bool       `json:"is_auto_mode,omitempty"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Snapshot is a point-in-time view of all sensor latest values and all
// actuator states, served to newly connected viewers.
//
// Channels with no readings yet report 0 - a documented zero-value default,
// not an error. The four underlying reads are independent, so a snapshot
// taken during concurrent writes may straddle them; this is an accepted
// trade-off.
type Snapshot struct {
	Temp      float64          `json:"temp"`
	Humi      float64          `json:"humi"`
	Soil      float64          `json:"soil"`
	Actuators []actuator.State `json:"actuators"`
}

// StatusReport is a device's execution result report. It is accepted and
// logged but not persisted; see the Commander documentation.
type StatusReport struct {
	CommandID string         `json:"commandId"`
	Status    string         `json:"status"`
	Actuators map[string]any `json:"actuators"`
}
