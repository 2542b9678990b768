package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteSensorValue records a single environment reading.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Dropped silently when not connected, mirroring the best-effort contract
// of the rest of the fan-out path.
//
// Parameters:
//   - channel: The sensor channel (e.g., "temperature", "soil_moisture")
//   - value: The measured value
//
// Example:
//
//	client.WriteSensorValue("temperature", 24.5)
//	client.WriteSensorValue("soil_moisture", 41.0)
func (c *Client) WriteSensorValue(channel string, value float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"sensor_readings",
		map[string]string{
			"channel": channel,
		},
		map[string]interface{}{
			"value": value,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteActuatorState records a reported actuator on/off state.
//
// States are stored as 0/1 so dashboards can graph duty cycles alongside
// the sensor series.
//
// Parameters:
//   - name: Actuator name (e.g., "fan", "pump", "led")
//   - on: The reported state
func (c *Client) WriteActuatorState(name string, on bool) {
	if !c.IsConnected() {
		return
	}

	state := 0
	if on {
		state = 1
	}

	point := write.NewPoint(
		"actuator_states",
		map[string]string{
			"actuator": name,
		},
		map[string]interface{}{
			"state": state,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
