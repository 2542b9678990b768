package farm

import (
	"context"
	"fmt"
	"time"

	"github.com/evryt-goodday/smartfarm-core/internal/actuator"
	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/logging"
	"github.com/evryt-goodday/smartfarm-core/internal/sensor"
)

// Ingestor accepts device reports, persists them, and republishes a
// consolidated update to viewers.
//
// Persistence is split by ownership: present sensor values are appended as
// new readings, present actuator states update current_state only. The
// *_auto fields in a report are never persisted here - they ride along into
// the broadcast payload as what the device believes its mode is.
type Ingestor struct {
	sensors     sensor.Repository
	actuators   actuator.Repository
	broadcaster Broadcaster
	telemetry   Telemetry // optional; nil disables the mirror
	logger      *logging.Logger
}

// NewIngestor creates an Ingestor with the given collaborators.
// The broadcaster is required; pass NopBroadcaster to run without fan-out.
func NewIngestor(sensors sensor.Repository, actuators actuator.Repository, broadcaster Broadcaster, logger *logging.Logger) *Ingestor {
	return &Ingestor{
		sensors:     sensors,
		actuators:   actuators,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// SetTelemetry enables mirroring of ingested values to an external
// time-series store. Must be called before the first Ingest.
func (i *Ingestor) SetTelemetry(t Telemetry) {
	i.telemetry = t
}

// Ingest processes one device report.
//
// For each present sensor value a new reading is appended; for each present
// actuator state only current_state is updated. The first store error aborts
// the remaining writes and is returned to the caller - there is no retry,
// the device re-sends on its next cycle.
//
// Exactly one sensor_update event is broadcast per call, carrying whatever
// fields were present (absent fields are omitted from the payload), with a
// server-assigned timestamp. The broadcast happens even when a sub-write
// failed, so viewers still see what the device reported.
func (i *Ingestor) Ingest(ctx context.Context, report TelemetryReport) error {
	var firstErr error

	sensorValues := []struct {
		channel sensor.Channel
		value   *float64
	}{
		{sensor.ChannelTemperature, report.Temp},
		{sensor.ChannelHumidity, report.Humi},
		{sensor.ChannelSoilMoisture, report.Soil},
	}
	for _, sv := range sensorValues {
		if sv.value == nil || firstErr != nil {
			continue
		}
		if err := i.sensors.Append(ctx, sv.channel, *sv.value); err != nil {
			firstErr = fmt.Errorf("appending %s reading: %w", sv.channel, err)
			continue
		}
		if i.telemetry != nil {
			i.telemetry.WriteSensorValue(string(sv.channel), *sv.value)
		}
	}

	actuatorStates := []struct {
		id    actuator.ID
		state *bool
	}{
		{actuator.Fan, report.FanState},
		{actuator.Pump, report.PumpState},
		{actuator.LED, report.LEDState},
	}
	for _, as := range actuatorStates {
		if as.state == nil || firstErr != nil {
			continue
		}
		if err := i.actuators.SetCurrentState(ctx, as.id, *as.state); err != nil {
			firstErr = fmt.Errorf("updating %s current state: %w", as.id, err)
			continue
		}
		if i.telemetry != nil {
			i.telemetry.WriteActuatorState(as.id.String(), *as.state)
		}
	}

	// One broadcast per call, success or not.
	update := report.Update(time.Now().UTC())
	i.broadcaster.Broadcast(TopicSensorUpdate, update)

	if firstErr != nil {
		i.logger.Error("ingest aborted", "error", firstErr)
		return firstErr
	}

	i.logger.Debug("device report ingested",
		"has_temp", report.Temp != nil,
		"has_humi", report.Humi != nil,
		"has_soil", report.Soil != nil,
	)
	return nil
}
