package farm

import (
	"context"
	"errors"
	"fmt"

	"github.com/evryt-goodday/smartfarm-core/internal/actuator"
	"github.com/evryt-goodday/smartfarm-core/internal/sensor"
)

// Snapshotter assembles point-in-time views of all sensor latest values and
// all actuator states for newly connected viewers.
type Snapshotter struct {
	sensors   sensor.Repository
	actuators actuator.Repository
}

// NewSnapshotter creates a Snapshotter reading from the given repositories.
func NewSnapshotter(sensors sensor.Repository, actuators actuator.Repository) *Snapshotter {
	return &Snapshotter{
		sensors:   sensors,
		actuators: actuators,
	}
}

// Snapshot reads the latest value per sensor channel and all actuator rows.
//
// A channel with no readings yet reports 0 rather than an error. The four
// underlying reads run independently, not in one transaction, so the result
// may straddle concurrent writes; newly connecting viewers converge on the
// next sensor_update event.
func (s *Snapshotter) Snapshot(ctx context.Context) (*Snapshot, error) {
	temp, err := s.latestOrZero(ctx, sensor.ChannelTemperature)
	if err != nil {
		return nil, err
	}
	humi, err := s.latestOrZero(ctx, sensor.ChannelHumidity)
	if err != nil {
		return nil, err
	}
	soil, err := s.latestOrZero(ctx, sensor.ChannelSoilMoisture)
	if err != nil {
		return nil, err
	}

	actuators, err := s.actuators.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing actuator states: %w", err)
	}
	if actuators == nil {
		actuators = []actuator.State{}
	}

	return &Snapshot{
		Temp:      temp,
		Humi:      humi,
		Soil:      soil,
		Actuators: actuators,
	}, nil
}

// latestOrZero returns the latest value for a channel, or 0 when the channel
// has no readings yet.
func (s *Snapshotter) latestOrZero(ctx context.Context, channel sensor.Channel) (float64, error) {
	reading, err := s.sensors.Latest(ctx, channel)
	if err != nil {
		if errors.Is(err, sensor.ErrNoReadings) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading latest %s: %w", channel, err)
	}
	return reading.Value, nil
}
