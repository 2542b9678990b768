package sensor

import "time"

// Channel identifies a sensor measurement channel.
type Channel string

// Supported sensor channels.
const (
	ChannelTemperature  Channel = "temperature"
	ChannelHumidity     Channel = "humidity"
	ChannelSoilMoisture Channel = "soil_moisture"
)

// Valid reports whether the channel is one of the supported channels.
func (c Channel) Valid() bool {
	switch c {
	case ChannelTemperature, ChannelHumidity, ChannelSoilMoisture:
		return true
	}
	return false
}

// Reading is a single recorded sensor value.
type Reading struct {
	ID         int64     `json:"id"`
	Channel    Channel   `json:"channel"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}
