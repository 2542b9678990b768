package sensor

import "errors"

// Domain errors for the sensor package.
var (
	// ErrInvalidChannel is returned when a channel value is not recognised.
	ErrInvalidChannel = errors.New("sensor: invalid channel")

	// ErrNoReadings is returned when a channel has no recorded readings yet.
	ErrNoReadings = errors.New("sensor: no readings")
)
