package actuator

import "errors"

// Domain errors for the actuator package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, actuator.ErrActuatorNotFound) {
//	    // handle not found case
//	}
var (
	// ErrActuatorNotFound is returned when an actuator ID has no provisioned row.
	ErrActuatorNotFound = errors.New("actuator: not found")
)
