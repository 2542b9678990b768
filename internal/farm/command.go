package farm

import (
	"context"
	"fmt"
	"time"

	"github.com/evryt-goodday/smartfarm-core/internal/actuator"
	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/logging"
)

// Commander applies operator commands to actuators and records them in the
// command audit log.
//
// A request's mode branch (is_auto) and manual branch (command) are
// independent sub-operations: both may run in one call, each appends its own
// log entry, and there is no rollback across them - if the mode write
// succeeds and the state write fails, the mode change persists.
//
// Manual target writes are NOT gated by auto mode. An operator can set
// target_state while is_auto_mode is true; the core records which executor
// asked for what and leaves authority enforcement to the device side.
type Commander struct {
	actuators   actuator.Repository
	broadcaster Broadcaster
	logger      *logging.Logger
}

// NewCommander creates a Commander with the given collaborators.
// The broadcaster is required; pass NopBroadcaster to run without fan-out.
func NewCommander(actuators actuator.Repository, broadcaster Broadcaster, logger *logging.Logger) *Commander {
	return &Commander{
		actuators:   actuators,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Apply processes one operator command request.
//
// A request with neither command nor is_auto present is a no-op and is
// still acknowledged. On success with at least one branch executed, an
// actuator_update event is broadcast to viewers.
func (c *Commander) Apply(ctx context.Context, req CommandRequest) error {
	if req.Command == nil && req.IsAuto == nil {
		c.logger.Debug("empty command request acknowledged", "actuator_id", req.ActuatorID)
		return nil
	}

	var targetState *bool

	// Mode change branch.
	if req.IsAuto != nil {
		if err := c.actuators.SetAutoMode(ctx, req.ActuatorID, *req.IsAuto); err != nil {
			return fmt.Errorf("setting auto mode: %w", err)
		}

		logCmd := actuator.CommandManualMode
		if *req.IsAuto {
			logCmd = actuator.CommandAutoMode
		}
		entry := &actuator.LogEntry{
			ActuatorID: req.ActuatorID,
			Command:    logCmd,
			Executor:   actuator.ExecutorUser,
		}
		if err := c.actuators.AppendLog(ctx, entry); err != nil {
			return fmt.Errorf("logging mode change: %w", err)
		}

		c.logger.Info("auto mode changed",
			"actuator_id", req.ActuatorID,
			"actuator", req.ActuatorID.String(),
			"is_auto", *req.IsAuto,
		)
	}

	// Manual command branch. Runs even when the mode branch already ran.
	if req.Command != nil {
		target := *req.Command == actuator.CommandOn
		if err := c.actuators.SetTargetState(ctx, req.ActuatorID, target); err != nil {
			return fmt.Errorf("setting target state: %w", err)
		}
		targetState = &target

		entry := &actuator.LogEntry{
			ActuatorID: req.ActuatorID,
			Command:    *req.Command,
			Executor:   actuator.ExecutorUser,
		}
		if err := c.actuators.AppendLog(ctx, entry); err != nil {
			return fmt.Errorf("logging command: %w", err)
		}

		c.logger.Info("target state changed",
			"actuator_id", req.ActuatorID,
			"actuator", req.ActuatorID.String(),
			"command", *req.Command,
			"target_state", target,
		)
	}

	c.broadcaster.Broadcast(TopicActuatorUpdate, ActuatorUpdate{
		ActuatorID:  req.ActuatorID,
		TargetState: targetState,
		IsAutoMode:  req.IsAuto,
		Timestamp:   time.Now().UTC(),
	})

	return nil
}
