package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evryt-goodday/smartfarm-core/internal/actuator"
	"github.com/evryt-goodday/smartfarm-core/internal/farm"
)

// handleIngest accepts a telemetry report from the device.
//
// Fields are optional and independent; absent fields are skipped rather
// than rejected, tolerating heterogeneous firmware payloads. A fan-out
// event is emitted even when persistence fails, so the 500 below tells
// the device to re-send while viewers have already seen the report.
func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var report farm.TelemetryReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := s.ingestor.Ingest(r.Context(), report); err != nil {
		s.logger.Error("telemetry ingestion failed", "error", err)
		writeInternalError(w, "failed to store sensor data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "sensor data received"})
}

// handlePoll returns the desired state for one actuator.
//
// This is the device's pull channel: firmware polls each actuator id on
// its cycle and reconciles hardware against the response. Unknown ids are
// a 404 so the device can no-op rather than act on a default record.
func (s *Server) handlePoll(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "actuatorID"))
	if err != nil {
		writeNotFound(w, "unknown actuator")
		return
	}

	cs, err := s.actuators.ControlState(r.Context(), actuator.ID(id))
	if err != nil {
		if errors.Is(err, actuator.ErrActuatorNotFound) {
			writeNotFound(w, "unknown actuator")
			return
		}
		s.logger.Error("control state read failed", "actuator_id", id, "error", err)
		writeInternalError(w, "failed to read control state")
		return
	}

	writeJSON(w, http.StatusOK, cs)
}

// handleStatus accepts a command execution report from the device.
//
// The report is logged and acknowledged but not persisted; command
// outcomes are observable through the state the device reports on its
// next telemetry cycle.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var report farm.StatusReport
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	s.logger.Info("device status report",
		"command_id", report.CommandID,
		"status", report.Status,
	)

	writeJSON(w, http.StatusOK, map[string]string{"message": "status received"})
}

// handleDashboard returns a point-in-time snapshot for the operator UI.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.snapshotter.Snapshot(r.Context())
	if err != nil {
		s.logger.Error("snapshot failed", "error", err)
		writeInternalError(w, "failed to read dashboard state")
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// handleCommand applies an operator command to one actuator.
//
// command and is_auto are independent; either, both, or neither may be
// present. A request with neither is still acknowledged.
func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	var req farm.CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := s.commander.Apply(r.Context(), req); err != nil {
		s.logger.Error("command failed", "actuator_id", req.ActuatorID, "error", err)
		writeInternalError(w, "failed to apply command")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "command received"})
}

// handleCommandLog returns recent command audit entries, newest first.
// The optional limit query parameter is clamped by the repository.
func (s *Server) handleCommandLog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			writeBadRequest(w, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	entries, err := s.actuators.ListLog(r.Context(), limit)
	if err != nil {
		s.logger.Error("command log read failed", "error", err)
		writeInternalError(w, "failed to read command log")
		return
	}
	if entries == nil {
		entries = []actuator.LogEntry{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"commands": entries})
}
