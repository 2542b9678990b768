package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

func TestHandleIngest(t *testing.T) {
	_, ts, db := newTestServer(t)

	body := []byte(`{"temp": 24.5, "fan_state": true}`)
	resp, err := http.Post(ts.URL+"/sensor/data", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /sensor/data error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sensor_readings WHERE channel = 'temperature'").Scan(&count); err != nil {
		t.Fatalf("counting readings: %v", err)
	}
	if count != 1 {
		t.Errorf("temperature readings = %d, want 1", count)
	}

	var currentState int
	if err := db.QueryRow("SELECT current_state FROM actuator_states WHERE id = 1").Scan(&currentState); err != nil {
		t.Fatalf("reading fan state: %v", err)
	}
	if currentState != 1 {
		t.Errorf("fan current_state = %d, want 1", currentState)
	}
}

func TestHandleIngest_InvalidBody(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/sensor/data", "application/json", bytes.NewReader([]byte("not json")))
	if err != nil {
		t.Fatalf("POST /sensor/data error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandlePoll(t *testing.T) {
	_, ts, db := newTestServer(t)

	t.Run("returns control state for provisioned actuator", func(t *testing.T) {
		if _, err := db.Exec("UPDATE actuator_states SET target_state = 1, is_auto_mode = 0 WHERE id = 1"); err != nil {
			t.Fatalf("seeding state: %v", err)
		}

		resp, err := http.Get(ts.URL + "/sensor/control/1")
		if err != nil {
			t.Fatalf("GET /sensor/control/1 error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}

		var got struct {
			TargetState bool `json:"target_state"`
			IsAutoMode  bool `json:"is_auto_mode"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if !got.TargetState || got.IsAutoMode {
			t.Errorf("got %+v, want {target_state:true, is_auto_mode:false}", got)
		}
	})

	t.Run("unknown id is 404, never a zero record", func(t *testing.T) {
		for _, path := range []string{"/sensor/control/99", "/sensor/control/abc"} {
			resp, err := http.Get(ts.URL + path)
			if err != nil {
				t.Fatalf("GET %s error = %v", path, err)
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("GET %s status = %d, want 404", path, resp.StatusCode)
			}
		}
	})
}

func TestHandleStatus(t *testing.T) {
	_, ts, db := newTestServer(t)

	body := []byte(`{"commandId": "cmd-12345678", "status": "done", "actuators": {"fan": true}}`)
	resp, err := http.Post(ts.URL+"/sensor/status", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /sensor/status error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	// Log-only: nothing may be persisted by a status report.
	for _, table := range []string{"sensor_readings", "command_log"} {
		var count int
		if err := db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count); err != nil {
			t.Fatalf("counting %s: %v", table, err)
		}
		if count != 0 {
			t.Errorf("%s rows = %d, want 0", table, count)
		}
	}
}

func TestHandleDashboard(t *testing.T) {
	_, ts, db := newTestServer(t)

	if _, err := db.Exec("INSERT INTO sensor_readings (channel, value) VALUES ('temperature', 22.5)"); err != nil {
		t.Fatalf("seeding reading: %v", err)
	}

	resp, err := http.Get(ts.URL + "/sensor/dashboard")
	if err != nil {
		t.Fatalf("GET /sensor/dashboard error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got struct {
		Temp      float64          `json:"temp"`
		Humi      float64          `json:"humi"`
		Soil      float64          `json:"soil"`
		Actuators []map[string]any `json:"actuators"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Temp != 22.5 {
		t.Errorf("temp = %v, want 22.5", got.Temp)
	}
	if got.Humi != 0 {
		t.Errorf("humi = %v, want 0 for channel with no readings", got.Humi)
	}
	if len(got.Actuators) != 3 {
		t.Errorf("len(actuators) = %d, want 3", len(got.Actuators))
	}
}

func TestHandleCommand(t *testing.T) {
	_, ts, db := newTestServer(t)

	body := []byte(`{"actuator_id": 2, "command": "ON", "is_auto": false}`)
	resp, err := http.Post(ts.URL+"/sensor/command", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /sensor/command error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var targetState, isAutoMode int
	if err := db.QueryRow("SELECT target_state, is_auto_mode FROM actuator_states WHERE id = 2").Scan(&targetState, &isAutoMode); err != nil {
		t.Fatalf("reading pump state: %v", err)
	}
	if targetState != 1 || isAutoMode != 0 {
		t.Errorf("pump state = {%d, %d}, want {1, 0}", targetState, isAutoMode)
	}

	var logCount int
	if err := db.QueryRow("SELECT COUNT(*) FROM command_log WHERE actuator_id = 2").Scan(&logCount); err != nil {
		t.Fatalf("counting log entries: %v", err)
	}
	if logCount != 2 {
		t.Errorf("command_log rows = %d, want 2 (one per branch)", logCount)
	}
}

func TestHandleCommandLog(t *testing.T) {
	_, ts, _ := newTestServer(t)

	// Seed two commands through the API itself.
	for _, body := range []string{
		`{"actuator_id": 1, "command": "ON"}`,
		`{"actuator_id": 3, "is_auto": true}`,
	} {
		resp, err := http.Post(ts.URL+"/sensor/command", "application/json", bytes.NewReader([]byte(body)))
		if err != nil {
			t.Fatalf("POST /sensor/command error = %v", err)
		}
		resp.Body.Close()
	}

	resp, err := http.Get(ts.URL + "/sensor/commands?limit=10")
	if err != nil {
		t.Fatalf("GET /sensor/commands error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got struct {
		Commands []map[string]any `json:"commands"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(got.Commands) != 2 {
		t.Errorf("len(commands) = %d, want 2", len(got.Commands))
	}
}

func TestHandleCommandLog_InvalidLimit(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/sensor/commands?limit=nope")
	if err != nil {
		t.Fatalf("GET /sensor/commands error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHandleHealth(t *testing.T) {
	_, ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got["status"] != "ok" {
		t.Errorf("status field = %v, want ok", got["status"])
	}
}
