package api

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/evryt-goodday/smartfarm-core/internal/farm"
	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/config"
)

// dialTestWS connects to the test server's /ws endpoint.
func dialTestWS(t *testing.T, httpURL string) *websocket.Conn {
	t.Helper()

	wsURL := "ws" + strings.TrimPrefix(httpURL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", wsURL, err)
	}
	t.Cleanup(func() {
		conn.Close()
	})
	return conn
}

// readEvent reads one message and decodes the envelope.
func readEvent(t *testing.T, conn *websocket.Conn) WSMessage {
	t.Helper()

	//nolint:errcheck // Test deadline; a stuck read fails below anyway
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("reading websocket message: %v", err)
	}
	return msg
}

func TestWebSocket_SnapshotOnConnect(t *testing.T) {
	_, ts, db := newTestServer(t)

	if _, err := db.Exec("INSERT INTO sensor_readings (channel, value) VALUES ('soil_moisture', 44.0)"); err != nil {
		t.Fatalf("seeding reading: %v", err)
	}

	conn := dialTestWS(t, ts.URL)

	msg := readEvent(t, conn)
	if msg.Type != WSTypeEvent {
		t.Errorf("type = %q, want %q", msg.Type, WSTypeEvent)
	}
	if msg.Event != farm.TopicSnapshot {
		t.Errorf("event = %q, want %q", msg.Event, farm.TopicSnapshot)
	}

	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		t.Fatalf("re-marshalling payload: %v", err)
	}
	var snap struct {
		Soil      float64          `json:"soil"`
		Actuators []map[string]any `json:"actuators"`
	}
	if err := json.Unmarshal(payload, &snap); err != nil {
		t.Fatalf("decoding snapshot payload: %v", err)
	}
	if snap.Soil != 44.0 {
		t.Errorf("soil = %v, want 44.0", snap.Soil)
	}
	if len(snap.Actuators) != 3 {
		t.Errorf("len(actuators) = %d, want 3", len(snap.Actuators))
	}
}

func TestWebSocket_ReceivesBroadcasts(t *testing.T) {
	s, ts, _ := newTestServer(t)

	conn := dialTestWS(t, ts.URL)

	// Drain the connect-time snapshot.
	if msg := readEvent(t, conn); msg.Event != farm.TopicSnapshot {
		t.Fatalf("first event = %q, want %q", msg.Event, farm.TopicSnapshot)
	}

	temp := 25.0
	s.Hub().Broadcast(farm.TopicSensorUpdate, farm.TelemetryReport{Temp: &temp}.Update(time.Now().UTC()))

	msg := readEvent(t, conn)
	if msg.Event != farm.TopicSensorUpdate {
		t.Errorf("event = %q, want %q", msg.Event, farm.TopicSensorUpdate)
	}
	if msg.Timestamp == "" {
		t.Error("envelope timestamp missing")
	}
}

func TestWebSocket_PingPong(t *testing.T) {
	_, ts, _ := newTestServer(t)

	conn := dialTestWS(t, ts.URL)

	// Drain the connect-time snapshot.
	readEvent(t, conn)

	if err := conn.WriteJSON(WSMessage{Type: WSTypePing, ID: "1"}); err != nil {
		t.Fatalf("writing ping: %v", err)
	}

	msg := readEvent(t, conn)
	if msg.Type != WSTypePong {
		t.Errorf("type = %q, want %q", msg.Type, WSTypePong)
	}
	if msg.ID != "1" {
		t.Errorf("id = %q, want correlation id echoed", msg.ID)
	}
}

func TestWebSocket_ConfiguredPath(t *testing.T) {
	// Viewers connect on the path from config, not a hardcoded one.
	_, ts, _ := newTestServerWithWS(t, config.WebSocketConfig{
		Path:           "/live",
		MaxMessageSize: 4096,
		PingInterval:   30,
		PongTimeout:    10,
	})

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing %s: %v", wsURL, err)
	}
	t.Cleanup(func() {
		conn.Close()
	})

	if msg := readEvent(t, conn); msg.Event != farm.TopicSnapshot {
		t.Errorf("first event = %q, want %q", msg.Event, farm.TopicSnapshot)
	}
}

func TestHub_ClientCount(t *testing.T) {
	s, ts, _ := newTestServer(t)

	if got := s.Hub().ClientCount(); got != 0 {
		t.Fatalf("ClientCount() = %d, want 0 before connects", got)
	}

	conn := dialTestWS(t, ts.URL)
	readEvent(t, conn)

	if got := s.Hub().ClientCount(); got != 1 {
		t.Errorf("ClientCount() = %d, want 1", got)
	}
}
