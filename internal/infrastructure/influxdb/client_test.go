package influxdb_test

import (
	"errors"
	"testing"

	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/config"
	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/influxdb"
)

func testConfig() config.InfluxDBConfig {
	return config.InfluxDBConfig{
		Enabled:       true,
		URL:           "http://127.0.0.1:8086",
		Token:         "smartfarm-dev-token",
		Org:           "smartfarm",
		Bucket:        "telemetry",
		BatchSize:     100,
		FlushInterval: 1,
	}
}

func TestConnect_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false

	_, err := influxdb.Connect(cfg)
	if err == nil {
		t.Fatal("Connect() should return error when disabled")
	}
	if !errors.Is(err, influxdb.ErrDisabled) {
		t.Errorf("Connect() error = %v, want ErrDisabled", err)
	}
}

func TestClient_ZeroValueSafe(t *testing.T) {
	// A nil-backed client must tolerate lifecycle calls so callers can
	// defer Close/Flush unconditionally.
	var c influxdb.Client

	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}
	c.Flush()
	c.WriteSensorValue("temperature", 24.5)
	c.WriteActuatorState("fan", true)
}
