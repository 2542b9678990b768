package farm

import (
	"database/sql"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/evryt-goodday/smartfarm-core/internal/actuator"
	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/config"
	"github.com/evryt-goodday/smartfarm-core/internal/infrastructure/logging"
	"github.com/evryt-goodday/smartfarm-core/internal/sensor"
)

// setupTestDB creates an in-memory SQLite database with the full schema and
// the three provisioned actuators.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE sensor_readings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			channel TEXT NOT NULL,
			value REAL NOT NULL,
			recorded_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE TABLE actuator_states (
			id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			current_state INTEGER NOT NULL DEFAULT 0,
			target_state INTEGER NOT NULL DEFAULT 0,
			is_auto_mode INTEGER NOT NULL DEFAULT 1,
			updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		CREATE TABLE command_log (
			id TEXT PRIMARY KEY,
			actuator_id INTEGER NOT NULL,
			command TEXT NOT NULL,
			executor TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
		) STRICT;

		INSERT INTO actuator_states (id, name) VALUES (1, 'fan'), (2, 'pump'), (3, 'led');
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// newTestLogger creates a quiet logger for tests.
func newTestLogger() *logging.Logger {
	return logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")
}

// recordedEvent is one captured broadcast.
type recordedEvent struct {
	topic   string
	payload any
}

// recordingBroadcaster captures broadcast events for assertions.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (b *recordingBroadcaster) Broadcast(topic string, payload any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{topic: topic, payload: payload})
}

func (b *recordingBroadcaster) Events() []recordedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]recordedEvent(nil), b.events...)
}

// boolPtr and floatPtr build optional report fields.
func boolPtr(v bool) *bool        { return &v }
func floatPtr(v float64) *float64 { return &v }
func stringPtr(v string) *string  { return &v }

// actuatorByID finds one actuator state in a List result.
func actuatorByID(t *testing.T, states []actuator.State, id actuator.ID) actuator.State {
	t.Helper()
	for _, s := range states {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("actuator %d missing from state list", id)
	return actuator.State{}
}

// repos builds the two SQLite repositories over one test database.
func repos(db *sql.DB) (sensor.Repository, actuator.Repository) {
	return sensor.NewSQLiteRepository(db), actuator.NewSQLiteRepository(db)
}
