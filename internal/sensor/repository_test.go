package sensor

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the sensor_readings table.
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
		CREATE INDEX idx_sensor_readings_channel ON sensor_readings(channel, id DESC);
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

func TestChannelValid(t *testing.T) {
	tests := []struct {
		channel Channel
		want    bool
	}{
		{ChannelTemperature, true},
		{ChannelHumidity, true},
		{ChannelSoilMoisture, true},
		{Channel("pressure"), false},
		{Channel(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.channel), func(t *testing.T) {
			if got := tt.channel.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSQLiteRepository_Append(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	t.Run("appends reading", func(t *testing.T) {
		if err := repo.Append(ctx, ChannelTemperature, 23.5); err != nil {
			t.Fatalf("Append() error = %v", err)
		}

		got, err := repo.Latest(ctx, ChannelTemperature)
		if err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		if got.Value != 23.5 {
			t.Errorf("Value = %v, want 23.5", got.Value)
		}
		if got.Channel != ChannelTemperature {
			t.Errorf("Channel = %q, want %q", got.Channel, ChannelTemperature)
		}
		if got.RecordedAt.IsZero() {
			t.Error("RecordedAt is zero, want a timestamp")
		}
	})

	t.Run("every call appends a new row", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			if err := repo.Append(ctx, ChannelHumidity, 60.0); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}

		var count int
		if err := db.QueryRow(
			"SELECT COUNT(*) FROM sensor_readings WHERE channel = ?",
			string(ChannelHumidity),
		).Scan(&count); err != nil {
			t.Fatalf("counting rows: %v", err)
		}
		if count != 3 {
			t.Errorf("row count = %d, want 3 (no dedup)", count)
		}
	})

	t.Run("rejects invalid channel", func(t *testing.T) {
		err := repo.Append(ctx, Channel("pressure"), 1.0)
		if !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("Append() error = %v, want ErrInvalidChannel", err)
		}
	})
}

func TestSQLiteRepository_Latest(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	t.Run("returns most recent reading", func(t *testing.T) {
		values := []float64{10.0, 11.5, 12.25}
		for _, v := range values {
			if err := repo.Append(ctx, ChannelSoilMoisture, v); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
		}

		got, err := repo.Latest(ctx, ChannelSoilMoisture)
		if err != nil {
			t.Fatalf("Latest() error = %v", err)
		}
		if got.Value != 12.25 {
			t.Errorf("Value = %v, want 12.25 (latest)", got.Value)
		}
	})

	t.Run("returns ErrNoReadings for empty channel", func(t *testing.T) {
		_, err := repo.Latest(ctx, ChannelTemperature)
		if !errors.Is(err, ErrNoReadings) {
			t.Errorf("Latest() error = %v, want ErrNoReadings", err)
		}
	})

	t.Run("rejects invalid channel", func(t *testing.T) {
		_, err := repo.Latest(ctx, Channel("wind"))
		if !errors.Is(err, ErrInvalidChannel) {
			t.Errorf("Latest() error = %v, want ErrInvalidChannel", err)
		}
	})
}
