package sensor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Repository defines the interface for sensor reading persistence.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// Append records a new reading for the given channel.
	// Every call produces a new row; readings are never deduplicated.
	Append(ctx context.Context, channel Channel, value float64) error

	// Latest returns the most recent reading for the given channel.
	// Returns ErrNoReadings if the channel has no readings yet.
	Latest(ctx context.Context, channel Channel) (*Reading, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
// The db parameter should be an open SQLite connection.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Append records a new reading for the given channel.
func (r *SQLiteRepository) Append(ctx context.Context, channel Channel, value float64) error {
	if !channel.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sensor_readings (channel, value, recorded_at) VALUES (?, ?, ?)`,
		string(channel), value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting sensor reading: %w", err)
	}
	return nil
}

// Latest returns the most recent reading for the given channel.
func (r *SQLiteRepository) Latest(ctx context.Context, channel Channel) (*Reading, error) {
	if !channel.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidChannel, channel)
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT id, channel, value, recorded_at
		 FROM sensor_readings
		 WHERE channel = ?
		 ORDER BY id DESC
		 LIMIT 1`,
		string(channel),
	)

	var reading Reading
	var ch, recordedAt string
	if err := row.Scan(&reading.ID, &ch, &reading.Value, &recordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoReadings
		}
		return nil, fmt.Errorf("querying latest reading: %w", err)
	}

	reading.Channel = Channel(ch)
	reading.RecordedAt, _ = time.Parse(time.RFC3339, recordedAt) //nolint:errcheck // Format is controlled
	return &reading, nil
}
