package actuator

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// commandLogIDChars is the number of UUID characters kept in a log entry ID.
const commandLogIDChars = 8

// Repository defines the interface for actuator persistence operations.
// This abstraction allows for different implementations (SQLite, mock, etc.)
// and enables unit testing without database dependencies.
type Repository interface {
	// List retrieves all actuator states ordered by ID.
	List(ctx context.Context) ([]State, error)

	// ControlState retrieves the {target_state, is_auto_mode} pair for one
	// actuator, as delivered to a polling device.
	// Returns ErrActuatorNotFound if no row is provisioned for the ID.
	ControlState(ctx context.Context, id ID) (*ControlState, error)

	// SetCurrentState records what the device reports it is actually doing.
	// target_state and is_auto_mode are never touched by this path.
	// Updates for unprovisioned IDs are silent no-ops, tolerating
	// heterogeneous device payloads.
	SetCurrentState(ctx context.Context, id ID, state bool) error

	// SetTargetState records the desired state for an actuator.
	// current_state is never touched by this path. The write is
	// unconditional: auto mode does not gate it.
	SetTargetState(ctx context.Context, id ID, state bool) error

	// SetAutoMode records the ownership flag for an actuator's target state.
	SetAutoMode(ctx context.Context, id ID, auto bool) error

	// AppendLog inserts a command audit entry. The ID and CreatedAt are
	// generated if empty. Entries are immutable once written.
	AppendLog(ctx context.Context, entry *LogEntry) error

	// ListLog retrieves the most recent audit entries, newest first.
	ListLog(ctx context.Context, limit int) ([]LogEntry, error)
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

// List retrieves all actuator states ordered by ID.
func (r *SQLiteRepository) List(ctx context.Context) ([]State, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, current_state, target_state, is_auto_mode, updated_at
		 FROM actuator_states
		 ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying actuator states: %w", err)
	}
	defer rows.Close()

	var states []State
	for rows.Next() {
		var s State
		var updatedAt string
		if err := rows.Scan(&s.ID, &s.Name, &s.CurrentState, &s.TargetState, &s.IsAutoMode, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning actuator state: %w", err)
		}
		s.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // Format is controlled
		states = append(states, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating actuator states: %w", err)
	}
	return states, nil
}

// ControlState retrieves the {target_state, is_auto_mode} pair for one actuator.
func (r *SQLiteRepository) ControlState(ctx context.Context, id ID) (*ControlState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT target_state, is_auto_mode FROM actuator_states WHERE id = ?`,
		int(id),
	)

	var cs ControlState
	if err := row.Scan(&cs.TargetState, &cs.IsAutoMode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrActuatorNotFound
		}
		return nil, fmt.Errorf("querying control state: %w", err)
	}
	return &cs, nil
}

// SetCurrentState records what the device reports it is actually doing.
func (r *SQLiteRepository) SetCurrentState(ctx context.Context, id ID, state bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE actuator_states SET current_state = ?, updated_at = ? WHERE id = ?`,
		state, nowRFC3339(), int(id),
	)
	if err != nil {
		return fmt.Errorf("updating current state: %w", err)
	}
	return nil
}

// SetTargetState records the desired state for an actuator.
func (r *SQLiteRepository) SetTargetState(ctx context.Context, id ID, state bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE actuator_states SET target_state = ?, updated_at = ? WHERE id = ?`,
		state, nowRFC3339(), int(id),
	)
	if err != nil {
		return fmt.Errorf("updating target state: %w", err)
	}
	return nil
}

// SetAutoMode records the ownership flag for an actuator's target state.
func (r *SQLiteRepository) SetAutoMode(ctx context.Context, id ID, auto bool) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE actuator_states SET is_auto_mode = ?, updated_at = ? WHERE id = ?`,
		auto, nowRFC3339(), int(id),
	)
	if err != nil {
		return fmt.Errorf("updating auto mode: %w", err)
	}
	return nil
}

// AppendLog inserts a command audit entry.
func (r *SQLiteRepository) AppendLog(ctx context.Context, entry *LogEntry) error {
	if entry.ID == "" {
		entry.ID = "cmd-" + uuid.NewString()[:commandLogIDChars]
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO command_log (id, actuator_id, command, executor, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ID, int(entry.ActuatorID), entry.Command, entry.Executor,
		entry.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting command log entry: %w", err)
	}
	return nil
}

// Default and maximum limits for ListLog.
const (
	defaultLogLimit = 50
	maxLogLimit     = 200
)

// ListLog retrieves the most recent audit entries, newest first.
func (r *SQLiteRepository) ListLog(ctx context.Context, limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	if limit > maxLogLimit {
		limit = maxLogLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, actuator_id, command, executor, created_at
		 FROM command_log
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying command log: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var e LogEntry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.ActuatorID, &e.Command, &e.Executor, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning command log entry: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // Format is controlled
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating command log: %w", err)
	}
	return entries, nil
}

// nowRFC3339 returns the current UTC time in the storage format.
func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
