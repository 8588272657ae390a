package db

import (
	"context"
	"database/sql"
	"fmt"
)

const currentSchemaVersion = 1

// Schema SQL for version 1
const schemaV1 = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version     INTEGER PRIMARY KEY,
    applied_at  TEXT NOT NULL DEFAULT (datetime('now'))
);

-- Rooms (logical grouping for devices and systems)
CREATE TABLE IF NOT EXISTS rooms (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    description TEXT,
    created_at  TEXT NOT NULL
);

-- Boards (physical controllers)
CREATE TABLE IF NOT EXISTS boards (
    id             TEXT PRIMARY KEY,
    name           TEXT NOT NULL,
    board_type     TEXT NOT NULL,
    mac_address    TEXT UNIQUE,
    ip_address     TEXT,
    status         TEXT NOT NULL DEFAULT 'offline',
    total_pins     INTEGER NOT NULL DEFAULT 30,
    available_pins TEXT NOT NULL DEFAULT '[]',
    last_seen      TEXT,
    created_at     TEXT NOT NULL
);

-- Systems (cross-cutting feature groupings: door_access, garage_control, ...)
CREATE TABLE IF NOT EXISTS systems (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    type        TEXT NOT NULL,
    description TEXT,
    board_id    TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
    room_id     TEXT REFERENCES rooms(id) ON DELETE SET NULL,
    is_active   INTEGER NOT NULL DEFAULT 1,
    created_at  TEXT NOT NULL
);

-- Devices (sensors and actuators, one pin on one board)
CREATE TABLE IF NOT EXISTS devices (
    id            TEXT PRIMARY KEY,
    board_id      TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
    room_id       TEXT REFERENCES rooms(id) ON DELETE SET NULL,
    system_id     TEXT REFERENCES systems(id) ON DELETE SET NULL,
    name          TEXT NOT NULL,
    type          TEXT NOT NULL,
    pin_number    INTEGER NOT NULL,
    pin_type      TEXT NOT NULL DEFAULT 'digital',
    properties    TEXT NOT NULL DEFAULT '{}',
    current_state TEXT NOT NULL DEFAULT '{}',
    is_online     INTEGER NOT NULL DEFAULT 0,
    last_updated  TEXT,
    created_at    TEXT NOT NULL,
    UNIQUE(board_id, pin_number)
);

-- Sensor readings (immutable, append-only)
CREATE TABLE IF NOT EXISTS sensor_readings (
    id          TEXT PRIMARY KEY,
    device_id   TEXT NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
    sensor_type TEXT NOT NULL,
    value       REAL NOT NULL,
    unit        TEXT,
    timestamp   TEXT NOT NULL
);

-- Command queue (outbox polled by external firmware)
CREATE TABLE IF NOT EXISTS command_queue (
    id            TEXT PRIMARY KEY,
    device_id     TEXT NOT NULL REFERENCES devices(id) ON DELETE CASCADE,
    command_type  TEXT NOT NULL,
    command_data  TEXT NOT NULL DEFAULT '{}',
    priority      INTEGER NOT NULL DEFAULT 1,
    status        TEXT NOT NULL DEFAULT 'pending',
    created_at    TEXT NOT NULL,
    executed_at   TEXT,
    response_data TEXT
);

-- Create indexes for common queries
CREATE INDEX IF NOT EXISTS idx_devices_board ON devices(board_id);
CREATE INDEX IF NOT EXISTS idx_devices_type ON devices(type);
CREATE INDEX IF NOT EXISTS idx_readings_device_ts ON sensor_readings(device_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_commands_status ON command_queue(status, priority, created_at);
`

// Migrate runs database migrations to bring the schema up to date.
func (db *DB) Migrate(ctx context.Context) error {
	version, err := db.getSchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	if version >= currentSchemaVersion {
		return nil // Already up to date
	}

	if version < 1 {
		if err := db.applySchemaV1(ctx); err != nil {
			return fmt.Errorf("failed to apply schema v1: %w", err)
		}
	}

	return nil
}

// getSchemaVersion returns the current schema version, or 0 if no schema exists.
func (db *DB) getSchemaVersion(ctx context.Context) (int, error) {
	// Check if schema_version table exists
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name='schema_version'
	`).Scan(&count)
	if err != nil {
		return 0, err
	}

	if count == 0 {
		return 0, nil
	}

	var version int
	err = db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}

	return version, nil
}

// applySchemaV1 applies the initial schema.
func (db *DB) applySchemaV1(ctx context.Context) error {
	return db.Tx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
			return fmt.Errorf("failed to execute schema: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES (1)`); err != nil {
			return fmt.Errorf("failed to record schema version: %w", err)
		}

		return nil
	})
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion(ctx context.Context) (int, error) {
	return db.getSchemaVersion(ctx)
}
