package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Reading is an immutable sensor measurement. Readings are append-only:
// nothing in the store updates or deletes them.
type Reading struct {
	ID         string    `json:"id"`
	DeviceID   string    `json:"device_id"`
	SensorType string    `json:"sensor_type"`
	Value      float64   `json:"value"`
	Unit       *string   `json:"unit"`
	Timestamp  time.Time `json:"timestamp"`

	Device *Device `json:"device,omitempty"`
}

// ReadingStore provides sensor reading ingestion and lookup.
type ReadingStore interface {
	Insert(ctx context.Context, r *Reading) error
	InsertBatch(ctx context.Context, readings []*Reading) error
	// LatestPerDevice returns the most recent reading for each device
	// that has at least one reading.
	LatestPerDevice(ctx context.Context) ([]*Reading, error)
	// LatestForSensor returns the single most recent reading of the given
	// sensor type across the given devices, or nil if none exist.
	LatestForSensor(ctx context.Context, deviceIDs []string, sensorType string) (*Reading, error)
}

// Readings returns a ReadingStore for this database.
func (db *DB) Readings() ReadingStore {
	return &readingStore{db: db}
}

type readingStore struct {
	db *DB
}

const readingColumns = `id, device_id, sensor_type, value, unit, timestamp`

func scanReading(row interface{ Scan(...any) error }) (*Reading, error) {
	r := &Reading{}
	var ts string
	err := row.Scan(&r.ID, &r.DeviceID, &r.SensorType, &r.Value, &r.Unit, &ts)
	if err != nil {
		return nil, err
	}
	r.Timestamp = parseTime(ts)
	return r, nil
}

func (s *readingStore) Insert(ctx context.Context, r *Reading) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sensor_readings (id, device_id, sensor_type, value, unit, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.ID, r.DeviceID, r.SensorType, r.Value, r.Unit, fmtTime(r.Timestamp))
	if err != nil {
		return fmt.Errorf("failed to insert reading: %w", err)
	}
	return nil
}

func (s *readingStore) InsertBatch(ctx context.Context, readings []*Reading) error {
	return s.db.Tx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sensor_readings (id, device_id, sensor_type, value, unit, timestamp)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer func() { _ = stmt.Close() }()

		for _, r := range readings {
			if r.ID == "" {
				r.ID = uuid.NewString()
			}
			if r.Timestamp.IsZero() {
				r.Timestamp = time.Now()
			}
			if _, err := stmt.ExecContext(ctx, r.ID, r.DeviceID, r.SensorType, r.Value, r.Unit, fmtTime(r.Timestamp)); err != nil {
				return fmt.Errorf("failed to insert reading: %w", err)
			}
		}
		return nil
	})
}

// LatestPerDevice resolves "most recent reading per device" in SQL against
// the (device_id, timestamp) index instead of scanning the full history.
func (s *readingStore) LatestPerDevice(ctx context.Context) ([]*Reading, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.device_id, r.sensor_type, r.value, r.unit, r.timestamp
		FROM sensor_readings r
		JOIN (
			SELECT device_id, MAX(timestamp) AS max_ts
			FROM sensor_readings
			GROUP BY device_id
		) latest ON latest.device_id = r.device_id AND latest.max_ts = r.timestamp
		ORDER BY r.timestamp DESC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var readings []*Reading
	seen := map[string]bool{}
	for rows.Next() {
		r, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		// Two readings for the same device can share a timestamp; keep one.
		if seen[r.DeviceID] {
			continue
		}
		seen[r.DeviceID] = true
		readings = append(readings, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachDevices(ctx, readings); err != nil {
		return nil, err
	}
	return readings, nil
}

func (s *readingStore) LatestForSensor(ctx context.Context, deviceIDs []string, sensorType string) (*Reading, error) {
	if len(deviceIDs) == 0 {
		return nil, nil
	}
	args := make([]any, 0, len(deviceIDs)+1)
	for _, id := range deviceIDs {
		args = append(args, id)
	}
	args = append(args, sensorType)

	row := s.db.QueryRowContext(ctx, `
		SELECT `+readingColumns+` FROM sensor_readings
		WHERE device_id IN (`+placeholders(len(deviceIDs))+`) AND sensor_type = ?
		ORDER BY timestamp DESC LIMIT 1
	`, args...)
	r, err := scanReading(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// attachDevices loads each reading's device with its board.
func (s *readingStore) attachDevices(ctx context.Context, readings []*Reading) error {
	devices := s.db.Devices()
	cache := map[string]*Device{}
	for _, r := range readings {
		if d, ok := cache[r.DeviceID]; ok {
			r.Device = d
			continue
		}
		d, err := devices.Get(ctx, r.DeviceID)
		if err != nil && err != ErrDeviceNotFound {
			return err
		}
		cache[r.DeviceID] = d
		r.Device = d
	}
	return nil
}
