package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDeviceNotFound = errors.New("device not found")

	// ErrPinInUse is returned when a device would claim a pin already
	// occupied on the same board.
	ErrPinInUse = errors.New("pin already in use")
)

// Device is a sensor or actuator attached to exactly one board on exactly
// one pin. CurrentState is a last-write-wins cache of the device's believed
// status, distinct from the immutable sensor reading history.
type Device struct {
	ID           string         `json:"id"`
	BoardID      string         `json:"board_id"`
	RoomID       *string        `json:"room_id"`
	SystemID     *string        `json:"system_id"`
	Name         string         `json:"name"`
	Type         string         `json:"type"`
	PinNumber    int            `json:"pin_number"`
	PinType      string         `json:"pin_type"`
	Properties   map[string]any `json:"properties"`
	CurrentState map[string]any `json:"current_state"`
	IsOnline     bool           `json:"is_online"`
	LastUpdated  *time.Time     `json:"last_updated"`
	CreatedAt    time.Time      `json:"created_at"`

	Board *Board `json:"board,omitempty"`
	Room  *Room  `json:"room,omitempty"`
}

// DeviceStore provides device CRUD operations and state merging.
type DeviceStore interface {
	Get(ctx context.Context, id string) (*Device, error)
	// GetActor returns the device only if its type is one of the given
	// types, so domain endpoints reject devices outside their vocabulary.
	GetActor(ctx context.Context, id string, types ...string) (*Device, error)
	FindByPin(ctx context.Context, boardID string, pin int) (*Device, error)
	List(ctx context.Context) ([]*Device, error)
	// ListForDomain returns devices whose type is in types, oldest first.
	ListForDomain(ctx context.Context, types []string) ([]*Device, error)
	Create(ctx context.Context, d *Device) error
	// MergeState shallow-merges fields into the device's current_state,
	// stamps last_updated, and optionally marks the device online.
	// Returns the merged state.
	MergeState(ctx context.Context, id string, fields map[string]any, markOnline bool) (map[string]any, error)
}

// Devices returns a DeviceStore for this database.
func (db *DB) Devices() DeviceStore {
	return &deviceStore{db: db}
}

type deviceStore struct {
	db *DB
}

const deviceColumns = `id, board_id, room_id, system_id, name, type, pin_number, pin_type, properties, current_state, is_online, last_updated, created_at`

func scanDevice(row interface{ Scan(...any) error }) (*Device, error) {
	d := &Device{}
	var properties, state string
	var lastUpdated sql.NullString
	var createdAt string
	err := row.Scan(&d.ID, &d.BoardID, &d.RoomID, &d.SystemID, &d.Name, &d.Type,
		&d.PinNumber, &d.PinType, &properties, &state, &d.IsOnline, &lastUpdated, &createdAt)
	if err != nil {
		return nil, err
	}
	d.Properties = unmarshalMap(properties)
	d.CurrentState = unmarshalMap(state)
	if lastUpdated.Valid {
		t := parseTime(lastUpdated.String)
		d.LastUpdated = &t
	}
	d.CreatedAt = parseTime(createdAt)
	return d, nil
}

func (s *deviceStore) Get(ctx context.Context, id string) (*Device, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+deviceColumns+` FROM devices WHERE id = ?
	`, id)
	d, err := scanDevice(row)
	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachRelated(ctx, []*Device{d}); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deviceStore) GetActor(ctx context.Context, id string, types ...string) (*Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = ?`
	args := []any{id}
	if len(types) > 0 {
		query += ` AND type IN (` + placeholders(len(types)) + `)`
		for _, t := range types {
			args = append(args, t)
		}
	}
	row := s.db.QueryRowContext(ctx, query, args...)
	d, err := scanDevice(row)
	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deviceStore) FindByPin(ctx context.Context, boardID string, pin int) (*Device, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+deviceColumns+` FROM devices WHERE board_id = ? AND pin_number = ?
	`, boardID, pin)
	d, err := scanDevice(row)
	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *deviceStore) List(ctx context.Context) ([]*Device, error) {
	return s.list(ctx, `SELECT `+deviceColumns+` FROM devices ORDER BY created_at ASC`)
}

func (s *deviceStore) ListForDomain(ctx context.Context, types []string) ([]*Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices`
	var args []any
	if len(types) > 0 {
		query += ` WHERE type IN (` + placeholders(len(types)) + `)`
		for _, t := range types {
			args = append(args, t)
		}
	}
	query += ` ORDER BY created_at ASC`
	return s.list(ctx, query, args...)
}

func (s *deviceStore) list(ctx context.Context, query string, args ...any) ([]*Device, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var devices []*Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachRelated(ctx, devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// attachRelated loads each device's board and room.
func (s *deviceStore) attachRelated(ctx context.Context, devices []*Device) error {
	for _, d := range devices {
		row := s.db.QueryRowContext(ctx, `
			SELECT `+boardColumns+` FROM boards WHERE id = ?
		`, d.BoardID)
		b, err := scanBoard(row)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		d.Board = b

		if d.RoomID != nil {
			r := &Room{}
			var createdAt string
			err := s.db.QueryRowContext(ctx, `
				SELECT id, name, description, created_at FROM rooms WHERE id = ?
			`, *d.RoomID).Scan(&r.ID, &r.Name, &r.Description, &createdAt)
			if err != nil && err != sql.ErrNoRows {
				return err
			}
			if err == nil {
				r.CreatedAt = parseTime(createdAt)
				d.Room = r
			}
		}
	}
	return nil
}

func (s *deviceStore) Create(ctx context.Context, d *Device) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.PinType == "" {
		d.PinType = "digital"
	}
	if d.Properties == nil {
		d.Properties = map[string]any{}
	}
	if d.CurrentState == nil {
		d.CurrentState = map[string]any{}
	}
	d.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO devices (id, board_id, room_id, system_id, name, type, pin_number, pin_type, properties, current_state, is_online, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.BoardID, d.RoomID, d.SystemID, d.Name, d.Type, d.PinNumber, d.PinType,
		marshalJSON(d.Properties), marshalJSON(d.CurrentState), d.IsOnline, fmtTime(d.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: devices.board_id, devices.pin_number") {
			return ErrPinInUse
		}
		return fmt.Errorf("failed to create device: %w", err)
	}
	return nil
}

func (s *deviceStore) MergeState(ctx context.Context, id string, fields map[string]any, markOnline bool) (map[string]any, error) {
	var merged map[string]any
	err := s.db.Tx(ctx, func(tx *sql.Tx) error {
		var err error
		merged, err = mergeStateTx(ctx, tx, id, fields, markOnline)
		return err
	})
	return merged, err
}

// mergeStateTx performs the last-write-wins merge inside an existing
// transaction, so command enqueue and state promotion commit together.
func mergeStateTx(ctx context.Context, tx *sql.Tx, id string, fields map[string]any, markOnline bool) (map[string]any, error) {
	var raw string
	err := tx.QueryRowContext(ctx, `SELECT current_state FROM devices WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	state := unmarshalMap(raw)
	for k, v := range fields {
		state[k] = v
	}
	state["last_updated"] = now.UTC().Format(time.RFC3339)

	query := `UPDATE devices SET current_state = ?, last_updated = ?`
	args := []any{marshalJSON(state), fmtTime(now)}
	if markOnline {
		query += `, is_online = 1`
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to update device state: %w", err)
	}
	return state, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
