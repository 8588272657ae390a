package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrCommandNotFound = errors.New("command not found")

// Command is a persisted, asynchronous instruction for a device. Rows are
// created in pending status and advanced only by the firmware consumer via
// PATCH; nothing in this system dequeues or deletes them.
type Command struct {
	ID           string         `json:"id"`
	DeviceID     string         `json:"device_id"`
	CommandType  string         `json:"command_type"`
	CommandData  map[string]any `json:"command_data"`
	Priority     int            `json:"priority"`
	Status       string         `json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	ExecutedAt   *time.Time     `json:"executed_at"`
	ResponseData map[string]any `json:"response_data"`

	Device *Device `json:"device,omitempty"`
}

// CommandFilter narrows a queue listing.
type CommandFilter struct {
	DeviceID string
	Status   string
	Limit    int
}

// CommandStore provides the command queue outbox.
type CommandStore interface {
	Get(ctx context.Context, id string) (*Command, error)
	// List returns queue entries ordered by urgency: smaller priority
	// values first, then oldest first.
	List(ctx context.Context, f CommandFilter) ([]*Command, error)
	// Enqueue inserts a pending command and, when stateMerge is non-nil,
	// promotes those fields into the device's current_state in the same
	// transaction.
	Enqueue(ctx context.Context, cmd *Command, stateMerge map[string]any) error
	// Advance updates an entry's status. executed_at is always stamped with
	// the server's clock when stampExecuted is set; caller-supplied values
	// are never trusted. responseData, if non-nil, replaces any prior value.
	Advance(ctx context.Context, id, status string, stampExecuted bool, responseData map[string]any) (*Command, error)
}

// Commands returns a CommandStore for this database.
func (db *DB) Commands() CommandStore {
	return &commandStore{db: db}
}

type commandStore struct {
	db *DB
}

const commandColumns = `id, device_id, command_type, command_data, priority, status, created_at, executed_at, response_data`

func scanCommand(row interface{ Scan(...any) error }) (*Command, error) {
	c := &Command{}
	var data string
	var createdAt string
	var executedAt, responseData sql.NullString
	err := row.Scan(&c.ID, &c.DeviceID, &c.CommandType, &data, &c.Priority,
		&c.Status, &createdAt, &executedAt, &responseData)
	if err != nil {
		return nil, err
	}
	c.CommandData = unmarshalMap(data)
	c.CreatedAt = parseTime(createdAt)
	if executedAt.Valid {
		t := parseTime(executedAt.String)
		c.ExecutedAt = &t
	}
	if responseData.Valid {
		c.ResponseData = unmarshalMap(responseData.String)
	}
	return c, nil
}

func (s *commandStore) Get(ctx context.Context, id string) (*Command, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+commandColumns+` FROM command_queue WHERE id = ?
	`, id)
	c, err := scanCommand(row)
	if err == sql.ErrNoRows {
		return nil, ErrCommandNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachDevices(ctx, []*Command{c}); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *commandStore) List(ctx context.Context, f CommandFilter) ([]*Command, error) {
	query := `SELECT ` + commandColumns + ` FROM command_queue`
	var args []any
	var where []string
	if f.DeviceID != "" {
		where = append(where, `device_id = ?`)
		args = append(args, f.DeviceID)
	}
	if f.Status != "" {
		where = append(where, `status = ?`)
		args = append(args, f.Status)
	}
	for i, w := range where {
		if i == 0 {
			query += ` WHERE ` + w
		} else {
			query += ` AND ` + w
		}
	}
	query += ` ORDER BY priority ASC, created_at ASC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var commands []*Command
	for rows.Next() {
		c, err := scanCommand(rows)
		if err != nil {
			return nil, err
		}
		commands = append(commands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachDevices(ctx, commands); err != nil {
		return nil, err
	}
	return commands, nil
}

func (s *commandStore) Enqueue(ctx context.Context, cmd *Command, stateMerge map[string]any) error {
	if cmd.ID == "" {
		cmd.ID = uuid.NewString()
	}
	cmd.Status = "pending"
	cmd.CreatedAt = time.Now()

	err := s.db.Tx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO command_queue (id, device_id, command_type, command_data, priority, status, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, cmd.ID, cmd.DeviceID, cmd.CommandType, marshalJSON(cmd.CommandData),
			cmd.Priority, cmd.Status, fmtTime(cmd.CreatedAt))
		if err != nil {
			return fmt.Errorf("failed to enqueue command: %w", err)
		}

		if stateMerge != nil {
			if _, err := mergeStateTx(ctx, tx, cmd.DeviceID, stateMerge, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return s.attachDevices(ctx, []*Command{cmd})
}

func (s *commandStore) Advance(ctx context.Context, id, status string, stampExecuted bool, responseData map[string]any) (*Command, error) {
	query := `UPDATE command_queue SET status = ?`
	args := []any{status}
	if stampExecuted {
		query += `, executed_at = ?`
		args = append(args, fmtTime(time.Now()))
	}
	if responseData != nil {
		query += `, response_data = ?`
		args = append(args, marshalJSON(responseData))
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrCommandNotFound
	}
	return s.Get(ctx, id)
}

// attachDevices loads a summary of each command's device.
func (s *commandStore) attachDevices(ctx context.Context, commands []*Command) error {
	devices := s.db.Devices()
	cache := map[string]*Device{}
	for _, c := range commands {
		if d, ok := cache[c.DeviceID]; ok {
			c.Device = d
			continue
		}
		d, err := devices.Get(ctx, c.DeviceID)
		if err != nil && err != ErrDeviceNotFound {
			return err
		}
		cache[c.DeviceID] = d
		c.Device = d
	}
	return nil
}
