package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrBoardNotFound = errors.New("board not found")

// Board represents a physical controller that hosts devices.
type Board struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	BoardType     string    `json:"board_type"`
	MACAddress    *string   `json:"mac_address"`
	IPAddress     *string   `json:"ip_address"`
	Status        string    `json:"status"`
	TotalPins     int       `json:"total_pins"`
	AvailablePins []int     `json:"available_pins"`
	LastSeen      time.Time `json:"last_seen"`
	CreatedAt     time.Time `json:"created_at"`
	Devices       []*Device `json:"devices,omitempty"`
}

// BoardStore provides board CRUD operations.
type BoardStore interface {
	Get(ctx context.Context, id string) (*Board, error)
	FindByMAC(ctx context.Context, mac string) (*Board, error)
	List(ctx context.Context) ([]*Board, error)
	Create(ctx context.Context, b *Board) error
}

// Boards returns a BoardStore for this database.
func (db *DB) Boards() BoardStore {
	return &boardStore{db: db}
}

type boardStore struct {
	db *DB
}

const boardColumns = `id, name, board_type, mac_address, ip_address, status, total_pins, available_pins, last_seen, created_at`

func scanBoard(row interface{ Scan(...any) error }) (*Board, error) {
	b := &Board{}
	var pins string
	var lastSeen, createdAt sql.NullString
	err := row.Scan(&b.ID, &b.Name, &b.BoardType, &b.MACAddress, &b.IPAddress,
		&b.Status, &b.TotalPins, &pins, &lastSeen, &createdAt)
	if err != nil {
		return nil, err
	}
	b.AvailablePins = unmarshalPins(pins)
	if lastSeen.Valid {
		b.LastSeen = parseTime(lastSeen.String)
	}
	if createdAt.Valid {
		b.CreatedAt = parseTime(createdAt.String)
	}
	return b, nil
}

func (s *boardStore) Get(ctx context.Context, id string) (*Board, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+boardColumns+` FROM boards WHERE id = ?
	`, id)
	b, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachDevices(ctx, []*Board{b}); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *boardStore) FindByMAC(ctx context.Context, mac string) (*Board, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+boardColumns+` FROM boards WHERE mac_address = ?
	`, mac)
	b, err := scanBoard(row)
	if err == sql.ErrNoRows {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *boardStore) List(ctx context.Context) ([]*Board, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+boardColumns+` FROM boards ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var boards []*Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachDevices(ctx, boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (s *boardStore) Create(ctx context.Context, b *Board) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = "offline"
	}
	if b.TotalPins == 0 {
		b.TotalPins = 30
	}
	if b.AvailablePins == nil {
		b.AvailablePins = []int{}
	}
	now := time.Now()
	if b.LastSeen.IsZero() {
		b.LastSeen = now
	}
	b.CreatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO boards (id, name, board_type, mac_address, ip_address, status, total_pins, available_pins, last_seen, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Name, b.BoardType, b.MACAddress, b.IPAddress, b.Status, b.TotalPins,
		marshalJSON(b.AvailablePins), fmtTime(b.LastSeen), fmtTime(b.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create board: %w", err)
	}
	return nil
}

// attachDevices loads the devices owned by each board in one query.
func (s *boardStore) attachDevices(ctx context.Context, boards []*Board) error {
	if len(boards) == 0 {
		return nil
	}
	byID := make(map[string]*Board, len(boards))
	for _, b := range boards {
		b.Devices = []*Device{}
		byID[b.ID] = b
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+deviceColumns+` FROM devices ORDER BY created_at ASC
	`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return err
		}
		if b, ok := byID[d.BoardID]; ok {
			b.Devices = append(b.Devices, d)
		}
	}
	return rows.Err()
}
