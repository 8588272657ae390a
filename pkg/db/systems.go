package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrSystemNotFound = errors.New("system not found")

// System is a named subsystem (door_access, garage_control, smoke_alarm,
// rain_detection, ...) grouping devices for one cross-cutting feature.
type System struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
	BoardID     string    `json:"board_id"`
	RoomID      *string   `json:"room_id"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`

	Board *Board `json:"board,omitempty"`
	Room  *Room  `json:"room,omitempty"`
}

// SystemStore provides system CRUD operations.
type SystemStore interface {
	Get(ctx context.Context, id string) (*System, error)
	FindByType(ctx context.Context, systemType string) (*System, error)
	List(ctx context.Context) ([]*System, error)
	Create(ctx context.Context, sys *System) error
}

// Systems returns a SystemStore for this database.
func (db *DB) Systems() SystemStore {
	return &systemStore{db: db}
}

type systemStore struct {
	db *DB
}

const systemColumns = `id, name, type, description, board_id, room_id, is_active, created_at`

func scanSystem(row interface{ Scan(...any) error }) (*System, error) {
	sys := &System{}
	var createdAt string
	err := row.Scan(&sys.ID, &sys.Name, &sys.Type, &sys.Description,
		&sys.BoardID, &sys.RoomID, &sys.IsActive, &createdAt)
	if err != nil {
		return nil, err
	}
	sys.CreatedAt = parseTime(createdAt)
	return sys, nil
}

func (s *systemStore) Get(ctx context.Context, id string) (*System, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+systemColumns+` FROM systems WHERE id = ?
	`, id)
	sys, err := scanSystem(row)
	if err == sql.ErrNoRows {
		return nil, ErrSystemNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.attachRelated(ctx, []*System{sys}); err != nil {
		return nil, err
	}
	return sys, nil
}

func (s *systemStore) FindByType(ctx context.Context, systemType string) (*System, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+systemColumns+` FROM systems WHERE type = ? LIMIT 1
	`, systemType)
	sys, err := scanSystem(row)
	if err == sql.ErrNoRows {
		return nil, ErrSystemNotFound
	}
	if err != nil {
		return nil, err
	}
	return sys, nil
}

func (s *systemStore) List(ctx context.Context) ([]*System, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+systemColumns+` FROM systems ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var systems []*System
	for rows.Next() {
		sys, err := scanSystem(rows)
		if err != nil {
			return nil, err
		}
		systems = append(systems, sys)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachRelated(ctx, systems); err != nil {
		return nil, err
	}
	return systems, nil
}

func (s *systemStore) Create(ctx context.Context, sys *System) error {
	if sys.ID == "" {
		sys.ID = uuid.NewString()
	}
	sys.IsActive = true
	sys.CreatedAt = time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO systems (id, name, type, description, board_id, room_id, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, sys.ID, sys.Name, sys.Type, sys.Description, sys.BoardID, sys.RoomID, sys.IsActive, fmtTime(sys.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create system: %w", err)
	}
	return nil
}

func (s *systemStore) attachRelated(ctx context.Context, systems []*System) error {
	for _, sys := range systems {
		row := s.db.QueryRowContext(ctx, `
			SELECT `+boardColumns+` FROM boards WHERE id = ?
		`, sys.BoardID)
		b, err := scanBoard(row)
		if err != nil && err != sql.ErrNoRows {
			return err
		}
		sys.Board = b

		if sys.RoomID != nil {
			r := &Room{}
			var createdAt string
			err := s.db.QueryRowContext(ctx, `
				SELECT id, name, description, created_at FROM rooms WHERE id = ?
			`, *sys.RoomID).Scan(&r.ID, &r.Name, &r.Description, &createdAt)
			if err != nil && err != sql.ErrNoRows {
				return err
			}
			if err == nil {
				r.CreatedAt = parseTime(createdAt)
				sys.Room = r
			}
		}
	}
	return nil
}
