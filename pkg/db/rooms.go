package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrRoomNotFound = errors.New("room not found")

// Room is a logical grouping that devices and systems optionally reference.
type Room struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RoomStore provides room CRUD operations.
type RoomStore interface {
	Get(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Create(ctx context.Context, r *Room) error
}

// Rooms returns a RoomStore for this database.
func (db *DB) Rooms() RoomStore {
	return &roomStore{db: db}
}

type roomStore struct {
	db *DB
}

func (s *roomStore) Get(ctx context.Context, id string) (*Room, error) {
	r := &Room{}
	var createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at FROM rooms WHERE id = ?
	`, id).Scan(&r.ID, &r.Name, &r.Description, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

func (s *roomStore) List(ctx context.Context) ([]*Room, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, created_at FROM rooms ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var rooms []*Room
	for rows.Next() {
		r := &Room{}
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt = parseTime(createdAt)
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (s *roomStore) Create(ctx context.Context, r *Room) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.CreatedAt = time.Now()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rooms (id, name, description, created_at) VALUES (?, ?, ?, ?)
	`, r.ID, r.Name, r.Description, fmtTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}
	return nil
}
