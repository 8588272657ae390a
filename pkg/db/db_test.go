package db

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return database
}

func TestMigrate_SetsSchemaVersion(t *testing.T) {
	database := openTestDB(t)

	version, err := database.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("failed to read schema version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	database := openTestDB(t)

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
}

// testBoard inserts a board and returns it.
func testBoard(t *testing.T, database *DB, name string) *Board {
	t.Helper()
	b := &Board{Name: name, BoardType: "esp32"}
	if err := database.Boards().Create(context.Background(), b); err != nil {
		t.Fatalf("failed to create board: %v", err)
	}
	return b
}

// testDevice inserts a device on the given board and returns it.
func testDevice(t *testing.T, database *DB, boardID, name, deviceType string, pin int) *Device {
	t.Helper()
	d := &Device{BoardID: boardID, Name: name, Type: deviceType, PinNumber: pin}
	if err := database.Devices().Create(context.Background(), d); err != nil {
		t.Fatalf("failed to create device: %v", err)
	}
	return d
}
