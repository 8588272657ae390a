package db

import (
	"context"
	"errors"
	"testing"
)

func TestBoardCreate_Defaults(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := &Board{Name: "Living Room Hub", BoardType: "esp32"}
	if err := database.Boards().Create(ctx, b); err != nil {
		t.Fatalf("failed to create board: %v", err)
	}

	got, err := database.Boards().Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("failed to fetch board: %v", err)
	}
	if got.Status != "offline" {
		t.Errorf("status = %q, want %q", got.Status, "offline")
	}
	if got.TotalPins != 30 {
		t.Errorf("total_pins = %d, want 30", got.TotalPins)
	}
	if got.AvailablePins == nil || len(got.AvailablePins) != 0 {
		t.Errorf("available_pins = %v, want empty", got.AvailablePins)
	}
	if got.LastSeen.IsZero() {
		t.Error("last_seen should be stamped on create")
	}
	if got.Devices == nil || len(got.Devices) != 0 {
		t.Errorf("devices = %v, want empty", got.Devices)
	}
}

func TestBoardCreate_PreservesFields(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	mac := "AA:BB:CC:DD:EE:01"
	ip := "192.168.1.40"
	b := &Board{
		Name:          "Garage Board",
		BoardType:     "esp32b",
		MACAddress:    &mac,
		IPAddress:     &ip,
		TotalPins:     38,
		AvailablePins: []int{4, 5, 12},
	}
	if err := database.Boards().Create(ctx, b); err != nil {
		t.Fatalf("failed to create board: %v", err)
	}

	got, err := database.Boards().Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("failed to fetch board: %v", err)
	}
	if got.MACAddress == nil || *got.MACAddress != mac {
		t.Errorf("mac_address = %v, want %q", got.MACAddress, mac)
	}
	if got.IPAddress == nil || *got.IPAddress != ip {
		t.Errorf("ip_address = %v, want %q", got.IPAddress, ip)
	}
	if got.TotalPins != 38 {
		t.Errorf("total_pins = %d, want 38", got.TotalPins)
	}
	if len(got.AvailablePins) != 3 || got.AvailablePins[0] != 4 {
		t.Errorf("available_pins = %v, want [4 5 12]", got.AvailablePins)
	}
}

func TestBoardCreate_DuplicateMAC(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	mac := "AA:BB:CC:DD:EE:02"
	first := &Board{Name: "First", BoardType: "esp32", MACAddress: &mac}
	if err := database.Boards().Create(ctx, first); err != nil {
		t.Fatalf("failed to create first board: %v", err)
	}

	second := &Board{Name: "Second", BoardType: "esp32", MACAddress: &mac}
	if err := database.Boards().Create(ctx, second); err == nil {
		t.Fatal("expected unique constraint error for duplicate MAC")
	}
}

func TestBoardFindByMAC(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	mac := "AA:BB:CC:DD:EE:03"
	b := &Board{Name: "Kitchen Hub", BoardType: "esp32", MACAddress: &mac}
	if err := database.Boards().Create(ctx, b); err != nil {
		t.Fatalf("failed to create board: %v", err)
	}

	got, err := database.Boards().FindByMAC(ctx, mac)
	if err != nil {
		t.Fatalf("FindByMAC failed: %v", err)
	}
	if got.ID != b.ID {
		t.Errorf("found board %q, want %q", got.ID, b.ID)
	}

	_, err = database.Boards().FindByMAC(ctx, "FF:FF:FF:FF:FF:FF")
	if !errors.Is(err, ErrBoardNotFound) {
		t.Errorf("err = %v, want ErrBoardNotFound", err)
	}
}

func TestBoardList_IncludesDevices(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	testDevice(t, database, b.ID, "LED", "led", 5)
	testDevice(t, database, b.ID, "Fan", "fan_motor", 12)

	boards, err := database.Boards().List(ctx)
	if err != nil {
		t.Fatalf("failed to list boards: %v", err)
	}
	if len(boards) != 1 {
		t.Fatalf("got %d boards, want 1", len(boards))
	}
	if len(boards[0].Devices) != 2 {
		t.Errorf("got %d devices on board, want 2", len(boards[0].Devices))
	}
}
