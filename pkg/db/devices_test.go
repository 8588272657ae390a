package db

import (
	"context"
	"errors"
	"testing"
)

func TestDeviceCreate_Defaults(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	d := &Device{BoardID: b.ID, Name: "Garage LED", Type: "led", PinNumber: 5}
	if err := database.Devices().Create(ctx, d); err != nil {
		t.Fatalf("failed to create device: %v", err)
	}

	got, err := database.Devices().Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("failed to fetch device: %v", err)
	}
	if got.PinType != "digital" {
		t.Errorf("pin_type = %q, want %q", got.PinType, "digital")
	}
	if got.IsOnline {
		t.Error("new device should not be online")
	}
	if len(got.CurrentState) != 0 {
		t.Errorf("current_state = %v, want empty", got.CurrentState)
	}
	if len(got.Properties) != 0 {
		t.Errorf("properties = %v, want empty", got.Properties)
	}
	if got.Board == nil || got.Board.ID != b.ID {
		t.Error("device should be enriched with its board")
	}
}

func TestDeviceCreate_PinConflict(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	testDevice(t, database, b.ID, "LED", "led", 5)

	dup := &Device{BoardID: b.ID, Name: "Buzzer", Type: "buzzer", PinNumber: 5}
	err := database.Devices().Create(ctx, dup)
	if !errors.Is(err, ErrPinInUse) {
		t.Errorf("err = %v, want ErrPinInUse", err)
	}

	// Same pin on a different board is fine
	other := testBoard(t, database, "Other Hub")
	ok := &Device{BoardID: other.ID, Name: "Buzzer", Type: "buzzer", PinNumber: 5}
	if err := database.Devices().Create(ctx, ok); err != nil {
		t.Errorf("same pin on another board should succeed, got %v", err)
	}
}

func TestDeviceFindByPin(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	d := testDevice(t, database, b.ID, "LED", "led", 7)

	got, err := database.Devices().FindByPin(ctx, b.ID, 7)
	if err != nil {
		t.Fatalf("FindByPin failed: %v", err)
	}
	if got.ID != d.ID {
		t.Errorf("found device %q, want %q", got.ID, d.ID)
	}

	_, err = database.Devices().FindByPin(ctx, b.ID, 8)
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("err = %v, want ErrDeviceNotFound", err)
	}
}

func TestDeviceGetActor_TypeFilter(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	fan := testDevice(t, database, b.ID, "Fan", "fan_motor", 12)

	if _, err := database.Devices().GetActor(ctx, fan.ID, "fan_motor"); err != nil {
		t.Errorf("GetActor with matching type failed: %v", err)
	}
	_, err := database.Devices().GetActor(ctx, fan.ID, "servo_motor")
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("err = %v, want ErrDeviceNotFound for wrong type", err)
	}
}

func TestDeviceListForDomain_TypeFilter(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	servo := testDevice(t, database, b.ID, "Door Servo", "servo_motor", 2)
	keypad := testDevice(t, database, b.ID, "Keypad", "keypad_row", 3)
	testDevice(t, database, b.ID, "Fan", "fan_motor", 4)

	devices, err := database.Devices().ListForDomain(ctx, []string{"servo_motor", "keypad_row"})
	if err != nil {
		t.Fatalf("ListForDomain failed: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}
	if devices[0].ID != servo.ID || devices[1].ID != keypad.ID {
		t.Errorf("got %s, %s; want oldest-first servo then keypad", devices[0].ID, devices[1].ID)
	}

	// System membership does not narrow the list; selection is by type only.
	doorSystem := &System{Name: "Front Door", Type: "door_access", BoardID: b.ID}
	if err := database.Systems().Create(ctx, doorSystem); err != nil {
		t.Fatalf("failed to create system: %v", err)
	}
	owned := &Device{BoardID: b.ID, SystemID: &doorSystem.ID, Name: "Back Servo", Type: "servo_motor", PinNumber: 5}
	if err := database.Devices().Create(ctx, owned); err != nil {
		t.Fatalf("failed to create servo: %v", err)
	}
	devices, err = database.Devices().ListForDomain(ctx, []string{"servo_motor"})
	if err != nil {
		t.Fatalf("ListForDomain failed: %v", err)
	}
	if len(devices) != 2 {
		t.Errorf("got %d servos, want 2 regardless of system membership", len(devices))
	}
}

func TestDeviceMergeState(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	d := testDevice(t, database, b.ID, "Fan", "fan_motor", 12)

	merged, err := database.Devices().MergeState(ctx, d.ID, map[string]any{"current_speed": 2.0}, true)
	if err != nil {
		t.Fatalf("MergeState failed: %v", err)
	}
	if merged["current_speed"] != 2.0 {
		t.Errorf("current_speed = %v, want 2", merged["current_speed"])
	}
	if _, ok := merged["last_updated"]; !ok {
		t.Error("merge should stamp last_updated in state")
	}

	// Second merge keeps earlier keys (last-write-wins per field)
	merged, err = database.Devices().MergeState(ctx, d.ID, map[string]any{"auto_mode": true}, true)
	if err != nil {
		t.Fatalf("second MergeState failed: %v", err)
	}
	if merged["current_speed"] != 2.0 {
		t.Errorf("current_speed lost on merge: %v", merged)
	}
	if merged["auto_mode"] != true {
		t.Errorf("auto_mode = %v, want true", merged["auto_mode"])
	}

	got, err := database.Devices().Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("failed to fetch device: %v", err)
	}
	if !got.IsOnline {
		t.Error("markOnline should set is_online")
	}
	if got.LastUpdated == nil {
		t.Error("merge should stamp the device's last_updated column")
	}

	_, err = database.Devices().MergeState(ctx, "missing", map[string]any{"x": 1}, false)
	if !errors.Is(err, ErrDeviceNotFound) {
		t.Errorf("err = %v, want ErrDeviceNotFound", err)
	}
}
