package db

import (
	"context"
	"testing"
	"time"
)

func enqueue(t *testing.T, database *DB, deviceID, cmdType string, priority int) *Command {
	t.Helper()
	c := &Command{
		DeviceID:    deviceID,
		CommandType: cmdType,
		CommandData: map[string]any{"action": "test"},
		Priority:    priority,
	}
	if err := database.Commands().Enqueue(context.Background(), c, nil); err != nil {
		t.Fatalf("failed to enqueue command: %v", err)
	}
	return c
}

func TestCommandEnqueue_ForcesPending(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	d := testDevice(t, database, b.ID, "Fan", "fan_motor", 5)

	c := &Command{
		DeviceID:    d.ID,
		CommandType: "fan_control",
		CommandData: map[string]any{"action": "set_speed", "speed": 2},
		Priority:    1,
		Status:      "completed",
	}
	if err := database.Commands().Enqueue(ctx, c, nil); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}
	if c.Status != "pending" {
		t.Errorf("status = %q, want pending regardless of caller input", c.Status)
	}
	if c.ID == "" {
		t.Error("expected generated id")
	}
	if c.Device == nil || c.Device.ID != d.ID {
		t.Error("enqueued command should be enriched with its device")
	}

	got, err := database.Commands().Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != "pending" {
		t.Errorf("stored status = %q, want pending", got.Status)
	}
	if got.ExecutedAt != nil {
		t.Error("executed_at should be unset on a fresh command")
	}
}

func TestCommandEnqueue_MergesStateTransactionally(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	d := testDevice(t, database, b.ID, "Fan", "fan_motor", 5)

	c := &Command{
		DeviceID:    d.ID,
		CommandType: "fan_control",
		CommandData: map[string]any{"action": "set_speed", "speed": 3},
		Priority:    1,
	}
	merge := map[string]any{"auto_mode": false, "manual_speed": 3.0}
	if err := database.Commands().Enqueue(ctx, c, merge); err != nil {
		t.Fatalf("Enqueue failed: %v", err)
	}

	dev, err := database.Devices().Get(ctx, d.ID)
	if err != nil {
		t.Fatalf("Get device failed: %v", err)
	}
	if dev.CurrentState["auto_mode"] != false {
		t.Errorf("auto_mode = %v, want false", dev.CurrentState["auto_mode"])
	}
	if dev.CurrentState["manual_speed"] != 3.0 {
		t.Errorf("manual_speed = %v, want 3", dev.CurrentState["manual_speed"])
	}
}

func TestCommandEnqueue_RollsBackOnBadDevice(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	c := &Command{
		DeviceID:    "no-such-device",
		CommandType: "fan_control",
		CommandData: map[string]any{"action": "set_speed"},
	}
	if err := database.Commands().Enqueue(ctx, c, nil); err == nil {
		t.Fatal("expected foreign key failure")
	}

	var count int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM command_queue`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d rows after rollback, want 0", count)
	}
}

func TestCommandList_OrdersByUrgency(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	d := testDevice(t, database, b.ID, "Window", "window_servo", 7)

	first := enqueue(t, database, d.ID, "rain_control", 1)
	time.Sleep(2 * time.Millisecond)
	second := enqueue(t, database, d.ID, "rain_control", 1)
	time.Sleep(2 * time.Millisecond)
	emergency := enqueue(t, database, d.ID, "rain_control", 0)

	got, err := database.Commands().List(ctx, CommandFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d commands, want 3", len(got))
	}
	// Smaller priority wins, then insertion order.
	if got[0].ID != emergency.ID {
		t.Errorf("got[0] = %s, want emergency command %s", got[0].ID, emergency.ID)
	}
	if got[1].ID != first.ID || got[2].ID != second.ID {
		t.Errorf("same-priority commands out of insertion order: %s, %s", got[1].ID, got[2].ID)
	}
}

func TestCommandList_Filters(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	fan := testDevice(t, database, b.ID, "Fan", "fan_motor", 5)
	window := testDevice(t, database, b.ID, "Window", "window_servo", 7)

	fanCmd := enqueue(t, database, fan.ID, "fan_control", 1)
	enqueue(t, database, window.ID, "rain_control", 1)

	got, err := database.Commands().List(ctx, CommandFilter{DeviceID: fan.ID})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != fanCmd.ID {
		t.Errorf("device filter returned %d commands, want just %s", len(got), fanCmd.ID)
	}

	got, err = database.Commands().List(ctx, CommandFilter{Status: "completed"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("status filter returned %d commands, want 0", len(got))
	}

	got, err = database.Commands().List(ctx, CommandFilter{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("limit returned %d commands, want 1", len(got))
	}
}

func TestCommandAdvance_StampsExecutedAt(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	d := testDevice(t, database, b.ID, "Fan", "fan_motor", 5)
	cmd := enqueue(t, database, d.ID, "fan_control", 1)

	before := time.Now().Add(-time.Second)
	got, err := database.Commands().Advance(ctx, cmd.ID, "completed", true, map[string]any{"ok": true})
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	after := time.Now().Add(time.Second)

	if got.Status != "completed" {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.ExecutedAt == nil {
		t.Fatal("expected executed_at to be stamped")
	}
	if got.ExecutedAt.Before(before) || got.ExecutedAt.After(after) {
		t.Errorf("executed_at %v outside server clock window", got.ExecutedAt)
	}
	if got.ResponseData["ok"] != true {
		t.Errorf("response_data = %v, want {ok: true}", got.ResponseData)
	}
}

func TestCommandAdvance_WithoutStamp(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	d := testDevice(t, database, b.ID, "Fan", "fan_motor", 5)
	cmd := enqueue(t, database, d.ID, "fan_control", 1)

	got, err := database.Commands().Advance(ctx, cmd.ID, "sent", false, nil)
	if err != nil {
		t.Fatalf("Advance failed: %v", err)
	}
	if got.Status != "sent" {
		t.Errorf("status = %q, want sent", got.Status)
	}
	if got.ExecutedAt != nil {
		t.Errorf("executed_at = %v, want nil", got.ExecutedAt)
	}
}

func TestCommandAdvance_NotFound(t *testing.T) {
	database := openTestDB(t)

	_, err := database.Commands().Advance(context.Background(), "no-such-command", "completed", true, nil)
	if err != ErrCommandNotFound {
		t.Errorf("got %v, want ErrCommandNotFound", err)
	}
}
