package db

import (
	"context"
	"testing"
	"time"
)

func insertReading(t *testing.T, database *DB, deviceID, sensorType string, value float64, ts time.Time) *Reading {
	t.Helper()
	r := &Reading{DeviceID: deviceID, SensorType: sensorType, Value: value, Timestamp: ts}
	if err := database.Readings().Insert(context.Background(), r); err != nil {
		t.Fatalf("failed to insert reading: %v", err)
	}
	return r
}

func TestLatestPerDevice(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	temp := testDevice(t, database, b.ID, "Temp", "temperature_sensor", 4)
	rain := testDevice(t, database, b.ID, "Rain", "rain_sensor", 6)

	base := time.Now().Add(-time.Hour)
	insertReading(t, database, temp.ID, "temperature", 21.0, base)
	insertReading(t, database, temp.ID, "temperature", 22.5, base.Add(10*time.Minute))
	insertReading(t, database, temp.ID, "temperature", 23.1, base.Add(20*time.Minute))
	insertReading(t, database, rain.ID, "rain", 512, base.Add(5*time.Minute))

	latest, err := database.Readings().LatestPerDevice(ctx)
	if err != nil {
		t.Fatalf("LatestPerDevice failed: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("got %d readings, want 2 (one per device)", len(latest))
	}

	byDevice := map[string]*Reading{}
	for _, r := range latest {
		byDevice[r.DeviceID] = r
	}
	if got := byDevice[temp.ID]; got == nil || got.Value != 23.1 {
		t.Errorf("latest temperature = %v, want 23.1", byDevice[temp.ID])
	}
	if got := byDevice[rain.ID]; got == nil || got.Value != 512 {
		t.Errorf("latest rain = %v, want 512", byDevice[rain.ID])
	}
	if byDevice[temp.ID].Device == nil {
		t.Error("latest readings should be enriched with their device")
	}
}

func TestLatestForSensor(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	temp := testDevice(t, database, b.ID, "Temp", "temperature_sensor", 4)

	base := time.Now().Add(-time.Hour)
	insertReading(t, database, temp.ID, "temperature", 19.0, base)
	insertReading(t, database, temp.ID, "temperature", 20.0, base.Add(time.Minute))
	insertReading(t, database, temp.ID, "humidity", 60.0, base.Add(2*time.Minute))

	got, err := database.Readings().LatestForSensor(ctx, []string{temp.ID}, "temperature")
	if err != nil {
		t.Fatalf("LatestForSensor failed: %v", err)
	}
	if got == nil || got.Value != 20.0 {
		t.Errorf("latest temperature reading = %v, want 20.0", got)
	}

	// No matching sensor type
	got, err = database.Readings().LatestForSensor(ctx, []string{temp.ID}, "gas")
	if err != nil {
		t.Fatalf("LatestForSensor failed: %v", err)
	}
	if got != nil {
		t.Errorf("got %v, want nil for absent sensor type", got)
	}

	// Empty device set
	got, err = database.Readings().LatestForSensor(ctx, nil, "temperature")
	if err != nil || got != nil {
		t.Errorf("empty device set should return nil, nil; got %v, %v", got, err)
	}
}

func TestInsertBatch(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	gas := testDevice(t, database, b.ID, "Gas", "gas_sensor", 34)

	readings := []*Reading{
		{DeviceID: gas.ID, SensorType: "gas", Value: 120},
		{DeviceID: gas.ID, SensorType: "gas", Value: 140},
		{DeviceID: gas.ID, SensorType: "gas", Value: 160},
	}
	if err := database.Readings().InsertBatch(ctx, readings); err != nil {
		t.Fatalf("InsertBatch failed: %v", err)
	}

	var count int
	err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM sensor_readings`).Scan(&count)
	if err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 3 {
		t.Errorf("got %d rows, want 3", count)
	}
}

func TestInsertBatch_RollsBackOnFailure(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	b := testBoard(t, database, "Hub")
	gas := testDevice(t, database, b.ID, "Gas", "gas_sensor", 34)

	readings := []*Reading{
		{DeviceID: gas.ID, SensorType: "gas", Value: 120},
		{DeviceID: "no-such-device", SensorType: "gas", Value: 140},
	}
	if err := database.Readings().InsertBatch(ctx, readings); err == nil {
		t.Fatal("expected foreign key failure")
	}

	var count int
	if err := database.QueryRowContext(ctx, `SELECT COUNT(*) FROM sensor_readings`).Scan(&count); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	if count != 0 {
		t.Errorf("got %d rows after rollback, want 0", count)
	}
}
