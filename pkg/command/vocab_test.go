package command

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		domain  Domain
		payload map[string]any
		wantErr bool
	}{
		{
			name:    "door unlock with access code",
			domain:  DoorAccess,
			payload: map[string]any{"device_id": "d1", "action": "unlock", "access_code": "1234"},
		},
		{
			name:    "door rejects unknown action",
			domain:  DoorAccess,
			payload: map[string]any{"device_id": "d1", "action": "open"},
			wantErr: true,
		},
		{
			name:    "door rejects extra fields",
			domain:  DoorAccess,
			payload: map[string]any{"device_id": "d1", "action": "lock", "speed": 3.0},
			wantErr: true,
		},
		{
			name:    "door requires action",
			domain:  DoorAccess,
			payload: map[string]any{"device_id": "d1"},
			wantErr: true,
		},
		{
			name:    "garage accepts free-form action",
			domain:  GarageControl,
			payload: map[string]any{"device_id": "d1", "action": "toggle"},
		},
		{
			name:    "garage rejects empty action",
			domain:  GarageControl,
			payload: map[string]any{"device_id": "d1", "action": ""},
			wantErr: true,
		},
		{
			name:    "fan set_speed",
			domain:  FanControl,
			payload: map[string]any{"device_id": "d1", "action": "set_speed", "speed": 2.0},
		},
		{
			name:    "fan rejects speed above range",
			domain:  FanControl,
			payload: map[string]any{"device_id": "d1", "action": "set_speed", "speed": 300.0},
			wantErr: true,
		},
		{
			name:    "fan rejects non-numeric speed",
			domain:  FanControl,
			payload: map[string]any{"device_id": "d1", "action": "set_speed", "speed": "fast"},
			wantErr: true,
		},
		{
			name:    "gas threshold update",
			domain:  GasAlarm,
			payload: map[string]any{"device_id": "d1", "action": "set_threshold", "gas_threshold": 200.0},
		},
		{
			name:    "rain set_mode",
			domain:  RainControl,
			payload: map[string]any{"device_id": "d1", "action": "set_mode", "mode": "AUTO"},
		},
		{
			name:    "rain rejects invalid mode value",
			domain:  RainControl,
			payload: map[string]any{"device_id": "d1", "action": "set_mode", "mode": "auto"},
			wantErr: true,
		},
		{
			name:    "rain emergency_close",
			domain:  RainControl,
			payload: map[string]any{"device_id": "d1", "action": "emergency_close"},
		},
		{
			name:    "unknown domain",
			domain:  Domain("lighting"),
			payload: map[string]any{"device_id": "d1", "action": "on"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.domain, tt.payload)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCommandType(t *testing.T) {
	tests := []struct {
		domain Domain
		want   string
	}{
		{DoorAccess, "door_control"},
		{GarageControl, "garage_control"},
		{FanControl, "fan_control"},
		{GasAlarm, "gas_alarm_control"},
		{RainControl, "rain_control"},
	}
	for _, tt := range tests {
		if got := tt.domain.CommandType(); got != tt.want {
			t.Errorf("%s.CommandType() = %q, want %q", tt.domain, got, tt.want)
		}
	}
}
