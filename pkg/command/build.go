package command

import (
	"strings"
	"time"
)

// Built is the result of translating a validated action request into the
// queue contract: the command_data payload the firmware will read, the
// fields promoted into the device's current_state cache, and the queue
// priority.
type Built struct {
	Data     map[string]any
	State    map[string]any
	Priority int
}

// Build translates a validated domain action request. req must already have
// passed Validate for the same domain.
func Build(d Domain, req map[string]any) Built {
	action, _ := req["action"].(string)

	b := Built{
		Data: map[string]any{
			"action":    action,
			"timestamp": time.Now().UnixMilli(),
		},
		State:    map[string]any{"last_command": action},
		Priority: PriorityNormal,
	}

	switch d {
	case DoorAccess:
		if action == "unlock" {
			if code, ok := req["access_code"]; ok {
				b.Data["access_code"] = code
			}
			b.State["access_requested"] = true
		}
		copyField(req, b.Data, "manual_override")

	case GarageControl:
		copyField(req, b.Data, "auto_mode")
		copyField(req, b.Data, "manual_override")
		if v, ok := b.Data["auto_mode"]; ok {
			b.State["auto_mode"] = v
		}

	case FanControl:
		switch action {
		case "set_speed":
			if v, ok := numField(req, "speed"); ok {
				b.Data["speed"] = int(v)
			}
			b.Data["auto_mode"] = false
		case "set_auto":
			b.Data["auto_mode"] = true
			if v, ok := numField(req, "target_temperature"); ok {
				b.Data["target_temperature"] = v
			}
		case "set_manual":
			b.Data["auto_mode"] = false
			if v, ok := numField(req, "speed"); ok {
				b.Data["speed"] = int(v)
			}
		}
		if v, ok := b.Data["auto_mode"]; ok {
			b.State["auto_mode"] = v
		}
		if v, ok := b.Data["speed"]; ok {
			b.State["manual_speed"] = v
		}
		if v, ok := b.Data["target_temperature"]; ok {
			b.State["target_temperature"] = v
		}

	case GasAlarm:
		copyField(req, b.Data, "gas_threshold")
		copyField(req, b.Data, "alarm_duration")
		if v, ok := b.Data["gas_threshold"]; ok {
			b.State["gas_threshold"] = v
		}
		if v, ok := b.Data["alarm_duration"]; ok {
			b.State["alarm_duration"] = v
		}

	case RainControl:
		switch action {
		case "set_mode":
			copyField(req, b.Data, "mode")
		case "set_window_state":
			copyField(req, b.Data, "window_state")
			b.Data["mode"] = "MANUAL"
		case "emergency_close":
			b.Data["window_state"] = "CLOSED"
			b.Data["emergency"] = true
		case "emergency_open":
			b.Data["window_state"] = "OPEN"
			b.Data["emergency"] = true
		}
		if strings.Contains(action, "emergency") {
			b.Priority = PriorityEmergency
		}
		if v, ok := b.Data["mode"]; ok {
			b.State["mode"] = v
		}
		if v, ok := b.Data["window_state"]; ok {
			b.State["window_state"] = v
		}
	}

	return b
}

func copyField(src, dst map[string]any, key string) {
	if v, ok := src[key]; ok {
		dst[key] = v
	}
}

func numField(m map[string]any, key string) (float64, bool) {
	v, ok := m[key].(float64)
	return v, ok
}
