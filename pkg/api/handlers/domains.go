package handlers

import (
	"github.com/mzafar/homehub/pkg/command"
	"github.com/mzafar/homehub/pkg/db"
)

// NewDoorAccessHandler serves /door-access: keypad entry, servo lock/unlock,
// and LCD feedback grouped under the door_access system.
func NewDoorAccessHandler(database *db.DB) *ActuatorHandler {
	return newActuatorHandler(database, domainConfig{
		domain:      command.DoorAccess,
		viewTypes:   []string{"servo_motor", "keypad_row", "lcd_display"},
		actorTypes:  []string{"servo_motor"},
		systemType:  "door_access",
		patchFields: []string{"door_state", "access_attempts", "system_locked"},
		notFoundMsg: "Door servo device not found",
	})
}

// NewGarageControlHandler serves /garage-control: the garage door servo and
// the IR motion sensor watching the driveway.
func NewGarageControlHandler(database *db.DB) *ActuatorHandler {
	return newActuatorHandler(database, domainConfig{
		domain:           command.GarageControl,
		viewTypes:        []string{"servo_motor", "ir_sensor"},
		actorTypes:       []string{"servo_motor"},
		sensorDeviceType: "ir_sensor",
		sensorType:       "motion",
		systemType:       "garage_control",
		patchFields:      []string{"door_state", "auto_mode", "motion_detected", "sensor_location"},
		notFoundMsg:      "Garage door servo device not found",
	})
}

// NewFanControlHandler serves /fan-control: fan motors with manual speed
// steps or temperature-driven auto mode.
func NewFanControlHandler(database *db.DB) *ActuatorHandler {
	return newActuatorHandler(database, domainConfig{
		domain:           command.FanControl,
		viewTypes:        []string{"fan_motor", "temperature_sensor"},
		actorTypes:       []string{"fan_motor"},
		sensorDeviceType: "temperature_sensor",
		sensorType:       "temperature",
		patchFields:      []string{"current_speed", "current_temperature", "auto_mode"},
		notFoundMsg:      "Fan motor device not found",
	})
}

// NewGasAlarmHandler serves /gas-alarm: gas sensors and the buzzer under the
// smoke_alarm system.
func NewGasAlarmHandler(database *db.DB) *ActuatorHandler {
	return newActuatorHandler(database, domainConfig{
		domain:           command.GasAlarm,
		viewTypes:        []string{"gas_sensor", "buzzer"},
		actorTypes:       []string{"gas_sensor", "buzzer"},
		sensorDeviceType: "gas_sensor",
		sensorType:       "smoke",
		systemType:       "smoke_alarm",
		patchFields:      []string{"gas_level", "alarm_active", "buzzer_active", "threshold_exceeded"},
		notFoundMsg:      "Gas alarm device not found",
	})
}

// NewRainControlHandler serves /rain-control: rain sensors and window servos,
// with emergency open/close actions that jump the queue.
func NewRainControlHandler(database *db.DB) *ActuatorHandler {
	return newActuatorHandler(database, domainConfig{
		domain:           command.RainControl,
		viewTypes:        []string{"rain_sensor", "window_servo"},
		actorTypes:       []string{"rain_sensor", "window_servo"},
		sensorDeviceType: "rain_sensor",
		sensorType:       "rain",
		systemType:       "rain_detection",
		patchFields:      []string{"rain_level", "rain_reading", "window_state", "mode", "dry_count"},
		patchRenames:     map[string]string{"rain_reading": "last_reading"},
		notFoundMsg:      "Rain detection device not found",
	})
}
