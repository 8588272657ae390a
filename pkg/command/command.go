// Package command defines the per-domain action vocabularies that feed the
// command queue. Each domain's legal actions and parameters are expressed as
// a JSON Schema validated at the API boundary, and a builder turns a
// validated request into the command_data payload, the current_state
// promotion, and the queue priority.
package command

// Domain identifies one actuator subsystem.
type Domain string

const (
	DoorAccess    Domain = "door_access"
	GarageControl Domain = "garage_control"
	FanControl    Domain = "fan_control"
	GasAlarm      Domain = "gas_alarm"
	RainControl   Domain = "rain_control"
)

// CommandType returns the command_type string written to queue entries for
// this domain. These values are part of the firmware contract.
func (d Domain) CommandType() string {
	switch d {
	case DoorAccess:
		return "door_control"
	case GasAlarm:
		return "gas_alarm_control"
	default:
		return string(d)
	}
}

// Queue priorities: smaller values are serviced first.
const (
	PriorityEmergency = 0
	PriorityNormal    = 1
)
