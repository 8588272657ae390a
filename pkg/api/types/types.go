package types

import (
	"time"

	"github.com/mzafar/homehub/pkg/db"
)

// --- Request DTOs ---

// CreateBoardRequest is the request body for POST /boards
type CreateBoardRequest struct {
	Name          string  `json:"name"`
	BoardType     string  `json:"board_type"`
	MACAddress    *string `json:"mac_address"`
	IPAddress     *string `json:"ip_address"`
	TotalPins     int     `json:"total_pins"`
	AvailablePins []int   `json:"available_pins"`
}

// CreateDeviceRequest is the request body for POST /devices
type CreateDeviceRequest struct {
	BoardID    string         `json:"board_id"`
	RoomID     *string        `json:"room_id"`
	SystemID   *string        `json:"system_id"`
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	PinNumber  *int           `json:"pin_number"`
	PinType    string         `json:"pin_type"`
	Properties map[string]any `json:"properties"`
}

// CreateSystemRequest is the request body for POST /systems
type CreateSystemRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
	BoardID     string  `json:"board_id"`
	RoomID      *string `json:"room_id"`
}

// CreateRoomRequest is the request body for POST /rooms
type CreateRoomRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// RecordReadingRequest is the request body for POST /sensors/latest and the
// element type of POST /sensors/batch. Value and ReadingValue are aliases;
// either satisfies the required value field.
type RecordReadingRequest struct {
	DeviceID     string   `json:"device_id"`
	SensorType   string   `json:"sensor_type"`
	Value        *float64 `json:"value"`
	ReadingValue *float64 `json:"reading_value"`
	Unit         *string  `json:"unit"`
}

// SensorValue returns the reading value under either accepted field name.
func (r *RecordReadingRequest) SensorValue() (float64, bool) {
	if r.ReadingValue != nil {
		return *r.ReadingValue, true
	}
	if r.Value != nil {
		return *r.Value, true
	}
	return 0, false
}

// BatchReadingsRequest is the request body for POST /sensors/batch
type BatchReadingsRequest struct {
	Readings []RecordReadingRequest `json:"readings"`
}

// EnqueueCommandRequest is the request body for POST /commands
type EnqueueCommandRequest struct {
	DeviceID    string         `json:"device_id"`
	CommandType string         `json:"command_type"`
	CommandData map[string]any `json:"command_data"`
	Priority    *int           `json:"priority"`
}

// AdvanceCommandRequest is the request body for PATCH /commands.
// ExecutedAt is decoded only to detect presence: the server stamps its own
// clock and never persists the caller's value. Any non-null value triggers
// the stamp, including falsy ones like "" or false.
type AdvanceCommandRequest struct {
	ID           string         `json:"id"`
	Status       string         `json:"status"`
	ExecutedAt   any            `json:"executed_at"`
	ResponseData map[string]any `json:"response_data"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Timestamp time.Time `json:"timestamp"`
}

// BatchReadingsResponse is returned from POST /sensors/batch
type BatchReadingsResponse struct {
	Success  bool          `json:"success"`
	Count    int           `json:"count"`
	Readings []*db.Reading `json:"readings"`
}

// DomainStatusResponse is the aggregate view returned by domain GETs:
// the domain's devices, the most recent relevant sensor reading, and the
// owning system row where one applies.
type DomainStatusResponse struct {
	Devices       []*db.Device `json:"devices"`
	LatestReading *db.Reading  `json:"latest_reading,omitempty"`
	System        *db.System   `json:"system,omitempty"`
	Timestamp     time.Time    `json:"timestamp"`
}

// StatePatchResponse is returned by domain PATCHes after a state merge.
type StatePatchResponse struct {
	Success      bool           `json:"success"`
	CurrentState map[string]any `json:"current_state"`
}
