package mcp

import "github.com/mzafar/homehub/pkg/db"

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Status    string `json:"status" jsonschema:"description=Overall health status (healthy or unhealthy)"`
	Database  string `json:"database" jsonschema:"description=Database connection status"`
	Timestamp string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Boards Tool ---

// ListBoardsOutput is the output for the list_boards tool
type ListBoardsOutput struct {
	Boards []*db.Board `json:"boards" jsonschema:"description=Controller boards with their devices"`
	Count  int         `json:"count" jsonschema:"description=Total number of boards"`
}

// --- List Devices Tool ---

// ListDevicesOutput is the output for the list_devices tool
type ListDevicesOutput struct {
	Devices []*db.Device `json:"devices" jsonschema:"description=Devices with board, room, and current state"`
	Count   int          `json:"count" jsonschema:"description=Total number of devices"`
}

// --- List Systems Tool ---

// ListSystemsOutput is the output for the list_systems tool
type ListSystemsOutput struct {
	Systems []*db.System `json:"systems" jsonschema:"description=Named subsystems"`
	Count   int          `json:"count" jsonschema:"description=Total number of systems"`
}

// --- Latest Readings Tool ---

// LatestReadingsOutput is the output for the latest_readings tool
type LatestReadingsOutput struct {
	Readings []*db.Reading `json:"readings" jsonschema:"description=Most recent reading per device"`
	Count    int           `json:"count" jsonschema:"description=Number of devices with readings"`
}

// --- List Commands Tool ---

// ListCommandsOutput is the output for the list_commands tool
type ListCommandsOutput struct {
	Commands []*db.Command `json:"commands" jsonschema:"description=Queue entries, most urgent first"`
	Count    int           `json:"count" jsonschema:"description=Number of entries returned"`
}

// --- Send Command Tool ---

// SendCommandOutput is the output for the send_command tool
type SendCommandOutput struct {
	Command *db.Command `json:"command" jsonschema:"description=The enqueued command"`
}
