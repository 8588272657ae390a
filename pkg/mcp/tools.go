package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Check the health status of the Homehub service and its database"),
		),
		s.handleGetHealth,
	)

	// List boards
	s.mcpServer.AddTool(
		mcp.NewTool("list_boards",
			mcp.WithDescription("List all controller boards with their attached devices"),
		),
		s.handleListBoards,
	)

	// List devices
	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List all devices with their board, room, and current state"),
		),
		s.handleListDevices,
	)

	// List systems
	s.mcpServer.AddTool(
		mcp.NewTool("list_systems",
			mcp.WithDescription("List the named subsystems (door access, garage control, smoke alarm, rain detection, ...)"),
		),
		s.handleListSystems,
	)

	// Latest sensor readings
	s.mcpServer.AddTool(
		mcp.NewTool("latest_readings",
			mcp.WithDescription("Get the most recent sensor reading for every device that has one"),
		),
		s.handleLatestReadings,
	)

	// List queued commands
	s.mcpServer.AddTool(
		mcp.NewTool("list_commands",
			mcp.WithDescription("List command queue entries, most urgent first"),
			mcp.WithString("device_id",
				mcp.Description("Only entries for this device"),
			),
			mcp.WithString("status",
				mcp.Description("Entry status to match (default pending)"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum entries to return (default 50)"),
			),
		),
		s.handleListCommands,
	)

	// Enqueue a command
	s.mcpServer.AddTool(
		mcp.NewTool("send_command",
			mcp.WithDescription("Enqueue a command for a device; the device's firmware polls and executes it"),
			mcp.WithString("device_id",
				mcp.Required(),
				mcp.Description("Target device ID"),
			),
			mcp.WithString("command_type",
				mcp.Required(),
				mcp.Description("Command type the firmware understands (e.g. fan_control, door_control)"),
			),
			mcp.WithObject("command_data",
				mcp.Required(),
				mcp.Description("Free-form command payload"),
			),
			mcp.WithNumber("priority",
				mcp.Description("Queue priority; smaller is more urgent (default 1)"),
			),
		),
		s.handleSendCommand,
	)
}
