package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mzafar/homehub/pkg/db"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dbStatus := "connected"
	status := "healthy"
	if err := s.database.PingContext(ctx); err != nil {
		dbStatus = "disconnected"
		status = "unhealthy"
	}

	out := GetHealthOutput{
		Status:    status,
		Database:  dbStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListBoards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	boards, err := s.database.Boards().List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list boards: %s", err)), nil
	}

	out := ListBoardsOutput{
		Boards: boards,
		Count:  len(boards),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	devices, err := s.database.Devices().List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list devices: %s", err)), nil
	}

	out := ListDevicesOutput{
		Devices: devices,
		Count:   len(devices),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListSystems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	systems, err := s.database.Systems().List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list systems: %s", err)), nil
	}

	out := ListSystemsOutput{
		Systems: systems,
		Count:   len(systems),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleLatestReadings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	readings, err := s.database.Readings().LatestPerDevice(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch readings: %s", err)), nil
	}

	out := LatestReadingsOutput{
		Readings: readings,
		Count:    len(readings),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListCommands(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := db.CommandFilter{
		DeviceID: request.GetString("device_id", ""),
		Status:   request.GetString("status", "pending"),
		Limit:    request.GetInt("limit", 50),
	}

	commands, err := s.database.Commands().List(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list commands: %s", err)), nil
	}

	out := ListCommandsOutput{
		Commands: commands,
		Count:    len(commands),
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleSendCommand(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	commandType, err := requiredString(request, "command_type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	data, ok := args["command_data"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError(`required parameter "command_data" must be an object`), nil
	}

	cmd := &db.Command{
		DeviceID:    deviceID,
		CommandType: commandType,
		CommandData: data,
		Priority:    request.GetInt("priority", 1),
	}
	if err := s.database.Commands().Enqueue(ctx, cmd, nil); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to enqueue command: %s", err)), nil
	}

	out := SendCommandOutput{Command: cmd}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
