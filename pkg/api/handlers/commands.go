package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mzafar/homehub/pkg/api/types"
	"github.com/mzafar/homehub/pkg/db"
)

const defaultCommandLimit = 50

// CommandsHandler handles the generic command queue endpoints
type CommandsHandler struct {
	database *db.DB
}

// NewCommandsHandler creates a new commands handler
func NewCommandsHandler(database *db.DB) *CommandsHandler {
	return &CommandsHandler{database: database}
}

// List handles GET /commands
// @Summary      List queue entries
// @Description  Returns queue entries ordered by urgency (priority ascending,
// @Description  then oldest first). Defaults to pending entries, limit 50.
// @Tags         commands
// @Produce      json
// @Param        device_id  query  string  false  "Filter by device"
// @Param        status     query  string  false  "Filter by status (default pending)"
// @Param        limit      query  int     false  "Maximum entries (default 50)"
// @Success      200  {array}   db.Command
// @Failure      500  {object}  types.ErrorResponse
// @Router       /commands [get]
func (h *CommandsHandler) List(c *gin.Context) {
	filter := db.CommandFilter{
		DeviceID: c.Query("device_id"),
		Status:   c.DefaultQuery("status", "pending"),
		Limit:    defaultCommandLimit,
	}
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filter.Limit = n
		}
	}

	commands, err := h.database.Commands().List(c.Request.Context(), filter)
	if err != nil {
		storeError(c, err, "Failed to fetch commands from database")
		return
	}
	if commands == nil {
		commands = []*db.Command{}
	}
	c.JSON(http.StatusOK, commands)
}

// Create handles POST /commands
// @Summary      Enqueue a command
// @Description  Inserts a pending queue entry. Status is forced to pending
// @Description  regardless of caller input; no de-duplication is performed.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        request  body      types.EnqueueCommandRequest  true  "Command to enqueue"
// @Success      201      {object}  db.Command
// @Failure      400      {object}  types.ErrorResponse  "Missing required fields"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /commands [post]
func (h *CommandsHandler) Create(c *gin.Context) {
	var req types.EnqueueCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.DeviceID == "" || req.CommandType == "" || req.CommandData == nil {
		missingFields(c, "device_id", "command_type", "command_data")
		return
	}

	priority := 1
	if req.Priority != nil {
		priority = *req.Priority
	}
	cmd := &db.Command{
		DeviceID:    req.DeviceID,
		CommandType: req.CommandType,
		CommandData: req.CommandData,
		Priority:    priority,
	}
	if err := h.database.Commands().Enqueue(c.Request.Context(), cmd, nil); err != nil {
		storeError(c, err, "Failed to enqueue command")
		return
	}
	c.JSON(http.StatusCreated, cmd)
}

// Advance handles PATCH /commands
// @Summary      Advance a queue entry
// @Description  The only mutation path for an existing entry, issued by the
// @Description  firmware consumer. When executed_at is present in the request
// @Description  the server stamps its own clock; the caller's value is never
// @Description  persisted. No state-machine validation is applied to status.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        request  body      types.AdvanceCommandRequest  true  "Status update"
// @Success      200      {object}  db.Command
// @Failure      400      {object}  types.ErrorResponse  "Missing required fields"
// @Failure      404      {object}  types.ErrorResponse  "Command not found"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /commands [patch]
func (h *CommandsHandler) Advance(c *gin.Context) {
	var req types.AdvanceCommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.ID == "" || req.Status == "" {
		missingFields(c, "id", "status")
		return
	}

	cmd, err := h.database.Commands().Advance(c.Request.Context(), req.ID, req.Status,
		req.ExecutedAt != nil, req.ResponseData)
	if err != nil {
		if errors.Is(err, db.ErrCommandNotFound) {
			notFound(c, "Command not found")
			return
		}
		storeError(c, err, "Failed to update command")
		return
	}
	c.JSON(http.StatusOK, cmd)
}
