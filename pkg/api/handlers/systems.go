package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzafar/homehub/pkg/api/types"
	"github.com/mzafar/homehub/pkg/db"
)

// SystemsHandler handles system resource endpoints
type SystemsHandler struct {
	database *db.DB
}

// NewSystemsHandler creates a new systems handler
func NewSystemsHandler(database *db.DB) *SystemsHandler {
	return &SystemsHandler{database: database}
}

// List handles GET /systems
// @Summary      List systems
// @Description  Returns all systems with their board and room, oldest first
// @Tags         systems
// @Produce      json
// @Success      200  {array}   db.System
// @Failure      500  {object}  types.ErrorResponse
// @Router       /systems [get]
func (h *SystemsHandler) List(c *gin.Context) {
	systems, err := h.database.Systems().List(c.Request.Context())
	if err != nil {
		storeError(c, err, "Failed to fetch systems from database")
		return
	}
	if systems == nil {
		systems = []*db.System{}
	}
	c.JSON(http.StatusOK, systems)
}

// Create handles POST /systems
// @Summary      Register a system
// @Tags         systems
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateSystemRequest  true  "System to create"
// @Success      201      {object}  db.System
// @Failure      400      {object}  types.ErrorResponse  "Missing required fields"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /systems [post]
func (h *SystemsHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.CreateSystemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Name == "" || req.Type == "" || req.BoardID == "" {
		missingFields(c, "name", "type", "board_id")
		return
	}

	systems := h.database.Systems()
	system := &db.System{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
		BoardID:     req.BoardID,
		RoomID:      req.RoomID,
	}
	if err := systems.Create(ctx, system); err != nil {
		storeError(c, err, "Failed to create system")
		return
	}

	created, err := systems.Get(ctx, system.ID)
	if err != nil {
		storeError(c, err, "Failed to fetch created system")
		return
	}
	c.JSON(http.StatusCreated, created)
}
