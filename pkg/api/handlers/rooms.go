package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzafar/homehub/pkg/api/types"
	"github.com/mzafar/homehub/pkg/db"
)

// RoomsHandler handles room resource endpoints
type RoomsHandler struct {
	database *db.DB
}

// NewRoomsHandler creates a new rooms handler
func NewRoomsHandler(database *db.DB) *RoomsHandler {
	return &RoomsHandler{database: database}
}

// List handles GET /rooms
// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {array}   db.Room
// @Failure      500  {object}  types.ErrorResponse
// @Router       /rooms [get]
func (h *RoomsHandler) List(c *gin.Context) {
	rooms, err := h.database.Rooms().List(c.Request.Context())
	if err != nil {
		storeError(c, err, "Failed to fetch rooms from database")
		return
	}
	if rooms == nil {
		rooms = []*db.Room{}
	}
	c.JSON(http.StatusOK, rooms)
}

// Create handles POST /rooms
// @Summary      Create a room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateRoomRequest  true  "Room to create"
// @Success      201      {object}  db.Room
// @Failure      400      {object}  types.ErrorResponse  "Missing required fields"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /rooms [post]
func (h *RoomsHandler) Create(c *gin.Context) {
	var req types.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Name == "" {
		missingFields(c, "name")
		return
	}

	room := &db.Room{Name: req.Name, Description: req.Description}
	if err := h.database.Rooms().Create(c.Request.Context(), room); err != nil {
		storeError(c, err, "Failed to create room")
		return
	}
	c.JSON(http.StatusCreated, room)
}
