package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzafar/homehub/pkg/api/types"
	"github.com/mzafar/homehub/pkg/db"
)

// BoardsHandler handles board resource endpoints
type BoardsHandler struct {
	database *db.DB
}

// NewBoardsHandler creates a new boards handler
func NewBoardsHandler(database *db.DB) *BoardsHandler {
	return &BoardsHandler{database: database}
}

// List handles GET /boards
// @Summary      List boards
// @Description  Returns all boards with their devices, oldest first
// @Tags         boards
// @Produce      json
// @Success      200  {array}   db.Board
// @Failure      500  {object}  types.ErrorResponse
// @Router       /boards [get]
func (h *BoardsHandler) List(c *gin.Context) {
	boards, err := h.database.Boards().List(c.Request.Context())
	if err != nil {
		storeError(c, err, "Failed to fetch boards from database")
		return
	}
	if boards == nil {
		boards = []*db.Board{}
	}
	c.JSON(http.StatusOK, boards)
}

// Create handles POST /boards
// @Summary      Register a board
// @Description  Creates a board. MAC addresses must be globally unique.
// @Tags         boards
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateBoardRequest  true  "Board to create"
// @Success      201      {object}  db.Board
// @Failure      400      {object}  types.ErrorResponse  "Missing required fields"
// @Failure      409      {object}  types.ErrorResponse  "Duplicate MAC address"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /boards [post]
func (h *BoardsHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.CreateBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.Name == "" || req.BoardType == "" {
		missingFields(c, "name", "board_type")
		return
	}

	boards := h.database.Boards()

	if req.MACAddress != nil && *req.MACAddress != "" {
		existing, err := boards.FindByMAC(ctx, *req.MACAddress)
		if err != nil && !errors.Is(err, db.ErrBoardNotFound) {
			storeError(c, err, "Failed to check MAC address uniqueness")
			return
		}
		if existing != nil {
			conflict(c, fmt.Sprintf("MAC address %s is already registered to board: %s", *req.MACAddress, existing.Name))
			return
		}
	}

	board := &db.Board{
		Name:          req.Name,
		BoardType:     req.BoardType,
		MACAddress:    req.MACAddress,
		IPAddress:     req.IPAddress,
		TotalPins:     req.TotalPins,
		AvailablePins: req.AvailablePins,
	}
	if err := boards.Create(ctx, board); err != nil {
		storeError(c, err, "Failed to create board")
		return
	}

	created, err := boards.Get(ctx, board.ID)
	if err != nil {
		storeError(c, err, "Failed to fetch created board")
		return
	}
	c.JSON(http.StatusCreated, created)
}
