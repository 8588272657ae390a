package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzafar/homehub/pkg/api/types"
	"github.com/mzafar/homehub/pkg/db"
)

// DevicesHandler handles device resource endpoints
type DevicesHandler struct {
	database *db.DB
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(database *db.DB) *DevicesHandler {
	return &DevicesHandler{database: database}
}

// List handles GET /devices
// @Summary      List devices
// @Description  Returns all devices with their board and room, oldest first
// @Tags         devices
// @Produce      json
// @Success      200  {array}   db.Device
// @Failure      500  {object}  types.ErrorResponse
// @Router       /devices [get]
func (h *DevicesHandler) List(c *gin.Context) {
	devices, err := h.database.Devices().List(c.Request.Context())
	if err != nil {
		storeError(c, err, "Failed to fetch devices from database")
		return
	}
	if devices == nil {
		devices = []*db.Device{}
	}
	c.JSON(http.StatusOK, devices)
}

// Create handles POST /devices
// @Summary      Register a device
// @Description  Creates a device. No two devices may share a pin on one board.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        request  body      types.CreateDeviceRequest  true  "Device to create"
// @Success      201      {object}  db.Device
// @Failure      400      {object}  types.ErrorResponse  "Missing required fields"
// @Failure      409      {object}  types.ErrorResponse  "Pin already in use"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /devices [post]
func (h *DevicesHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.CreateDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if req.BoardID == "" || req.Name == "" || req.Type == "" || req.PinNumber == nil {
		missingFields(c, "board_id", "name", "type", "pin_number")
		return
	}

	devices := h.database.Devices()

	existing, err := devices.FindByPin(ctx, req.BoardID, *req.PinNumber)
	if err != nil && !errors.Is(err, db.ErrDeviceNotFound) {
		storeError(c, err, "Failed to check pin conflicts")
		return
	}
	if existing != nil {
		conflict(c, fmt.Sprintf("Pin %d is already in use by device: %s", *req.PinNumber, existing.Name))
		return
	}

	device := &db.Device{
		BoardID:    req.BoardID,
		RoomID:     req.RoomID,
		SystemID:   req.SystemID,
		Name:       req.Name,
		Type:       req.Type,
		PinNumber:  *req.PinNumber,
		PinType:    req.PinType,
		Properties: req.Properties,
	}
	if err := devices.Create(ctx, device); err != nil {
		if errors.Is(err, db.ErrPinInUse) {
			conflict(c, fmt.Sprintf("Pin %d is already in use on this board", *req.PinNumber))
			return
		}
		storeError(c, err, "Failed to create device")
		return
	}

	created, err := devices.Get(ctx, device.ID)
	if err != nil {
		storeError(c, err, "Failed to fetch created device")
		return
	}
	c.JSON(http.StatusCreated, created)
}
