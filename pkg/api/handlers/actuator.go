package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mzafar/homehub/pkg/api/types"
	"github.com/mzafar/homehub/pkg/command"
	"github.com/mzafar/homehub/pkg/db"
)

// domainConfig parameterizes the actuator choreography for one subsystem.
// Every domain endpoint follows the same three steps: read an aggregate view,
// act by enqueueing a command with a current_state promotion, and report
// firmware-observed state back into current_state.
type domainConfig struct {
	domain command.Domain

	// viewTypes are the device types included in the GET aggregate view.
	viewTypes []string
	// actorTypes are the device types a POST may target.
	actorTypes []string

	// sensorDeviceType/sensorType select the "latest relevant reading" for
	// the GET view. Empty means the domain has no reading.
	sensorDeviceType string
	sensorType       string

	// systemType names the system row bundled into the view. The device
	// list itself is selected by type only, never by system membership.
	systemType string

	// patchFields are the recognized PATCH report fields; anything else in
	// the request body is ignored. patchRenames maps a request field to a
	// different current_state key.
	patchFields  []string
	patchRenames map[string]string

	notFoundMsg string
}

// ActuatorHandler implements the read/act/report choreography for one domain.
type ActuatorHandler struct {
	database *db.DB
	cfg      domainConfig
}

func newActuatorHandler(database *db.DB, cfg domainConfig) *ActuatorHandler {
	return &ActuatorHandler{database: database, cfg: cfg}
}

// Status returns the domain's aggregate view: its devices, the most recent
// relevant sensor reading, and the owning system row where one applies.
func (h *ActuatorHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	devices, err := h.database.Devices().ListForDomain(ctx, h.cfg.viewTypes)
	if err != nil {
		storeError(c, err, "Failed to fetch "+string(h.cfg.domain)+" devices from database")
		return
	}
	if devices == nil {
		devices = []*db.Device{}
	}

	resp := types.DomainStatusResponse{
		Devices:   devices,
		Timestamp: time.Now(),
	}

	if h.cfg.sensorType != "" {
		var sensorIDs []string
		for _, d := range devices {
			if d.Type == h.cfg.sensorDeviceType {
				sensorIDs = append(sensorIDs, d.ID)
			}
		}
		reading, err := h.database.Readings().LatestForSensor(ctx, sensorIDs, h.cfg.sensorType)
		if err != nil {
			storeError(c, err, "Failed to fetch latest "+h.cfg.sensorType+" reading")
			return
		}
		resp.LatestReading = reading
	}

	if h.cfg.systemType != "" {
		system, err := h.database.Systems().FindByType(ctx, h.cfg.systemType)
		if err != nil && !errors.Is(err, db.ErrSystemNotFound) {
			storeError(c, err, "Failed to fetch "+h.cfg.systemType+" system")
			return
		}
		resp.System = system
	}

	c.JSON(http.StatusOK, resp)
}

// Act validates the action against the domain vocabulary, enqueues the
// command, and promotes the action's fields into the device's current_state
// in the same transaction.
func (h *ActuatorHandler) Act(c *gin.Context) {
	ctx := c.Request.Context()

	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	deviceID, _ := req["device_id"].(string)
	action, _ := req["action"].(string)
	if deviceID == "" || action == "" {
		missingFields(c, "device_id", "action")
		return
	}
	if err := command.Validate(h.cfg.domain, req); err != nil {
		badRequest(c, err.Error())
		return
	}

	device, err := h.database.Devices().GetActor(ctx, deviceID, h.cfg.actorTypes...)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			notFound(c, h.cfg.notFoundMsg)
			return
		}
		storeError(c, err, "Failed to look up device")
		return
	}

	built := command.Build(h.cfg.domain, req)
	cmd := &db.Command{
		DeviceID:    device.ID,
		CommandType: h.cfg.domain.CommandType(),
		CommandData: built.Data,
		Priority:    built.Priority,
	}
	if err := h.database.Commands().Enqueue(ctx, cmd, built.State); err != nil {
		storeError(c, err, "Failed to enqueue "+h.cfg.domain.CommandType()+" command")
		return
	}

	log.Info().
		Str("device_id", device.ID).
		Str("command_type", cmd.CommandType).
		Str("action", action).
		Int("priority", cmd.Priority).
		Msg("command enqueued")

	c.JSON(http.StatusCreated, cmd)
}

// Report merges firmware-observed state into the device's current_state.
// Only the domain's recognized fields are merged, and only when present in
// the request body.
func (h *ActuatorHandler) Report(c *gin.Context) {
	ctx := c.Request.Context()

	var req map[string]any
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	deviceID, _ := req["device_id"].(string)
	if deviceID == "" {
		missingFields(c, "device_id")
		return
	}

	fields := map[string]any{}
	for _, key := range h.cfg.patchFields {
		v, ok := req[key]
		if !ok {
			continue
		}
		if renamed, ok := h.cfg.patchRenames[key]; ok {
			key = renamed
		}
		fields[key] = v
	}

	merged, err := h.database.Devices().MergeState(ctx, deviceID, fields, true)
	if err != nil {
		if errors.Is(err, db.ErrDeviceNotFound) {
			notFound(c, "Device not found")
			return
		}
		storeError(c, err, "Failed to update device state")
		return
	}

	c.JSON(http.StatusOK, types.StatePatchResponse{
		Success:      true,
		CurrentState: merged,
	})
}
