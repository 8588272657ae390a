package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mzafar/homehub/pkg/api/types"
	"github.com/mzafar/homehub/pkg/db"
)

// SensorsHandler handles sensor reading ingestion and lookup
type SensorsHandler struct {
	database *db.DB
}

// NewSensorsHandler creates a new sensors handler
func NewSensorsHandler(database *db.DB) *SensorsHandler {
	return &SensorsHandler{database: database}
}

// Latest handles GET /sensors/latest
// @Summary      Latest reading per device
// @Description  Returns the most recent reading for each device that has one
// @Tags         sensors
// @Produce      json
// @Success      200  {array}   db.Reading
// @Failure      500  {object}  types.ErrorResponse
// @Router       /sensors/latest [get]
func (h *SensorsHandler) Latest(c *gin.Context) {
	readings, err := h.database.Readings().LatestPerDevice(c.Request.Context())
	if err != nil {
		storeError(c, err, "Failed to fetch sensor readings from database")
		return
	}
	if readings == nil {
		readings = []*db.Reading{}
	}
	c.JSON(http.StatusOK, readings)
}

// Record handles POST /sensors/latest
// @Summary      Record a sensor reading
// @Description  Inserts one immutable reading. The value is accepted under
// @Description  either "value" or "reading_value".
// @Tags         sensors
// @Accept       json
// @Produce      json
// @Param        request  body      types.RecordReadingRequest  true  "Reading to record"
// @Success      201      {object}  db.Reading
// @Failure      400      {object}  types.ErrorResponse  "Missing required fields"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /sensors/latest [post]
func (h *SensorsHandler) Record(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.RecordReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	value, ok := req.SensorValue()
	if req.DeviceID == "" || req.SensorType == "" || !ok {
		missingFields(c, "device_id", "sensor_type", "value (or reading_value)")
		return
	}

	readings := h.database.Readings()
	reading := &db.Reading{
		DeviceID:   req.DeviceID,
		SensorType: req.SensorType,
		Value:      value,
		Unit:       req.Unit,
	}
	if err := readings.Insert(ctx, reading); err != nil {
		storeError(c, err, "Failed to record sensor reading")
		return
	}

	// Enrich with device and board context
	device, err := h.database.Devices().Get(ctx, reading.DeviceID)
	if err == nil {
		reading.Device = device
	}
	c.JSON(http.StatusCreated, reading)
}

// Batch handles POST /sensors/batch
// @Summary      Record a batch of sensor readings
// @Description  Inserts the valid subset of the submitted readings in one
// @Description  store call. Entries missing required fields are dropped.
// @Tags         sensors
// @Accept       json
// @Produce      json
// @Param        request  body      types.BatchReadingsRequest  true  "Readings to record"
// @Success      201      {object}  types.BatchReadingsResponse
// @Failure      400      {object}  types.ErrorResponse  "No valid readings"
// @Failure      500      {object}  types.ErrorResponse
// @Router       /sensors/batch [post]
func (h *SensorsHandler) Batch(c *gin.Context) {
	ctx := c.Request.Context()

	var req types.BatchReadingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if len(req.Readings) == 0 {
		missingFields(c, "readings (array)")
		return
	}

	var valid []*db.Reading
	for i := range req.Readings {
		r := &req.Readings[i]
		value, ok := r.SensorValue()
		if r.DeviceID == "" || r.SensorType == "" || !ok {
			continue // Skip invalid readings
		}
		valid = append(valid, &db.Reading{
			DeviceID:   r.DeviceID,
			SensorType: r.SensorType,
			Value:      value,
			Unit:       r.Unit,
		})
	}
	if len(valid) == 0 {
		badRequest(c, "No valid readings found")
		return
	}

	if err := h.database.Readings().InsertBatch(ctx, valid); err != nil {
		storeError(c, err, "Failed to record batch sensor readings")
		return
	}

	c.JSON(http.StatusCreated, types.BatchReadingsResponse{
		Success:  true,
		Count:    len(valid),
		Readings: valid,
	})
}
