package httpHandler

import (
	"errors"
	"net/http"
	"time"

	"vitalmonitor/apperrors"
	"vitalmonitor/cache"
	"vitalmonitor/entities"
	"vitalmonitor/usecases"
	"vitalmonitor/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DeviceHandler struct {
	useCase   *usecases.DeviceUseCase
	telemetry *cache.TelemetryCache
	log       *zap.Logger
}

func NewDeviceHandler(useCase *usecases.DeviceUseCase, telemetry *cache.TelemetryCache, log *zap.Logger) *DeviceHandler {
	return &DeviceHandler{useCase: useCase, telemetry: telemetry, log: log}
}

// GetDeviceByID handles GET /api/v1/devices/:deviceId
func (h *DeviceHandler) GetDeviceByID(c *gin.Context) {
	deviceID := c.Param("deviceId")

	device, err := h.useCase.GetDevice(deviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "device with specified id not exist")
			return
		}
		h.log.Error("could not get device", zap.String("device_id", deviceID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not get device data")
		return
	}

	respondData(c, http.StatusOK, device)
}

// GetAllDevices handles GET /api/v1/devices
func (h *DeviceHandler) GetAllDevices(c *gin.Context) {
	devices, err := h.useCase.GetAllDevices()
	if err != nil {
		h.log.Error("could not get all devices", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not get all devices")
		return
	}
	respondData(c, http.StatusOK, devices)
}

// CreateDevice handles POST /api/v1/devices: device self-registration.
func (h *DeviceHandler) CreateDevice(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "failed during input validation")
		return
	}

	if errs := validation.Validate(body, validation.DeviceSchema, true); errs.HasErrors() {
		respondError(c, http.StatusBadRequest, "failed during input validation", errs)
		return
	}

	device := deviceFromBody(body)

	if err := h.useCase.CreateDevice(device); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			respondError(c, http.StatusBadRequest, "failed during input validation",
				validation.List{}.Add("device", "body.id", "device with specified id already exist"))
			return
		}
		h.log.Error("could not create device", zap.String("device_id", device.ID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not create device")
		return
	}

	respondData(c, http.StatusCreated, device)
}

// UpdateDevice handles PUT /api/v1/devices/:deviceId: the telemetry
// push path. The device id comes from the path and never changes.
func (h *DeviceHandler) UpdateDevice(c *gin.Context) {
	deviceID := c.Param("deviceId")

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "failed during input validation")
		return
	}
	if body == nil {
		body = map[string]any{}
	}

	body["id"] = deviceID

	if errs := validation.Validate(body, validation.DeviceSchema, true); errs.HasErrors() {
		respondError(c, http.StatusBadRequest, "failed during input validation", errs)
		return
	}

	device, err := h.useCase.UpdateDevice(deviceID, body)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "device with specified id not exist")
			return
		}
		h.log.Error("could not update device", zap.String("device_id", deviceID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not update device")
		return
	}

	if h.telemetry != nil {
		h.telemetry.Add(readingFromDevice(device))
	}

	respondData(c, http.StatusOK, device)
}

// DeleteDevice handles DELETE /api/v1/devices/:deviceId
func (h *DeviceHandler) DeleteDevice(c *gin.Context) {
	deviceID := c.Param("deviceId")

	if err := h.useCase.DeleteDevice(deviceID); err != nil {
		h.log.Error("could not delete device", zap.String("device_id", deviceID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not delete device")
		return
	}

	respondDeleted(c)
}

// GetReadings handles GET /api/v1/devices/:deviceId/readings
func (h *DeviceHandler) GetReadings(c *gin.Context) {
	deviceID := c.Param("deviceId")

	readings, err := h.useCase.GetReadings(deviceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(c, http.StatusNotFound, "device with specified id not exist")
			return
		}
		h.log.Error("could not get readings", zap.String("device_id", deviceID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not get device readings")
		return
	}

	respondData(c, http.StatusOK, readings)
}

func deviceFromBody(body map[string]any) *entities.Device {
	device := &entities.Device{}
	if v, ok := body["id"].(string); ok {
		device.ID = v
	}
	if v, ok := body["room_temp"].(float64); ok {
		device.RoomTemp = v
	}
	if v, ok := body["room_rh"].(float64); ok {
		device.RoomRh = v
	}
	if v, ok := body["user_temp"].(float64); ok {
		device.UserTemp = v
	}
	if v, ok := body["user_spo2"].(float64); ok {
		device.UserSpo2 = v
	}
	if v, ok := body["user_bpm"].(float64); ok {
		device.UserBpm = v
	}
	if v, ok := body["condition"].(string); ok {
		device.Condition = v
	}
	return device
}

func readingFromDevice(device *entities.Device) entities.Reading {
	return entities.Reading{
		DeviceID:  device.ID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RoomTemp:  device.RoomTemp,
		RoomRh:    device.RoomRh,
		UserTemp:  device.UserTemp,
		UserSpo2:  device.UserSpo2,
		UserBpm:   device.UserBpm,
		Condition: device.Condition,
	}
}
