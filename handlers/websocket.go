package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"vitalmonitor/cache"
	"vitalmonitor/entities"
	"vitalmonitor/usecases"
	"vitalmonitor/validation"
	"vitalmonitor/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type incomingMessage struct {
	Type string `json:"type"` // telemetry | heartbeat
}

// WSHandler groups dependencies for the device telemetry ingest flow.
type WSHandler struct {
	mgr       *ws.Manager
	useCase   *usecases.DeviceUseCase
	telemetry *cache.TelemetryCache
	log       *zap.Logger
}

func NewWSHandler(mgr *ws.Manager, useCase *usecases.DeviceUseCase, telemetry *cache.TelemetryCache, log *zap.Logger) *WSHandler {
	return &WSHandler{mgr: mgr, useCase: useCase, telemetry: telemetry, log: log}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// HandleDeviceWS upgrades to websocket and reads telemetry pushes from
// a registered device.
// GET /ws?id=<device_id>
func (h *WSHandler) HandleDeviceWS(c *gin.Context) {
	deviceID := c.Query("id")
	if deviceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing device id"})
		return
	}
	if _, err := h.useCase.GetDevice(deviceID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown device id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("device_id", deviceID), zap.Error(err))
		return
	}

	h.mgr.Register(deviceID, conn)
	h.log.Info("device connected", zap.String("device_id", deviceID))

	defer func() {
		h.mgr.Unregister(deviceID)
		h.log.Info("device disconnected", zap.String("device_id", deviceID))
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("read error", zap.String("device_id", deviceID), zap.Error(err))
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}

		var base incomingMessage
		if err := json.Unmarshal(message, &base); err != nil {
			h.log.Warn("invalid json from device", zap.String("device_id", deviceID), zap.Error(err))
			continue
		}

		switch base.Type {
		case "telemetry":
			h.ingestTelemetry(deviceID, message)
		case "heartbeat":
			h.mgr.Seen(deviceID)
		default:
			h.log.Warn("unknown message type",
				zap.String("device_id", deviceID), zap.String("type", base.Type))
		}
	}
}

// ingestTelemetry shape-checks one telemetry push, refreshes the device
// row and buffers a reading for the flusher. There is no error response
// channel on the socket, so the fail-fast validator decides accept or
// drop.
func (h *WSHandler) ingestTelemetry(deviceID string, message []byte) {
	var payload map[string]any
	if err := json.Unmarshal(message, &payload); err != nil {
		return
	}
	delete(payload, "type")
	payload["id"] = deviceID

	if !validation.Check(payload, validation.DeviceSchema, true) {
		h.log.Warn("dropped malformed telemetry", zap.String("device_id", deviceID))
		return
	}

	device, err := h.useCase.UpdateDevice(deviceID, payload)
	if err != nil {
		h.log.Error("could not apply telemetry", zap.String("device_id", deviceID), zap.Error(err))
		return
	}

	h.mgr.Seen(deviceID)
	h.telemetry.Add(entities.Reading{
		DeviceID:  device.ID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RoomTemp:  device.RoomTemp,
		RoomRh:    device.RoomRh,
		UserTemp:  device.UserTemp,
		UserSpo2:  device.UserSpo2,
		UserBpm:   device.UserBpm,
		Condition: device.Condition,
	})
}

// GetConnectedDevices handles GET /api/v1/devices/connected
func (h *WSHandler) GetConnectedDevices(c *gin.Context) {
	statuses := h.mgr.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"apiVersion": "1.0",
		"data":       gin.H{"devices": statuses, "count": len(statuses)},
	})
}
