package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// DeviceStatus describes one live device connection.
type DeviceStatus struct {
	DeviceID    string    `json:"device_id"`
	ConnectedAt time.Time `json:"connected_at"`
	LastSeen    time.Time `json:"last_seen"`
}

type connection struct {
	conn        *websocket.Conn
	connectedAt time.Time
	lastSeen    time.Time
}

// Manager tracks live device websocket connections and when each device
// last reported telemetry.
type Manager struct {
	mu          sync.RWMutex
	connections map[string]*connection // deviceID -> connection
}

func NewManager() *Manager {
	return &Manager{connections: make(map[string]*connection)}
}

// Register registers a device connection, replacing any existing one.
func (m *Manager) Register(deviceID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.connections[deviceID]; ok && old.conn != nil && old.conn != conn {
		// close old connection to avoid leaks
		_ = old.conn.Close()
	}
	now := time.Now()
	m.connections[deviceID] = &connection{conn: conn, connectedAt: now, lastSeen: now}
}

// Unregister removes a device connection.
func (m *Manager) Unregister(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.connections[deviceID]; ok {
		if c.conn != nil {
			_ = c.conn.Close()
		}
		delete(m.connections, deviceID)
	}
}

// Seen records that the device reported in.
func (m *Manager) Seen(deviceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.connections[deviceID]; ok {
		c.lastSeen = time.Now()
	}
}

// IsConnected returns whether a device is currently connected.
func (m *Manager) IsConnected(deviceID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.connections[deviceID]
	return ok
}

// Snapshot returns the status of every connected device.
func (m *Manager) Snapshot() []DeviceStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	statuses := make([]DeviceStatus, 0, len(m.connections))
	for id, c := range m.connections {
		statuses = append(statuses, DeviceStatus{
			DeviceID:    id,
			ConnectedAt: c.connectedAt,
			LastSeen:    c.lastSeen,
		})
	}
	return statuses
}
