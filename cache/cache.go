package cache

import (
	"sync"

	"vitalmonitor/entities"
)

// TelemetryCache buffers telemetry points between flushes so every push
// does not turn into its own insert. Points keep arrival order.
type TelemetryCache struct {
	mu     sync.Mutex
	points []entities.Reading
}

func NewTelemetryCache() *TelemetryCache {
	return &TelemetryCache{}
}

// Add buffers one telemetry point.
func (c *TelemetryCache) Add(r entities.Reading) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = append(c.points, r)
}

// Drain returns the buffered points in arrival order and clears the
// buffer.
func (c *TelemetryCache) Drain() []entities.Reading {
	c.mu.Lock()
	defer c.mu.Unlock()
	drained := c.points
	c.points = nil
	return drained
}

// Len returns the number of buffered points.
func (c *TelemetryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.points)
}

// Stats describes the current buffer, keyed by device.
func (c *TelemetryCache) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	stats := make(map[string]int)
	for _, p := range c.points {
		stats[p.DeviceID]++
	}
	return stats
}
