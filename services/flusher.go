package services

import (
	"time"

	"vitalmonitor/cache"
	"vitalmonitor/repositories"

	"go.uber.org/zap"
)

// Flusher drains the telemetry cache into the readings table on a fixed
// interval.
type Flusher struct {
	cache    *cache.TelemetryCache
	readings repositories.ReadingRepository
	interval time.Duration
	log      *zap.Logger
	quit     chan struct{}
}

func NewFlusher(c *cache.TelemetryCache, readings repositories.ReadingRepository, interval time.Duration, log *zap.Logger) *Flusher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Flusher{
		cache:    c,
		readings: readings,
		interval: interval,
		log:      log,
		quit:     make(chan struct{}),
	}
}

// Start runs the flush loop in the background.
func (f *Flusher) Start() {
	ticker := time.NewTicker(f.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				f.Flush()
			case <-f.quit:
				f.Flush()
				return
			}
		}
	}()
}

// Stop ends the loop after one final flush.
func (f *Flusher) Stop() {
	close(f.quit)
}

// Flush writes all buffered points in one batch. The points are dropped
// on persistence failure; the error goes to the log only.
func (f *Flusher) Flush() {
	points := f.cache.Drain()
	if len(points) == 0 {
		return
	}
	if err := f.readings.CreateBatch(points); err != nil {
		f.log.Error("could not insert telemetry batch", zap.Int("points", len(points)), zap.Error(err))
		return
	}
	f.log.Info("flushed telemetry batch", zap.Int("points", len(points)))
}
