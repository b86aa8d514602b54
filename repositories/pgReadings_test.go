package repositories

import (
	"testing"
	"time"

	"vitalmonitor/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingBatchRoundTrip(t *testing.T) {
	repo := NewReadingPgRepository(newTestDB(t))

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	batch := []entities.Reading{
		{DeviceID: "pico-01", Timestamp: base.Format(time.RFC3339), UserBpm: 61},
		{DeviceID: "pico-01", Timestamp: base.Add(time.Minute).Format(time.RFC3339), UserBpm: 63},
		{DeviceID: "pico-02", Timestamp: base.Format(time.RFC3339), UserBpm: 70},
	}
	require.NoError(t, repo.CreateBatch(batch))

	readings, err := repo.GetByDeviceID("pico-01")
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, 61.0, readings[0].UserBpm)
	assert.Equal(t, 63.0, readings[1].UserBpm)
}

func TestReadingEmptyBatchIsNoop(t *testing.T) {
	repo := NewReadingPgRepository(newTestDB(t))
	assert.NoError(t, repo.CreateBatch(nil))
}
