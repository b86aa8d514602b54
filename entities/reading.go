package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reading is one historical telemetry point reported by a device.
type Reading struct {
	Model
	DeviceID  string  `gorm:"index" json:"device_id"`
	Timestamp string  `json:"timestamp"`
	RoomTemp  float64 `json:"room_temp"`
	RoomRh    float64 `json:"room_rh"`
	UserTemp  float64 `json:"user_temp"`
	UserSpo2  float64 `json:"user_spo2"`
	UserBpm   float64 `json:"user_bpm"`
	Condition string  `json:"condition"`
}

func (r *Reading) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	r.stamp()
	return
}
