package entities

import "gorm.io/gorm"

// Device is a monitoring unit that reports room climate and the vitals
// of the person wearing it. The id is chosen by the device at
// self-registration and immutable afterwards.
type Device struct {
	Model
	RoomTemp  float64 `json:"room_temp"`
	RoomRh    float64 `json:"room_rh"`
	UserTemp  float64 `json:"user_temp"`
	UserSpo2  float64 `json:"user_spo2"`
	UserBpm   float64 `json:"user_bpm"`
	Condition string  `json:"condition"`
}

func (d *Device) BeforeCreate(tx *gorm.DB) (err error) {
	d.stamp()
	return
}
