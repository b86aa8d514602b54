package repositories

import (
	"vitalmonitor/db"
	"vitalmonitor/entities"
)

type readingPgRepository struct {
	db db.Database
}

func NewReadingPgRepository(database db.Database) ReadingRepository {
	return &readingPgRepository{db: database}
}

func (r *readingPgRepository) CreateBatch(readings []entities.Reading) error {
	if len(readings) == 0 {
		return nil
	}
	return r.db.GetDB().Create(&readings).Error
}

func (r *readingPgRepository) GetByDeviceID(deviceID string) ([]entities.Reading, error) {
	var readings []entities.Reading
	err := r.db.GetDB().Where("device_id = ?", deviceID).Order("timestamp").Find(&readings).Error
	return readings, err
}
