package usecases

import (
	"errors"
	"fmt"

	"vitalmonitor/apperrors"
	"vitalmonitor/entities"
	"vitalmonitor/repositories"

	"gorm.io/gorm"
)

type DeviceUseCase struct {
	DeviceRepo  repositories.DeviceRepository
	ReadingRepo repositories.ReadingRepository
}

func NewDeviceUseCase(deviceRepo repositories.DeviceRepository, readingRepo repositories.ReadingRepository) *DeviceUseCase {
	return &DeviceUseCase{DeviceRepo: deviceRepo, ReadingRepo: readingRepo}
}

// CreateDevice registers a new device under the id it chose for itself.
// A colliding id is a conflict and performs no write.
func (uc *DeviceUseCase) CreateDevice(device *entities.Device) error {
	if device.ID == "" {
		return fmt.Errorf("%w: device id is required", apperrors.ErrConflict)
	}

	if _, err := uc.DeviceRepo.GetByID(device.ID); err == nil {
		return fmt.Errorf("%w: device with specified id already exists", apperrors.ErrConflict)
	}

	return uc.DeviceRepo.Create(device)
}

// GetDevice retrieves a device by id.
func (uc *DeviceUseCase) GetDevice(id string) (*entities.Device, error) {
	device, err := uc.DeviceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return device, nil
}

// GetAllDevices retrieves all devices.
func (uc *DeviceUseCase) GetAllDevices() ([]entities.Device, error) {
	return uc.DeviceRepo.GetAll()
}

// UpdateDevice applies a validated telemetry patch to an existing
// device. The id never changes; only fields present in the patch do.
func (uc *DeviceUseCase) UpdateDevice(id string, patch map[string]any) (*entities.Device, error) {
	existing, err := uc.GetDevice(id)
	if err != nil {
		return nil, err
	}

	if v, ok := patch["room_temp"].(float64); ok {
		existing.RoomTemp = v
	}
	if v, ok := patch["room_rh"].(float64); ok {
		existing.RoomRh = v
	}
	if v, ok := patch["user_temp"].(float64); ok {
		existing.UserTemp = v
	}
	if v, ok := patch["user_spo2"].(float64); ok {
		existing.UserSpo2 = v
	}
	if v, ok := patch["user_bpm"].(float64); ok {
		existing.UserBpm = v
	}
	if v, ok := patch["condition"].(string); ok {
		existing.Condition = v
	}

	if err := uc.DeviceRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteDevice removes a device. Deleting an absent id is not an error.
func (uc *DeviceUseCase) DeleteDevice(id string) error {
	return uc.DeviceRepo.Delete(id)
}

// GetReadings returns the stored telemetry history of a device.
func (uc *DeviceUseCase) GetReadings(deviceID string) ([]entities.Reading, error) {
	if _, err := uc.GetDevice(deviceID); err != nil {
		return nil, err
	}
	return uc.ReadingRepo.GetByDeviceID(deviceID)
}
