package repositories

import "vitalmonitor/entities"

// Repository contracts are the persistence seam every handler composes
// against. All operations are request-scoped and return-or-fail; the
// underlying store's guarantees decide write ordering.

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id string) (*entities.User, error)
	GetByUsername(username string) (*entities.User, error)
	GetAll() ([]entities.User, error)
	List(limit, offset int) ([]entities.User, error)
	Update(user *entities.User) error
	Delete(id string) error
}

type DeviceRepository interface {
	Create(device *entities.Device) error
	GetByID(id string) (*entities.Device, error)
	GetAll() ([]entities.Device, error)
	Update(device *entities.Device) error
	Delete(id string) error
}

type ReadingRepository interface {
	CreateBatch(readings []entities.Reading) error
	GetByDeviceID(deviceID string) ([]entities.Reading, error)
}
