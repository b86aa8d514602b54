package usecases

import (
	"vitalmonitor/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repositories for usecase tests.

type fakeUserRepo struct {
	users map[string]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = entities.RoleUser
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entities.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(username string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetAll() ([]entities.User, error) {
	all := make([]entities.User, 0, len(r.users))
	for _, user := range r.users {
		all = append(all, *user)
	}
	return all, nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]entities.User, error) {
	all, _ := r.GetAll()
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakeUserRepo) Update(user *entities.User) error {
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(id string) error {
	delete(r.users, id)
	return nil
}

type fakeDeviceRepo struct {
	devices     map[string]*entities.Device
	createCalls int
}

func newFakeDeviceRepo() *fakeDeviceRepo {
	return &fakeDeviceRepo{devices: make(map[string]*entities.Device)}
}

func (r *fakeDeviceRepo) Create(device *entities.Device) error {
	r.createCalls++
	copied := *device
	r.devices[device.ID] = &copied
	return nil
}

func (r *fakeDeviceRepo) GetByID(id string) (*entities.Device, error) {
	if device, ok := r.devices[id]; ok {
		copied := *device
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeDeviceRepo) GetAll() ([]entities.Device, error) {
	all := make([]entities.Device, 0, len(r.devices))
	for _, device := range r.devices {
		all = append(all, *device)
	}
	return all, nil
}

func (r *fakeDeviceRepo) Update(device *entities.Device) error {
	copied := *device
	r.devices[device.ID] = &copied
	return nil
}

func (r *fakeDeviceRepo) Delete(id string) error {
	delete(r.devices, id)
	return nil
}

type fakeReadingRepo struct {
	readings []entities.Reading
}

func (r *fakeReadingRepo) CreateBatch(readings []entities.Reading) error {
	r.readings = append(r.readings, readings...)
	return nil
}

func (r *fakeReadingRepo) GetByDeviceID(deviceID string) ([]entities.Reading, error) {
	var out []entities.Reading
	for _, reading := range r.readings {
		if reading.DeviceID == deviceID {
			out = append(out, reading)
		}
	}
	return out, nil
}
