package usecases

import (
	"errors"
	"fmt"

	"vitalmonitor/apperrors"
	"vitalmonitor/auth"
	"vitalmonitor/entities"
	"vitalmonitor/repositories"

	"gorm.io/gorm"
)

type UserUseCase struct {
	UserRepo   repositories.UserRepository
	DeviceRepo repositories.DeviceRepository
}

func NewUserUseCase(userRepo repositories.UserRepository, deviceRepo repositories.DeviceRepository) *UserUseCase {
	return &UserUseCase{UserRepo: userRepo, DeviceRepo: deviceRepo}
}

// Register creates a new account. The raw password is hashed before it
// ever reaches the repository; the id is generated when absent.
func (uc *UserUseCase) Register(user *entities.User, rawPassword string) error {
	if user.Username == "" {
		return fmt.Errorf("%w: username is required", apperrors.ErrConflict)
	}

	if existing, err := uc.UserRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return fmt.Errorf("%w: username already taken", apperrors.ErrConflict)
	}

	hash, err := auth.HashPassword(rawPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	user.Password = hash

	return uc.UserRepo.Create(user)
}

// Authenticate resolves a username/password pair to the stored user.
func (uc *UserUseCase) Authenticate(username, password string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByUsername(username)
	if err != nil {
		// Same failure for unknown user and wrong password.
		return nil, apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetUser returns a user by id.
func (uc *UserUseCase) GetUser(id string) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetAllUsers returns the public projection of every user.
func (uc *UserUseCase) GetAllUsers() ([]entities.PublicUser, error) {
	users, err := uc.UserRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return publicProjections(users), nil
}

// ListUsers returns one page of public projections.
func (uc *UserUseCase) ListUsers(limit, offset int) ([]entities.PublicUser, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, err := uc.UserRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return publicProjections(users), nil
}

// UpdateUser applies the validated patch to an existing user. Only the
// fields present in the patch change; a new password is rehashed.
func (uc *UserUseCase) UpdateUser(id string, patch map[string]any) (*entities.User, error) {
	existing, err := uc.GetUser(id)
	if err != nil {
		return nil, err
	}

	if v, ok := patch["first_name"].(string); ok {
		existing.FirstName = v
	}
	if v, ok := patch["last_name"].(string); ok {
		existing.LastName = v
	}
	if v, ok := patch["username"].(string); ok {
		existing.Username = v
	}
	if v, ok := patch["picture"].(string); ok {
		existing.Picture = v
	}
	if v, ok := patch["email"].(string); ok {
		existing.Email = v
	}
	if v, ok := patch["role"].(string); ok {
		existing.Role = v
	}
	if v, ok := patch["device_id"].(string); ok {
		existing.DeviceID = v
	}
	if v, ok := patch["password"].(string); ok && v != "" {
		hash, err := auth.HashPassword(v)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		existing.Password = hash
	}

	if err := uc.UserRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteUser removes a user and, when one is linked, the user's device.
// Deleting an absent id is not an error.
func (uc *UserUseCase) DeleteUser(id string) error {
	if user, err := uc.UserRepo.GetByID(id); err == nil && user.DeviceID != "" {
		if err := uc.DeviceRepo.Delete(user.DeviceID); err != nil {
			return err
		}
	}
	return uc.UserRepo.Delete(id)
}

// PairDevice links an existing device to the user.
func (uc *UserUseCase) PairDevice(userID, deviceID string) (*entities.User, error) {
	if _, err := uc.DeviceRepo.GetByID(deviceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	user, err := uc.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.DeviceID = deviceID
	if err := uc.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UnpairAndDeleteDevice deletes the user's linked device and clears the
// reference. The delete still reports success when no device is linked.
func (uc *UserUseCase) UnpairAndDeleteDevice(userID string) error {
	user, err := uc.GetUser(userID)
	if err != nil {
		return err
	}

	if err := uc.DeviceRepo.Delete(user.DeviceID); err != nil {
		return err
	}

	if user.DeviceID != "" {
		user.DeviceID = ""
		if err := uc.UserRepo.Update(user); err != nil {
			return err
		}
	}
	return nil
}

func publicProjections(users []entities.User) []entities.PublicUser {
	public := make([]entities.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].PublicData())
	}
	return public
}
