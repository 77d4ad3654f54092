package repositories

import (
	"errors"
	"fmt"

	"bazaar/internal/models"

	"gorm.io/gorm"
)

// DeviceRepository defines the interface for device data access.
type DeviceRepository interface {
	Upsert(device *models.Device) error
	GetByUser(userID uint) ([]models.Device, error)
}

// GORMDeviceRepository is a GORM implementation of DeviceRepository.
type GORMDeviceRepository struct {
	db *gorm.DB
}

// NewGORMDeviceRepository creates a new instance of GORMDeviceRepository.
func NewGORMDeviceRepository(db *gorm.DB) *GORMDeviceRepository {
	return &GORMDeviceRepository{
		db: db,
	}
}

// Upsert inserts the device row or, when the (user, device_uuid) pair already
// exists, refreshes its login stamp and client metadata.
func (r *GORMDeviceRepository) Upsert(device *models.Device) error {
	var existing models.Device
	err := r.db.First(&existing, "user_id = ? AND device_uuid = ?", device.UserID, device.DeviceUUID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if createErr := r.db.Create(device).Error; createErr != nil {
				return fmt.Errorf("failed to create device: %w", createErr)
			}
			return nil
		}
		return fmt.Errorf("failed to look up device %s for user %d: %w", device.DeviceUUID, device.UserID, err)
	}

	existing.DeviceType = device.DeviceType
	existing.DeviceOS = device.DeviceOS
	existing.DeviceModel = device.DeviceModel
	existing.AppVersion = device.AppVersion
	existing.LastLogin = device.LastLogin
	if err := r.db.Save(&existing).Error; err != nil {
		return fmt.Errorf("failed to update device: %w", err)
	}
	*device = existing
	return nil
}

// GetByUser retrieves all devices registered under an account.
func (r *GORMDeviceRepository) GetByUser(userID uint) ([]models.Device, error) {
	var devices []models.Device
	if err := r.db.Find(&devices, "user_id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to get devices for user %d: %w", userID, err)
	}
	return devices, nil
}
