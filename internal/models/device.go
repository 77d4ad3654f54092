package models

import (
	"time"

	"github.com/google/uuid"
)

// DeviceType classifies the client platform a device row belongs to.
type DeviceType int

const (
	DeviceTypeWeb     DeviceType = 1
	DeviceTypeIOS     DeviceType = 2
	DeviceTypeAndroid DeviceType = 3
)

// Valid reports whether t is one of the known platforms.
func (t DeviceType) Valid() bool {
	switch t {
	case DeviceTypeWeb, DeviceTypeIOS, DeviceTypeAndroid:
		return true
	}
	return false
}

// Device is a client installation tied to an account. An account can own many
// devices, but only one row per device UUID.
type Device struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"user_id" gorm:"uniqueIndex:idx_user_device;not null"`
	User        *User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	DeviceUUID  uuid.UUID  `json:"device_uuid" gorm:"uniqueIndex:idx_user_device;type:varchar(36)"`
	DeviceType  DeviceType `json:"device_type"`
	DeviceOS    string     `json:"device_os" gorm:"type:varchar(20)"`
	DeviceModel string     `json:"device_model" gorm:"type:varchar(50)"`
	AppVersion  string     `json:"app_version" gorm:"type:varchar(20)"`
	LastLogin   *time.Time `json:"last_login"`
	CreatedTime time.Time  `json:"created_time" gorm:"autoCreateTime"`
}

// TableName keeps the legacy table name.
func (Device) TableName() string {
	return "user_device"
}
