package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents an authenticatable account.
//
// Email and PhoneNumber are pointers so that absent values persist as NULL:
// both columns carry unique indexes, and NULLs do not collide with each other
// the way empty strings would.
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Username    string     `json:"username" gorm:"uniqueIndex;type:varchar(30);not null"`
	FirstName   string     `json:"first_name" gorm:"type:varchar(30)"`
	LastName    string     `json:"last_name" gorm:"type:varchar(30)"`
	Email       *string    `json:"email" gorm:"uniqueIndex;type:varchar(255)"`
	PhoneNumber *int64     `json:"phone_number" gorm:"uniqueIndex"`
	Password    string     `json:"-" gorm:"type:varchar(255)"` // bcrypt hash; empty means no usable password
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	DateJoined  time.Time  `json:"date_joined" gorm:"autoCreateTime"`
	LastSeen    *time.Time `json:"last_seen"`
}

// TableName keeps the legacy table name.
func (User) TableName() string {
	return "users"
}

// BeforeSave coerces a blank email to NULL so the unique index never sees two
// accounts with email = "".
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Email != nil && strings.TrimSpace(*u.Email) == "" {
		u.Email = nil
	}
	return nil
}

// GetFullName returns the first name plus the last name, with a space in
// between.
func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// GetShortName returns the short name for the user.
func (u *User) GetShortName() string {
	return u.FirstName
}

// IsLoggedInUser reports whether the account is an identifiable one, as
// opposed to an anonymous placeholder: it must carry a phone number or an
// email address.
func (u *User) IsLoggedInUser() bool {
	return u.PhoneNumber != nil || u.Email != nil
}
