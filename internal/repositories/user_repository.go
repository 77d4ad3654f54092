package repositories

import (
	"time"

	"bazaar/internal/models"
)

// UserRepository defines the interface for account data access.
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByPhoneNumber(phoneNumber int64) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	UpdateLastSeen(id uint, seenAt time.Time) error
}

// ProfileRepository defines the interface for profile data access.
type ProfileRepository interface {
	Create(profile *models.UserProfile) error
	GetByUserID(userID uint) (*models.UserProfile, error)
	Update(profile *models.UserProfile) error
}
