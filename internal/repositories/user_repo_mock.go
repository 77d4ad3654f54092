package repositories

import (
	"sync"
	"time"

	"bazaar/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository. It
// enforces the same unique columns as the database schema so identity-manager
// tests exercise real collision behavior.
type MockUserRepository struct {
	users  map[uint]models.User
	nextID uint
	mu     sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]models.User),
		nextID: 1,
	}
}

// Create adds a new account, rejecting duplicate username, email or phone.
func (r *MockUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return ErrDuplicate
		}
		if user.Email != nil && u.Email != nil && *u.Email == *user.Email {
			return ErrDuplicate
		}
		if user.PhoneNumber != nil && u.PhoneNumber != nil && *u.PhoneNumber == *user.PhoneNumber {
			return ErrDuplicate
		}
	}

	if user.ID == 0 {
		user.ID = r.nextID
		r.nextID++
	}
	if user.DateJoined.IsZero() {
		user.DateJoined = time.Now()
	}
	r.users[user.ID] = *user
	return nil
}

// GetByID returns an account by its primary key.
func (r *MockUserRepository) GetByID(id uint) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &user, nil
}

// GetByUsername returns an account by its username.
func (r *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// GetByEmail returns an account by its email address.
func (r *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email != nil && *u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// GetByPhoneNumber returns an account by its phone number.
func (r *MockUserRepository) GetByPhoneNumber(phoneNumber int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.PhoneNumber != nil && *u.PhoneNumber == phoneNumber {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// ExistsByUsername reports whether any account holds the username.
func (r *MockUserRepository) ExistsByUsername(username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// UpdateLastSeen stamps the account's last-seen time.
func (r *MockUserRepository) UpdateLastSeen(id uint, seenAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.LastSeen = &seenAt
	r.users[id] = user
	return nil
}

// MockProfileRepository is an in-memory implementation of ProfileRepository.
type MockProfileRepository struct {
	profiles map[uint]models.UserProfile // keyed by user ID
	nextID   uint
	mu       sync.RWMutex
}

// NewMockProfileRepository creates a new instance of MockProfileRepository.
func NewMockProfileRepository() *MockProfileRepository {
	return &MockProfileRepository{
		profiles: make(map[uint]models.UserProfile),
		nextID:   1,
	}
}

// Create adds a profile row, one per account.
func (r *MockProfileRepository) Create(profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.UserID]; ok {
		return ErrDuplicate
	}
	if profile.ID == 0 {
		profile.ID = r.nextID
		r.nextID++
	}
	r.profiles[profile.UserID] = *profile
	return nil
}

// GetByUserID returns the profile belonging to an account.
func (r *MockProfileRepository) GetByUserID(userID uint) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

// Update saves profile changes.
func (r *MockProfileRepository) Update(profile *models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.profiles[profile.UserID]; !ok {
		return ErrNotFound
	}
	r.profiles[profile.UserID] = *profile
	return nil
}
