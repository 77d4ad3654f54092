package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/pkg/rabbitmq"

	"golang.org/x/crypto/bcrypt"
)

// Errors surfaced by the account service. Handlers map these onto HTTP
// statuses.
var (
	// ErrNoIdentitySource means neither a username, an email nor a phone
	// number was supplied, so no username can be derived.
	ErrNoIdentitySource = errors.New("a username, email or phone number is required to create an account")
	// ErrUsernameTaken is returned for an explicitly supplied username that
	// already exists. Derived usernames are retried instead.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrPhoneTaken is returned when the phone number is already registered.
	ErrPhoneTaken = errors.New("phone number already registered")
	// ErrUsernameSpaceExhausted is returned when the bounded suffix retry
	// could not find a free derived username.
	ErrUsernameSpaceExhausted = errors.New("could not derive a unique username")
	// ErrNoEmailAddress is returned by EmailUser for accounts without email.
	ErrNoEmailAddress = errors.New("account has no email address")
	// ErrProvinceNotSelectable is returned when a profile update points at a
	// missing or retired province.
	ErrProvinceNotSelectable = errors.New("province is not selectable")
)

// usernamePattern is the canonical username shape: a letter followed by
// letters, digits, dots or underscores. Derived candidates are coerced into
// it before the uniqueness loop runs.
var (
	usernamePattern      = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.]+$`)
	invalidUsernameChars = regexp.MustCompile(`[^a-zA-Z0-9_.]`)
)

// maxUsernameAttempts caps the derive-and-suffix loop. The check-then-insert
// sequence can always lose a race, so the insert itself is inside the loop
// and the database unique constraint is the final arbiter.
const maxUsernameAttempts = 10

// CreateUserOptions enumerates the optional account-creation fields.
type CreateUserOptions struct {
	// NoPassword leaves the credential empty; the account cannot log in
	// until a password is set.
	NoPassword  bool
	IsStaff     bool
	IsSuperuser bool
	FirstName   string
	LastName    string
}

// AccountService constructs accounts with guaranteed-unique usernames and
// normalized credential fields.
type AccountService struct {
	userRepo     repositories.UserRepository
	profileRepo  repositories.ProfileRepository
	provinceRepo repositories.ProvinceRepository
	mqClient     *rabbitmq.Client
}

// NewAccountService creates a new AccountService. mqClient may be nil, in
// which case registration events and outbound mail are skipped.
func NewAccountService(userRepo repositories.UserRepository, profileRepo repositories.ProfileRepository, provinceRepo repositories.ProvinceRepository, mqClient *rabbitmq.Client) *AccountService {
	return &AccountService{
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		provinceRepo: provinceRepo,
		mqClient:     mqClient,
	}
}

// CreateUser creates an account. When username is empty a candidate is
// derived from the email local-part, or failing that from the phone number,
// and suffixed with a random two-digit number until it no longer collides
// with an existing account. The derived value always keeps the username
// pattern: email local-parts are sanitized and letter-prefixed when needed,
// phone digits get a random lowercase letter prefix.
func (s *AccountService) CreateUser(username string, phoneNumber *int64, email, password string, opts CreateUserOptions) (*models.User, error) {
	email = NormalizeEmail(email)

	derived := username == ""
	if derived {
		candidate, err := deriveCandidate(email, phoneNumber)
		if err != nil {
			return nil, err
		}
		username = candidate
	}

	var emailField *string
	if email != "" {
		emailField = &email
	}

	hashed := ""
	if !opts.NoPassword {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed = string(h)
	}

	for attempt := 0; attempt < maxUsernameAttempts; attempt++ {
		if derived {
			exists, err := s.userRepo.ExistsByUsername(username)
			if err != nil {
				return nil, err
			}
			if exists {
				username = suffixed(username)
				continue
			}
		}

		user := &models.User{
			Username:    username,
			FirstName:   opts.FirstName,
			LastName:    opts.LastName,
			Email:       emailField,
			PhoneNumber: phoneNumber,
			Password:    hashed,
			IsActive:    true,
			IsStaff:     opts.IsStaff,
			IsSuperuser: opts.IsSuperuser,
			DateJoined:  time.Now(),
		}

		err := s.userRepo.Create(user)
		if err == nil {
			if profErr := s.profileRepo.Create(&models.UserProfile{UserID: user.ID}); profErr != nil {
				return nil, fmt.Errorf("failed to create profile for user %d: %w", user.ID, profErr)
			}
			s.publishRegistered(user)
			return user, nil
		}
		if !errors.Is(err, repositories.ErrDuplicate) {
			return nil, err
		}

		// The duplicate may be on email or phone rather than username;
		// those are fatal regardless of how the username was obtained.
		if dupErr := s.classifyDuplicate(email, phoneNumber); dupErr != nil {
			return nil, dupErr
		}
		if !derived {
			return nil, ErrUsernameTaken
		}
		// Lost the check-then-insert race on a derived username: suffix
		// and try again.
		username = suffixed(username)
	}

	return nil, ErrUsernameSpaceExhausted
}

// CreateSuperuser creates a staff account with superuser rights. The username
// must be explicit.
func (s *AccountService) CreateSuperuser(username string, phoneNumber *int64, email, password string) (*models.User, error) {
	if username == "" {
		return nil, ErrNoIdentitySource
	}
	return s.CreateUser(username, phoneNumber, email, password, CreateUserOptions{
		IsStaff:     true,
		IsSuperuser: true,
	})
}

// GetByID looks an account up by primary key.
func (s *AccountService) GetByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// GetProfile retrieves the profile row belonging to an account.
func (s *AccountService) GetProfile(userID uint) (*models.UserProfile, error) {
	return s.profileRepo.GetByUserID(userID)
}

// ProfileUpdate carries the profile fields an account may change. Nil fields
// are left untouched.
type ProfileUpdate struct {
	NickName   *string
	Avatar     *string
	Birthday   *time.Time
	Gender     *bool
	ProvinceID *uint
}

// UpdateProfile applies the changes to the account's profile row. A province
// reference must point at a selectable province.
func (s *AccountService) UpdateProfile(userID uint, update ProfileUpdate) (*models.UserProfile, error) {
	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	if update.ProvinceID != nil {
		province, err := s.provinceRepo.GetByID(*update.ProvinceID)
		if err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return nil, ErrProvinceNotSelectable
			}
			return nil, err
		}
		if !province.IsValid {
			return nil, ErrProvinceNotSelectable
		}
		profile.ProvinceID = update.ProvinceID
	}
	if update.NickName != nil {
		profile.NickName = *update.NickName
	}
	if update.Avatar != nil {
		profile.Avatar = *update.Avatar
	}
	if update.Birthday != nil {
		profile.Birthday = update.Birthday
	}
	if update.Gender != nil {
		profile.Gender = update.Gender
	}

	if err := s.profileRepo.Update(profile); err != nil {
		return nil, fmt.Errorf("failed to update profile for user %d: %w", userID, err)
	}
	return profile, nil
}

// GetByPhoneNumber looks an account up by phone number. Returns
// repositories.ErrNotFound when no account matches.
func (s *AccountService) GetByPhoneNumber(phoneNumber int64) (*models.User, error) {
	return s.userRepo.GetByPhoneNumber(phoneNumber)
}

// EmailUser queues an outbound email for the account.
func (s *AccountService) EmailUser(user *models.User, subject, message string) error {
	if user.Email == nil {
		return ErrNoEmailAddress
	}
	if s.mqClient == nil {
		return fmt.Errorf("mail transport is not available")
	}

	body, err := json.Marshal(map[string]string{
		"to":      *user.Email,
		"subject": subject,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal email task: %w", err)
	}
	if err := s.mqClient.Publish(rabbitmq.EmailQueue, body); err != nil {
		return fmt.Errorf("failed to queue email for user %d: %w", user.ID, err)
	}
	return nil
}

// publishRegistered emits a best-effort registration event.
func (s *AccountService) publishRegistered(user *models.User) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"event":    "user.registered",
		"user_id":  user.ID,
		"username": user.Username,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal registration event for user %d: %v", user.ID, err)
		return
	}
	if err := s.mqClient.Publish(rabbitmq.UserEventsQueue, body); err != nil {
		log.Printf("Warning: failed to publish registration event for user %d: %v", user.ID, err)
	}
}

// classifyDuplicate attributes an insert-time duplicate to email or phone.
// A nil return means the collision was on the username column.
func (s *AccountService) classifyDuplicate(email string, phoneNumber *int64) error {
	if email != "" {
		if _, err := s.userRepo.GetByEmail(email); err == nil {
			return ErrEmailTaken
		}
	}
	if phoneNumber != nil {
		if _, err := s.userRepo.GetByPhoneNumber(*phoneNumber); err == nil {
			return ErrPhoneTaken
		}
	}
	return nil
}

// deriveCandidate builds a provisional username. The email local-part is the
// preferred source: characters the username pattern forbids are stripped, and
// a local-part that still does not match the pattern (digit-led, or a single
// character) gets a random lowercase letter prefix. Without a usable email
// the candidate is a random lowercase letter followed by the last seven
// digits of the phone number.
func deriveCandidate(email string, phoneNumber *int64) (string, error) {
	if email != "" {
		if i := strings.Index(email, "@"); i > 0 {
			candidate := invalidUsernameChars.ReplaceAllString(email[:i], "")
			if candidate != "" {
				if !usernamePattern.MatchString(candidate) {
					candidate = randomLetter() + candidate
				}
				return candidate, nil
			}
		}
	}
	if phoneNumber != nil {
		digits := strconv.FormatInt(*phoneNumber, 10)
		if len(digits) > 7 {
			digits = digits[len(digits)-7:]
		}
		return randomLetter() + digits, nil
	}
	return "", ErrNoIdentitySource
}

func randomLetter() string {
	return string(rune('a' + rand.Intn(26)))
}

// suffixed appends a random two-digit number (10-99) to a colliding
// candidate.
func suffixed(username string) string {
	return username + strconv.Itoa(10+rand.Intn(90))
}

// NormalizeEmail trims the address and lower-cases its domain so uniqueness
// checks are case-insensitive on the domain part.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	if i := strings.LastIndex(email, "@"); i >= 0 {
		email = email[:i] + "@" + strings.ToLower(email[i+1:])
	}
	return email
}
