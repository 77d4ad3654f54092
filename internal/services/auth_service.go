package services

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles credential checks and token issuance.
type AuthService struct {
	userRepo   repositories.UserRepository
	deviceRepo repositories.DeviceRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService. deviceRepo may be nil when device
// tracking is not wired (unit tests).
func NewAuthService(userRepo repositories.UserRepository, deviceRepo repositories.DeviceRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// DeviceInfo carries the optional client metadata sent along with a token
// request.
type DeviceInfo struct {
	DeviceUUID  uuid.UUID
	DeviceType  models.DeviceType
	DeviceOS    string
	DeviceModel string
	AppVersion  string
}

// Login authenticates by username or phone number and returns a signed JWT.
// The caller's device row, when metadata is supplied, is created or refreshed
// as a side effect.
func (s *AuthService) Login(identifier, password string, device *DeviceInfo) (string, error) {
	user, err := s.lookup(identifier)
	if err != nil {
		// Do not reveal whether the account exists.
		return "", fmt.Errorf("invalid credentials")
	}

	// An empty hash means the account was created without a usable password.
	if !user.IsActive || user.Password == "" {
		return "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastSeen(user.ID, now); err != nil {
		log.Printf("Warning: failed to update last seen for user %d: %v", user.ID, err)
	}

	if device != nil && s.deviceRepo != nil {
		row := &models.Device{
			UserID:      user.ID,
			DeviceUUID:  device.DeviceUUID,
			DeviceType:  device.DeviceType,
			DeviceOS:    device.DeviceOS,
			DeviceModel: device.DeviceModel,
			AppVersion:  device.AppVersion,
			LastLogin:   &now,
		}
		if !row.DeviceType.Valid() {
			row.DeviceType = models.DeviceTypeAndroid
		}
		if err := s.deviceRepo.Upsert(row); err != nil {
			log.Printf("Warning: failed to record device for user %d: %v", user.ID, err)
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.tokenDurat).Unix(),
		"iat":      now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, nil
}

// lookup resolves a login identifier: an all-digit identifier is treated as a
// phone number, anything else as a username.
func (s *AuthService) lookup(identifier string) (*models.User, error) {
	if phone, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return s.userRepo.GetByPhoneNumber(phone)
	}
	return s.userRepo.GetByUsername(identifier)
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})

	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
