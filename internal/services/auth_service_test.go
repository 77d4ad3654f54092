package services_test

import (
	"fmt"
	"testing"
	"time"

	"bazaar/internal/models"
	"bazaar/internal/repositories"
	"bazaar/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_Login(t *testing.T) {
	stub := new(StubUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(stub, nil, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       7,
		Username: "testuser",
		Password: string(hashedPassword),
		IsActive: true,
	}

	// Successful login by username.
	stub.On("GetByUsername", user.Username).Return(user, nil).Once()
	stub.On("UpdateLastSeen", user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	token, err := authService.Login("testuser", "password123", nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, float64(user.ID), claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	stub.AssertExpectations(t)

	// Wrong password.
	stub.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, err = authService.Login("testuser", "wrongpassword", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	stub.AssertExpectations(t)

	// Unknown account: same generic error, nothing leaked.
	stub.On("GetByUsername", "nonexistentuser").Return(nil, repositories.ErrNotFound).Once()
	_, err = authService.Login("nonexistentuser", "password123", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	stub.AssertExpectations(t)
}

func TestAuthService_Login_ByPhoneNumber(t *testing.T) {
	stub := new(StubUserRepository)
	authService := services.NewAuthService(stub, nil, "test_jwt_secret")

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:          3,
		Username:    "k1234567",
		PhoneNumber: int64Ptr(989312345678),
		Password:    string(hashedPassword),
		IsActive:    true,
	}

	// An all-digit identifier resolves through the phone-number lookup.
	stub.On("GetByPhoneNumber", int64(989312345678)).Return(user, nil).Once()
	stub.On("UpdateLastSeen", user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	token, err := authService.Login("989312345678", "password123", nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	stub.AssertExpectations(t)
}

func TestAuthService_Login_RejectsUnusableAccounts(t *testing.T) {
	stub := new(StubUserRepository)
	authService := services.NewAuthService(stub, nil, "test_jwt_secret")

	// No usable password: the account was created with NoPassword.
	stub.On("GetByUsername", "ghost").Return(&models.User{
		ID:       1,
		Username: "ghost",
		IsActive: true,
	}, nil).Once()
	_, err := authService.Login("ghost", "anything", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")

	// Deactivated account.
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	stub.On("GetByUsername", "blocked").Return(&models.User{
		ID:       2,
		Username: "blocked",
		Password: string(hashedPassword),
		IsActive: false,
	}, nil).Once()
	_, err = authService.Login("blocked", "password123", nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	stub.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	stub := new(StubUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(stub, nil, testJWTSecret)

	// Generate a valid token.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  float64(42),
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, float64(42), claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Garbage token.
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Expired token.
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  float64(42),
		"username": "testuser",
		"exp":      jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}
