package models_test

import (
	"fmt"
	"testing"

	"bazaar/internal/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func strPtr(v string) *string {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func TestUser_GetFullName(t *testing.T) {
	user := models.User{FirstName: "Ali", LastName: "Rezaei"}
	assert.Equal(t, "Ali Rezaei", user.GetFullName())

	// Trimmed when either part is missing.
	user = models.User{FirstName: "Ali"}
	assert.Equal(t, "Ali", user.GetFullName())
	user = models.User{LastName: "Rezaei"}
	assert.Equal(t, "Rezaei", user.GetFullName())
	user = models.User{}
	assert.Equal(t, "", user.GetFullName())
}

func TestUser_GetShortName(t *testing.T) {
	user := models.User{FirstName: "Ali", LastName: "Rezaei"}
	assert.Equal(t, "Ali", user.GetShortName())
}

func TestUser_IsLoggedInUser(t *testing.T) {
	assert.True(t, (&models.User{PhoneNumber: int64Ptr(9891234567800)}).IsLoggedInUser())
	assert.True(t, (&models.User{Email: strPtr("a@b.com")}).IsLoggedInUser())
	assert.False(t, (&models.User{Username: "anon"}).IsLoggedInUser())
}

func TestUser_BeforeSave_BlankEmailBecomesNull(t *testing.T) {
	db := openTestDB(t)

	user := models.User{Username: "blank1", Email: strPtr("   ")}
	assert.NoError(t, db.Create(&user).Error)

	var stored models.User
	assert.NoError(t, db.First(&stored, "id = ?", user.ID).Error)
	assert.Nil(t, stored.Email)

	// A second blank-email account must not trip the unique index: both rows
	// persist NULL, not "".
	second := models.User{Username: "blank2", Email: strPtr("")}
	assert.NoError(t, db.Create(&second).Error)
}

func TestUser_UniqueConstraints(t *testing.T) {
	db := openTestDB(t)

	first := models.User{Username: "unique1", Email: strPtr("u@example.com"), PhoneNumber: int64Ptr(989912345678)}
	assert.NoError(t, db.Create(&first).Error)

	dupUsername := models.User{Username: "unique1"}
	err := db.Create(&dupUsername).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	dupEmail := models.User{Username: "unique2", Email: strPtr("u@example.com")}
	err = db.Create(&dupEmail).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	dupPhone := models.User{Username: "unique3", PhoneNumber: int64Ptr(989912345678)}
	err = db.Create(&dupPhone).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
