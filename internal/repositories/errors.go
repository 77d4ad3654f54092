package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Sentinel errors shared by every repository implementation. Services branch
// on these with errors.Is instead of matching error strings.
var (
	// ErrNotFound signals that no record matched the given key.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate signals a unique-constraint violation at insert or update
	// time. The database constraint, not the application-level existence
	// probe, is the actual uniqueness backstop under concurrent writes.
	ErrDuplicate = errors.New("duplicate record")
)

// translate maps GORM's errors onto the repository sentinels. Requires the
// gorm.Config{TranslateError: true} session option so driver-specific
// duplicate-key errors surface as gorm.ErrDuplicatedKey.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
