package apperr

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Error kinds surfaced by the service layer. Handlers map these onto
// HTTP status codes; the services themselves never log or swallow them.
var (
	// ErrValidation: malformed input (out-of-range rating, empty required field)
	ErrValidation = errors.New("validation failed")
	// ErrDuplicate: a uniqueness invariant was violated (second review for the
	// same race, username/email already taken)
	ErrDuplicate = errors.New("already exists")
	// ErrNotFound: the referenced race/review/user/like does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the acting user is neither the owner nor an admin
	ErrForbidden = errors.New("forbidden")
	// ErrConflict: a toggle lost a race against a concurrent request and the
	// internal retry lost again
	ErrConflict = errors.New("conflict")
	// ErrStoreUnavailable: the persistence layer is unreachable; fatal for the
	// request, never retried here
	ErrStoreUnavailable = errors.New("store unavailable")
)

// FromStore translates a gorm error into the taxonomy above. Record-not-found
// and duplicated-key are expected conditions; everything else means the store
// itself failed the request.
func FromStore(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
