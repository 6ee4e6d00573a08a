package apperrors

import (
	"errors"

	"gorm.io/gorm"
)

// FromDB classifies a GORM error for resource/id. The DB handle must be opened
// with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func FromDB(err error, resource, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrValidation), errors.Is(err, ErrConflict):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound(resource, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("%s %s already exists", resource, id)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return Validation("%s %s has a value out of range", resource, id)
	default:
		return Internal("failed to access "+resource+" store", err)
	}
}
