package book

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-phonebook/internal/config"
)

// Error kinds surfaced by the record model. Callers match them with errors.Is.
var (
	ErrValidation = errors.New(config.ErrValidationFailed)
	ErrAlreadySet = errors.New(config.ErrBirthdayExists)
	ErrNotFound   = errors.New(config.ErrRecordNotFound)
)

// Validation failures, each wrapping ErrValidation.
var (
	ErrInvalidPhone = fmt.Errorf("%w: %s", ErrValidation, config.ErrPhoneFormat)
	ErrInvalidDate  = fmt.Errorf("%w: %s", ErrValidation, config.ErrDateFormat)
	ErrEmptyName    = fmt.Errorf("%w: %s", ErrValidation, config.ErrNameEmpty)
)
