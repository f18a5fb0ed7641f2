package book

import (
	"github.com/go-playground/validator/v10"
	"github.com/tartampluch/go-phonebook/internal/config"
)

var validate = validator.New()

// Phone is a validated 10-digit phone number.
type Phone struct {
	value string
}

// NewPhone validates raw and wraps it. It fails with ErrInvalidPhone unless raw
// is exactly ten ASCII digits.
func NewPhone(raw string) (Phone, error) {
	if err := validate.Var(raw, config.PhoneRule); err != nil {
		return Phone{}, ErrInvalidPhone
	}
	return Phone{value: raw}, nil
}

func (p Phone) String() string {
	return p.value
}
