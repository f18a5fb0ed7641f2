package commands

import (
	"errors"

	"github.com/tartampluch/go-phonebook/internal/config"
)

var (
	ErrUsage          = errors.New(config.ErrUsageText)
	ErrUnknownCommand = errors.New(config.ErrUnknownCommand)
)

// failure couples a cause with the message that tells the user about it.
type failure struct {
	key  string
	data map[string]any
	err  error
}

func (f *failure) Error() string { return f.err.Error() }

func (f *failure) Unwrap() error { return f.err }

func fail(err error, key string, data map[string]any) error {
	return &failure{key: key, data: data, err: err}
}
