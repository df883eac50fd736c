package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInProgress         = errors.New("request already in progress")
)

// InputError is a rejected request; Msg is shown to the user.
type InputError struct {
	Msg string
}

func (e *InputError) Error() string {
	return e.Msg
}

func invalid(msg string) error {
	return &InputError{Msg: msg}
}

// notFound maps a missing row to ErrNotFound and passes other errors through.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
