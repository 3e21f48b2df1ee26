package service

import (
	"errors"

	"sfa/entities"
)

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type AuthService interface {
	Register(name, email, password string) (string, *entities.User, error)
	Login(email, password string) (string, *entities.User, error)
	// EnsureDefaultAdmin creates the configured admin account once.
	EnsureDefaultAdmin() error
}
