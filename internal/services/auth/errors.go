package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user doesn't exist")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrUserAlreadyExists  = errors.New("user already exists")
)
