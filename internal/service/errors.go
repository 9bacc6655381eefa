package service

import "errors"

var (
	ErrValidation         = errors.New("validation error")
	ErrNotFoundAccount    = errors.New("account not found")
	ErrInvalidCredentials = errors.New("invalid password")
)
