package service

import "errors"

var (
	ErrValidation         = errors.New("missing or invalid fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
