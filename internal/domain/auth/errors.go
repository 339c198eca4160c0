package auth

import "errors"

var (
	ErrInvalidToken     = errors.New("invalid or expired token")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
