package auth

import "errors"

var (
	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidToken is returned when a bearer token fails signature or claim validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a bearer token is past its expiry.
	ErrExpiredToken = errors.New("token has expired")
)
