package models

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrBookingNotFound = errors.New("booking not found")
)

var (
	ErrEmailTaken = errors.New("email already registered")
	ErrInvalidID  = errors.New("invalid id")
)
