package user

import "errors"

var (
	ErrProfileNotFound = errors.New("user profile not found")
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrEmptyUpdate     = errors.New("no fields to update")
)
