package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrRestaurantNotFound = errors.New("restaurant not found")
)
