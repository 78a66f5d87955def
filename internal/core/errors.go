package core

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrNotOpen          = errors.New("order is not open")
	ErrInvalidPageToken = errors.New("invalid page token")
)
