package entity

import "errors"

// Domain errors for social data
var (
	ErrUnknownNumberKind = errors.New("unknown number kind")
	ErrInvalidLimit      = errors.New("limit must be positive")
)
