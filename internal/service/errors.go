package service

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrBetLocked      = errors.New("bet is locked or resolved")
	ErrNoActiveSeason = errors.New("no active season")
	ErrNoDefaultType  = errors.New("no default gambling type configured")
)
