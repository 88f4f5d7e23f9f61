package domain

import (
	"errors"

	"github.com/Flarenzy/ipam-monitor/internal/cidr"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrSubnetNotFound  = errors.New("subnet not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidFormat   = cidr.ErrInvalidFormat
	ErrSegmentTooLarge = errors.New("segment too large")
	ErrConflict        = errors.New("conflict")
	ErrInvalidState    = errors.New("invalid state")
	ErrResourceInUse   = errors.New("resource in use")
	ErrScanInProgress  = errors.New("scan already in progress")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
)
