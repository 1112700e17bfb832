package service

import (
	"errors"
)

// Sentinel kinds for service errors.
var (
	ErrNotStarted  = errors.New("service not started")
	ErrNoDocuments = errors.New("no documents loaded")
)
