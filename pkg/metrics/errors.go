package metrics

import (
	"errors"
)

// Sentinel kinds for metrics errors.
var (
	ErrUnknownFallback = errors.New("metrics: unknown fallback kind")
)
