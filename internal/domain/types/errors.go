package types

import "errors"

// Sentinel kinds shared across layers so adapters can map them with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidQuery = errors.New("invalid query")
)
