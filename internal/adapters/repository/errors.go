package repository

import (
	"errors"
	"fmt"

	"github.com/okian/coachlens/internal/domain/types"
)

// Sentinel kinds for document store errors.
var (
	ErrNotFound = fmt.Errorf("document %w", types.ErrNotFound)
	ErrDecode   = errors.New("document decode failed")
	ErrRead     = errors.New("document read failed")
)
