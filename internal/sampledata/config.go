// Package sampledata generates synthetic analysis documents for demos and
// tests. Output is deterministic for a given seed.
package sampledata

import (
	"github.com/okian/coachlens/internal/domain/model"
)

// Config controls what Generate produces.
type Config struct {
	// Keys is the set of documents to generate.
	Keys []model.Key
	// Features and Consultants size each document. Features is capped at
	// the number of known behaviors.
	Features    int
	Consultants int
	// Seed makes output reproducible.
	Seed int64
}

// DefaultConfig returns a small two-view configuration.
func DefaultConfig() Config {
	return Config{
		Keys: []model.Key{
			{Dataset: "retention", View: "coaching"},
			{Dataset: "enrollment", View: "coaching"},
		},
		Features:    8,
		Consultants: 12,
		Seed:        1,
	}
}
