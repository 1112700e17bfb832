package model

import "encoding/json"

// Document is one pre-computed analysis artifact selected by a Key.
// Quotes are opaque and passed through unchanged.
type Document struct {
	Effects     Ordered[BehavioralFeature]     `json:"overall_behavioral_effects"`
	Consultants Ordered[ConsultantPerformance] `json:"individual_consultant_performance"`
	Quotes      map[string]json.RawMessage     `json:"example_quotes,omitempty"`
}

// Decode parses a document from JSON.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
