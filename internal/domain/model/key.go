// Package model contains the source document shapes decoded from the
// analysis pipelines.
package model

import (
	"errors"
	"strings"
)

// keySeparator joins dataset and view in file names and string keys.
const keySeparator = "__"

// ErrInvalidKey is returned when a string cannot be split into dataset and view.
var ErrInvalidKey = errors.New("invalid document key")

// Key selects one source document: a dataset rendered for one view.
type Key struct {
	Dataset string `json:"dataset"`
	View    string `json:"view"`
}

// String renders the key as dataset__view.
func (k Key) String() string {
	return k.Dataset + keySeparator + k.View
}

// IsZero reports whether neither part of the key is set.
func (k Key) IsZero() bool {
	return k.Dataset == "" && k.View == ""
}

// ParseKey splits "dataset__view" into a Key. Both parts must be non-empty.
func ParseKey(s string) (Key, error) {
	dataset, view, ok := strings.Cut(s, keySeparator)
	dataset = strings.TrimSpace(dataset)
	view = strings.TrimSpace(view)
	if !ok || dataset == "" || view == "" {
		return Key{}, ErrInvalidKey
	}
	return Key{Dataset: dataset, View: view}, nil
}
