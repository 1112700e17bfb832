package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Keyed is one member of a JSON object, kept with its key.
type Keyed[T any] struct {
	Key   string
	Value T
}

// Ordered decodes a JSON object into its members in document order. Ranking
// ties break by source order, which a Go map cannot preserve.
type Ordered[T any] []Keyed[T]

// Len returns the number of members.
func (o Ordered[T]) Len() int { return len(o) }

// Get returns the value stored under key.
func (o Ordered[T]) Get(key string) (T, bool) {
	for _, kv := range o {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	var zero T
	return zero, false
}

// Keys returns the member keys in document order.
func (o Ordered[T]) Keys() []string {
	keys := make([]string, len(o))
	for i, kv := range o {
		keys[i] = kv.Key
	}
	return keys
}

// UnmarshalJSON reads a JSON object member by member. null decodes to an
// empty collection. A repeated key keeps its first position and last value,
// matching how the dashboard indexed the source objects.
func (o *Ordered[T]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*o = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	out := Ordered[T]{}
	index := map[string]int{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}
		var value T
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("member %q: %w", key, err)
		}
		if i, seen := index[key]; seen {
			out[i].Value = value
			continue
		}
		index[key] = len(out)
		out = append(out, Keyed[T]{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*o = out
	return nil
}

// MarshalJSON writes the members back as a JSON object in order.
func (o Ordered[T]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kv := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(kv.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(kv.Value)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", kv.Key, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
