package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Field is one ordered key/value pair of a success payload.
type Field struct {
	Key   string
	Value interface{}
}

// F builds one ordered field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Envelope is the uniform result recorded for every executed step. A
// success carries its action-specific fields; a failure carries the error
// type, a bounded message, and a suggestion. An envelope is always fully
// one or the other.
type Envelope struct {
	Status     string
	ErrorType  string
	Message    string
	Suggestion string
	Fields     []Field
}

// Success builds a success envelope with the given ordered fields.
func Success(fields ...Field) Envelope {
	return Envelope{Status: StatusSuccess, Fields: fields}
}

// OK reports whether the envelope records a success.
func (e Envelope) OK() bool {
	return e.Status == StatusSuccess
}

// Field returns the value recorded under key, if any.
func (e Envelope) Field(key string) (interface{}, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// MarshalJSON writes status first, then either the error triple or the
// success fields in their recorded order.
func (e Envelope) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	if err := writePair(&buf, "status", e.Status); err != nil {
		return nil, err
	}

	if e.Status == StatusError {
		for _, pair := range []struct {
			key   string
			value string
		}{
			{"error_type", e.ErrorType},
			{"message", e.Message},
			{"suggestion", e.Suggestion},
		} {
			buf.WriteByte(',')
			if err := writePair(&buf, pair.key, pair.value); err != nil {
				return nil, err
			}
		}
	} else {
		for _, f := range e.Fields {
			buf.WriteByte(',')
			if err := writePair(&buf, f.Key, f.Value); err != nil {
				return nil, err
			}
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// writePair appends a marshaled "key":value pair to buf.
func writePair(buf *bytes.Buffer, key string, value interface{}) error {
	keyData, err := json.Marshal(key)
	if err != nil {
		return err
	}

	valueData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal field %q: %w", key, err)
	}

	buf.Write(keyData)
	buf.WriteByte(':')
	buf.Write(valueData)
	return nil
}

// Result is the ordered mapping of step keys to envelopes produced by one
// run. Keys follow execution order; a plain map would lose that order in
// the marshaled document.
type Result struct {
	keys      []string
	envelopes map[string]Envelope
}

// NewResult creates an empty result document.
func NewResult() *Result {
	return &Result{envelopes: make(map[string]Envelope)}
}

// Add records the envelope under key. Keys are unique by construction
// (the step index is part of the key), so Add never overwrites in
// practice; a repeated key keeps its original position.
func (r *Result) Add(key string, env Envelope) {
	if _, exists := r.envelopes[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.envelopes[key] = env
}

// Get returns the envelope recorded under key.
func (r *Result) Get(key string) (Envelope, bool) {
	env, ok := r.envelopes[key]
	return env, ok
}

// Len returns the number of recorded steps.
func (r *Result) Len() int {
	return len(r.keys)
}

// Keys returns the recorded keys in execution order.
func (r *Result) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// MarshalJSON writes the result as a JSON object with keys in execution
// order.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, key := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writePair(&buf, key, r.envelopes[key]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
