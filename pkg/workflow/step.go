package workflow

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Step is one entry in the workflow input: an action name plus its
// parameter bag. Steps have no identity beyond their position; the result
// key is derived from the index and the action name.
type Step struct {
	Action string                 `json:"action"`
	Params map[string]interface{} `json:"params"`
}

// StopOnError reports whether this step requests early termination of the
// whole run when its own execution fails.
func (s Step) StopOnError() bool {
	return boolParam(s.Params, "stop_on_error", false)
}

// Key returns the result document key for this step at the given index.
func (s Step) Key(index int) string {
	return fmt.Sprintf("step_%d_%s", index, s.Action)
}

var (
	// ErrStepsNotArray is returned when the steps document is valid JSON
	// but not an array.
	ErrStepsNotArray = errors.New("'steps' must be a JSON array")

	// ErrStepsEmpty is returned when the steps array has no entries.
	ErrStepsEmpty = errors.New("'steps' array cannot be empty")
)

// ParseSteps decodes a JSON document into a step list. Syntax errors pass
// through unchanged so callers can distinguish malformed JSON from a
// well-formed document of the wrong shape.
func ParseSteps(data []byte) ([]Step, error) {
	var rawSteps []json.RawMessage
	if err := json.Unmarshal(data, &rawSteps); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ErrStepsNotArray
		}
		return nil, err
	}

	// A JSON null decodes without error but leaves the slice nil.
	if rawSteps == nil {
		return nil, ErrStepsNotArray
	}

	if len(rawSteps) == 0 {
		return nil, ErrStepsEmpty
	}

	steps := make([]Step, 0, len(rawSteps))
	for i, raw := range rawSteps {
		var step Step
		if err := json.Unmarshal(raw, &step); err != nil {
			return nil, fmt.Errorf("step %d is not an object: %w", i, err)
		}
		steps = append(steps, step)
	}

	return steps, nil
}
