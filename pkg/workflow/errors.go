package workflow

import (
	"fmt"
	"strings"
)

// ParamError reports a missing or unusable required parameter. It is
// raised during parameter decoding, before any browser call is made.
type ParamError struct {
	Message string
}

func (e *ParamError) Error() string {
	return e.Message
}

// requiredParam builds the ParamError for a single missing parameter.
func requiredParam(name, action string) *ParamError {
	return &ParamError{Message: fmt.Sprintf("'%s' parameter is required for %s action", name, action)}
}

// UnknownActionError reports a step whose action name is not registered.
type UnknownActionError struct {
	Name string
}

func (e *UnknownActionError) Error() string {
	quoted := make([]string, len(actionNames))
	for i, n := range actionNames {
		quoted[i] = "'" + n + "'"
	}
	return fmt.Sprintf("Unknown action: '%s'. Supported: [%s]", e.Name, strings.Join(quoted, ", "))
}

// SerializationError reports that a JavaScript evaluation result could not
// be represented as JSON.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("result is not JSON serializable: %v", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}
