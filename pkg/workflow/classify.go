package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/entrhq/pageflow/pkg/browser"
	"github.com/entrhq/pageflow/pkg/config"
)

// Error taxonomy recorded in failure envelopes.
const (
	ErrorTypeInvalidParameter    = "InvalidParameter"
	ErrorTypeUnknownAction       = "UnknownAction"
	ErrorTypeTimeout             = "TimeoutError"
	ErrorTypeSerialization       = "SerializationError"
	ErrorTypeConstraintViolation = "ConstraintViolation"
	ErrorTypeExecution           = "ExecutionError"
)

// timeoutSuggestion is fixed for every timeout failure, independent of the
// classifier.
const timeoutSuggestion = "Use wait_for_selector before this action, or verify the selector exists on the page."

// policySuggestion is fixed for URL policy denials.
const policySuggestion = "URL is blocked by the configured URL policy. Adjust policy.allowed_url_patterns or policy.denied_url_patterns in the config file, or target an allowed URL."

// Classify maps a failure message to a human-actionable suggestion. Rules
// are checked in priority order on the lowercased message and the first
// match wins, even when a later rule would be semantically closer. The
// action name is part of the contract but does not influence any current
// rule.
func Classify(message, action string, params map[string]interface{}) string {
	lower := strings.ToLower(message)

	if strings.Contains(lower, "selector") || strings.Contains(lower, "not found") {
		return fmt.Sprintf("Selector '%s' not found. Try: 1) Use capture_snapshot to inspect page structure, 2) Wait for page to load with wait_for_selector, 3) Check if element is inside an iframe.", rawParam(params, "selector", ""))
	}

	if strings.Contains(lower, "timeout") {
		return "Operation timed out. Try increasing timeout parameter or check if the page loaded correctly."
	}

	if strings.Contains(lower, "navigation") {
		return "Navigation failed. Verify the URL is correct and accessible."
	}

	if strings.Contains(lower, "detached") {
		return "Element was removed from page. The page might have reloaded or content changed dynamically."
	}

	return "Check action parameters and ensure the page state is correct before this action."
}

// rawParam renders the raw parameter value for use inside a message, or
// def when the key is absent.
func rawParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key]; ok {
		return fmt.Sprintf("%v", v)
	}
	return def
}

// Failure normalizes an execution error into the error envelope. The
// error type comes from the error's concrete type, with browser timeouts
// recognized separately and given a fixed message and suggestion. All
// other messages are bounded and run through the classifier.
func Failure(err error, action string, params map[string]interface{}) Envelope {
	var paramErr *ParamError
	var unknownErr *UnknownActionError
	var serErr *SerializationError
	var violation *config.ConstraintViolation

	switch {
	case errors.As(err, &paramErr):
		return classified(ErrorTypeInvalidParameter, err.Error(), action, params)

	case errors.As(err, &unknownErr):
		return classified(ErrorTypeUnknownAction, err.Error(), action, params)

	case errors.As(err, &violation):
		message, _ := browser.Truncate(violation.Message, browser.MaxErrorLength)
		return Envelope{
			Status:     StatusError,
			ErrorType:  ErrorTypeConstraintViolation,
			Message:    message,
			Suggestion: policySuggestion,
		}

	case browser.IsTimeout(err):
		return Envelope{
			Status:     StatusError,
			ErrorType:  ErrorTypeTimeout,
			Message:    fmt.Sprintf("Timeout waiting for: %s. Try increasing timeout or check selector.", rawParam(params, "selector", "unknown")),
			Suggestion: timeoutSuggestion,
		}

	case errors.As(err, &serErr):
		return classified(ErrorTypeSerialization, err.Error(), action, params)

	default:
		return classified(ErrorTypeExecution, err.Error(), action, params)
	}
}

// classified builds an error envelope whose suggestion comes from the
// classifier. The classifier sees the full message; only the recorded
// message is truncated.
func classified(errorType, message, action string, params map[string]interface{}) Envelope {
	bounded, _ := browser.Truncate(message, browser.MaxErrorLength)
	return Envelope{
		Status:     StatusError,
		ErrorType:  errorType,
		Message:    bounded,
		Suggestion: Classify(message, action, params),
	}
}
