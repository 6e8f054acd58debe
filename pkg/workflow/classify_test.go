package workflow

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/pageflow/pkg/config"
)

func TestClassify(t *testing.T) {
	selectorSuggestion := "Selector '#btn' not found. Try: 1) Use capture_snapshot to inspect page structure, 2) Wait for page to load with wait_for_selector, 3) Check if element is inside an iframe."
	params := map[string]interface{}{"selector": "#btn"}

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			"selector keyword",
			"waiting for selector `#btn` failed",
			selectorSuggestion,
		},
		{
			"not found keyword",
			"element not found in DOM",
			selectorSuggestion,
		},
		{
			"selector wins over timeout",
			"Timeout 5000ms exceeded waiting for selector",
			selectorSuggestion,
		},
		{
			"timeout keyword",
			"Timeout 5000ms exceeded",
			"Operation timed out. Try increasing timeout parameter or check if the page loaded correctly.",
		},
		{
			"navigation keyword",
			"navigation to page interrupted",
			"Navigation failed. Verify the URL is correct and accessible.",
		},
		{
			"detached keyword",
			"element was detached from the DOM",
			"Element was removed from page. The page might have reloaded or content changed dynamically.",
		},
		{
			"no rule matches",
			"browser crashed",
			"Check action parameters and ensure the page state is correct before this action.",
		},
		{
			"case insensitive",
			"SELECTOR resolution failed",
			selectorSuggestion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.message, "click", params))
		})
	}
}

func TestClassify_SelectorNameFromParams(t *testing.T) {
	// An absent selector parameter renders as the empty string.
	got := Classify("element not found", "click", map[string]interface{}{})
	assert.True(t, strings.HasPrefix(got, "Selector '' not found."), "got %q", got)

	// Non-string selector values render through their default formatting.
	got = Classify("element not found", "click", map[string]interface{}{"selector": 42.0})
	assert.True(t, strings.HasPrefix(got, "Selector '42' not found."), "got %q", got)
}

func TestFailure_ParamError(t *testing.T) {
	env := Failure(requiredParam("url", "navigate"), "navigate", map[string]interface{}{})

	assert.Equal(t, StatusError, env.Status)
	assert.Equal(t, ErrorTypeInvalidParameter, env.ErrorType)
	assert.Equal(t, "'url' parameter is required for navigate action", env.Message)
	assert.Equal(t, "Check action parameters and ensure the page state is correct before this action.", env.Suggestion)
}

func TestFailure_ParamErrorMentioningSelector(t *testing.T) {
	// Messages that contain the word "selector" route to the selector
	// suggestion even when the failure is a missing parameter.
	env := Failure(requiredParam("selector", "fill"), "fill", map[string]interface{}{})

	assert.Equal(t, ErrorTypeInvalidParameter, env.ErrorType)
	assert.True(t, strings.HasPrefix(env.Suggestion, "Selector '' not found."), "got %q", env.Suggestion)
}

func TestFailure_UnknownAction(t *testing.T) {
	env := Failure(&UnknownActionError{Name: "explode"}, "explode", nil)

	assert.Equal(t, ErrorTypeUnknownAction, env.ErrorType)
	assert.Contains(t, env.Message, "Unknown action: 'explode'")
	// The supported-actions list names wait_for_selector, so the selector
	// rule fires.
	assert.True(t, strings.HasPrefix(env.Suggestion, "Selector '' not found."), "got %q", env.Suggestion)
}

func TestFailure_ConstraintViolation(t *testing.T) {
	violation := &config.ConstraintViolation{
		Type:    config.ViolationURLPattern,
		Message: "URL 'https://blocked.example.com' is blocked by the configured URL policy",
	}

	env := Failure(violation, "navigate", map[string]interface{}{"url": "https://blocked.example.com"})

	assert.Equal(t, ErrorTypeConstraintViolation, env.ErrorType)
	assert.Equal(t, violation.Message, env.Message)
	assert.Equal(t, policySuggestion, env.Suggestion)
}

func TestFailure_Timeout(t *testing.T) {
	err := errors.New("Timeout 30000ms exceeded")

	env := Failure(err, "click", map[string]interface{}{"selector": "#btn"})
	assert.Equal(t, ErrorTypeTimeout, env.ErrorType)
	assert.Equal(t, "Timeout waiting for: #btn. Try increasing timeout or check selector.", env.Message)
	assert.Equal(t, timeoutSuggestion, env.Suggestion)

	// Without a selector parameter the message names "unknown".
	env = Failure(err, "navigate", map[string]interface{}{"url": "https://example.com"})
	assert.Equal(t, "Timeout waiting for: unknown. Try increasing timeout or check selector.", env.Message)
}

func TestFailure_TimeoutMessageNotTruncated(t *testing.T) {
	longSelector := strings.Repeat("s", 600)
	err := errors.New("Timeout 30000ms exceeded")

	env := Failure(err, "click", map[string]interface{}{"selector": longSelector})
	assert.Contains(t, env.Message, longSelector)
}

func TestFailure_Serialization(t *testing.T) {
	inner := errors.New("unsupported value")
	serErr := &SerializationError{Err: inner}
	require.True(t, errors.Is(serErr, inner))

	env := Failure(serErr, "evaluate_js", nil)
	assert.Equal(t, ErrorTypeSerialization, env.ErrorType)
	assert.Equal(t, "result is not JSON serializable: unsupported value", env.Message)
}

func TestFailure_ExecutionDefault(t *testing.T) {
	env := Failure(errors.New("page crashed"), "click", map[string]interface{}{"selector": "#btn"})

	assert.Equal(t, ErrorTypeExecution, env.ErrorType)
	assert.Equal(t, "page crashed", env.Message)
	assert.Equal(t, "Check action parameters and ensure the page state is correct before this action.", env.Suggestion)
}

func TestFailure_TruncatesMessageButClassifiesFullText(t *testing.T) {
	message := strings.Repeat("x", 550) + " element was detached"
	env := Failure(errors.New(message), "click", nil)

	assert.Equal(t, 500, len([]rune(env.Message)))
	assert.Equal(t, strings.Repeat("x", 500), env.Message)
	// The keyword sits past the truncation point, so the suggestion
	// proves the classifier saw the full message.
	assert.Equal(t, "Element was removed from page. The page might have reloaded or content changed dynamically.", env.Suggestion)
}

func TestFailure_WrappedErrorsKeepTheirType(t *testing.T) {
	wrapped := fmt.Errorf("executing click: %w", requiredParam("selector", "click"))
	env := Failure(wrapped, "click", nil)
	assert.Equal(t, ErrorTypeInvalidParameter, env.ErrorType)
}
