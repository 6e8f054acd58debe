package workflow

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelope_MarshalSuccessKeepsFieldOrder(t *testing.T) {
	env := Success(
		F("url", "https://example.com"),
		F("title", "Example"),
		F("count", 3),
	)

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"success","url":"https://example.com","title":"Example","count":3}`, string(data))
}

func TestEnvelope_MarshalError(t *testing.T) {
	env := Envelope{
		Status:     StatusError,
		ErrorType:  ErrorTypeTimeout,
		Message:    "Timeout waiting for: #btn. Try increasing timeout or check selector.",
		Suggestion: "Use wait_for_selector before this action, or verify the selector exists on the page.",
	}

	data, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Equal(t, `{"status":"error","error_type":"TimeoutError","message":"Timeout waiting for: #btn. Try increasing timeout or check selector.","suggestion":"Use wait_for_selector before this action, or verify the selector exists on the page."}`, string(data))
}

func TestEnvelope_OK(t *testing.T) {
	assert.True(t, Success().OK())
	assert.False(t, Envelope{Status: StatusError}.OK())
}

func TestEnvelope_FieldLookup(t *testing.T) {
	env := Success(F("found", true), F("selector", ".ready"))

	value, ok := env.Field("selector")
	require.True(t, ok)
	assert.Equal(t, ".ready", value)

	_, ok = env.Field("missing")
	assert.False(t, ok)
}

func TestResult_MarshalKeepsExecutionOrder(t *testing.T) {
	result := NewResult()
	var keys []string
	for i := 0; i < 12; i++ {
		key := fmt.Sprintf("step_%d_wait", i)
		keys = append(keys, key)
		result.Add(key, Success(F("index", i)))
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	// Twelve keys force a difference from lexicographic order: sorted
	// output would place step_10 and step_11 before step_2.
	out := string(data)
	prev := -1
	for _, key := range keys {
		pos := strings.Index(out, `"`+key+`"`)
		require.NotEqual(t, -1, pos, "key %s missing from output", key)
		assert.Greater(t, pos, prev, "key %s out of order", key)
		prev = pos
	}

	assert.Equal(t, keys, result.Keys())
}

func TestResult_AddAndGet(t *testing.T) {
	result := NewResult()
	result.Add("step_0_navigate", Success(F("url", "https://example.com")))

	env, ok := result.Get("step_0_navigate")
	require.True(t, ok)
	assert.True(t, env.OK())

	_, ok = result.Get("step_1_click")
	assert.False(t, ok)
	assert.Equal(t, 1, result.Len())
}

func TestResult_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(NewResult())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
