package workflow

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestProgress(level LogLevel) (*Progress, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	p := NewProgress(level)
	p.writer = buf
	return p, buf
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  LogLevel
	}{
		{"quiet", LogLevelQuiet},
		{"normal", LogLevelNormal},
		{"verbose", LogLevelVerbose},
		{"debug", LogLevelDebug},
		{"", LogLevelNormal},
		{"garbage", LogLevelNormal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.input), "input %q", tt.input)
	}
}

func TestProgress_QuietShowsOnlyFailures(t *testing.T) {
	p, buf := newTestProgress(LogLevelQuiet)

	p.Header("Run")
	p.Step(0, 3, "navigate")
	p.StepSuccess("navigate", 10*time.Millisecond)
	p.Infof("info")
	p.Verbosef("verbose")
	p.Debugf("debug")
	p.Summary(3, 0, false)
	assert.Empty(t, buf.String())

	p.StepFailure("click", ErrorTypeTimeout, "Timeout waiting for: #btn. Try increasing timeout or check selector.")
	assert.Contains(t, buf.String(), "click")
	assert.Contains(t, buf.String(), "TimeoutError")

	buf.Reset()
	p.Warningf("something odd")
	assert.Contains(t, buf.String(), "Warning: something odd")

	buf.Reset()
	p.Errorf("it broke")
	assert.Contains(t, buf.String(), "Error: it broke")
}

func TestProgress_NormalShowsSteps(t *testing.T) {
	p, buf := newTestProgress(LogLevelNormal)

	p.Step(0, 3, "navigate")
	assert.Contains(t, buf.String(), "[1/3] navigate")

	buf.Reset()
	p.StepSuccess("navigate", 12*time.Millisecond)
	assert.Contains(t, buf.String(), "✓ navigate")

	buf.Reset()
	p.Verbosef("params: %v", map[string]interface{}{"url": "x"})
	p.Debugf("internal state")
	assert.Empty(t, buf.String())
}

func TestProgress_VerboseAndDebug(t *testing.T) {
	p, buf := newTestProgress(LogLevelVerbose)
	p.Verbosef("shown")
	assert.Contains(t, buf.String(), "shown")

	buf.Reset()
	p.Debugf("hidden")
	assert.Empty(t, buf.String())

	p, buf = newTestProgress(LogLevelDebug)
	p.Debugf("now shown")
	assert.Contains(t, buf.String(), "[DEBUG] now shown")
}

func TestProgress_Summary(t *testing.T) {
	p, buf := newTestProgress(LogLevelNormal)
	p.Summary(3, 0, false)
	assert.Contains(t, buf.String(), "3 steps completed")

	buf.Reset()
	p.Summary(3, 2, false)
	assert.Contains(t, buf.String(), "2 of 3 steps failed")

	buf.Reset()
	p.Summary(2, 1, true)
	assert.Contains(t, buf.String(), "stopped early")
}
