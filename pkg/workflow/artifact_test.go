package workflow

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/pageflow/pkg/browser"
)

func TestRunStatus(t *testing.T) {
	tests := []struct {
		name  string
		stats RunStats
		want  string
	}{
		{"all passed", RunStats{StepsExecuted: 3}, RunStatusSuccess},
		{"some failed", RunStats{StepsExecuted: 3, StepsFailed: 1}, RunStatusPartial},
		{"stopped early", RunStats{StepsExecuted: 2, StepsFailed: 1, Stopped: true}, RunStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, runStatus(tt.stats))
		})
	}
}

func TestBuildSummary(t *testing.T) {
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	stats := RunStats{
		RunID:         "20250301-120000-abcd1234",
		StartTime:     start,
		EndTime:       start.Add(1500 * time.Millisecond),
		StepsPlanned:  4,
		StepsExecuted: 4,
		StepsFailed:   1,
		FinalPage: &browser.PageSummary{
			URL:   "https://example.com",
			Title: "Example",
		},
	}
	output := []byte(`{"step_0_navigate":{"status":"success"}}`)

	summary := BuildSummary(stats, output)

	assert.Equal(t, stats.RunID, summary.RunID)
	assert.Equal(t, RunStatusPartial, summary.Status)
	assert.Equal(t, int64(1500), summary.DurationMS)
	assert.Equal(t, 4, summary.StepsPlanned)
	assert.Equal(t, 1, summary.StepsFailed)
	assert.Equal(t, len(output), summary.OutputBytes)
	assert.Greater(t, summary.OutputTokens, 0)
	require.NotNil(t, summary.FinalPage)
	assert.Equal(t, "Example", summary.FinalPage.Title)
}

func TestWriteSummary(t *testing.T) {
	r, err := NewRunner(nil)
	require.NoError(t, err)

	r.stats = RunStats{
		RunID:         "20250301-120000-abcd1234",
		StartTime:     time.Now().Add(-2 * time.Second),
		EndTime:       time.Now(),
		StepsPlanned:  2,
		StepsExecuted: 2,
	}

	// The parent directory does not exist yet.
	path := filepath.Join(t.TempDir(), "artifacts", "summary.json")
	output := []byte(`{"step_0_wait":{"status":"success"},"step_1_wait":{"status":"success"}}`)

	require.NoError(t, r.WriteSummary(path, output))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var summary Summary
	require.NoError(t, json.Unmarshal(data, &summary))

	assert.Equal(t, "20250301-120000-abcd1234", summary.RunID)
	assert.Equal(t, RunStatusSuccess, summary.Status)
	assert.Equal(t, 2, summary.StepsExecuted)
	assert.Equal(t, len(output), summary.OutputBytes)
	assert.Nil(t, summary.FinalPage)
}
