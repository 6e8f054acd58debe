package workflow

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/entrhq/pageflow/pkg/browser"
	"github.com/entrhq/pageflow/pkg/tokenizer"
)

// Run-level status values for the summary artifact.
const (
	RunStatusSuccess = "success"
	RunStatusPartial = "partial_success"
	RunStatusFailed  = "failed"
)

// Summary is the machine-readable run report written alongside the result
// document when artifact output is enabled.
type Summary struct {
	RunID         string               `json:"run_id"`
	Status        string               `json:"status"`
	StartTime     time.Time            `json:"start_time"`
	EndTime       time.Time            `json:"end_time"`
	DurationMS    int64                `json:"duration_ms"`
	StepsPlanned  int                  `json:"steps_planned"`
	StepsExecuted int                  `json:"steps_executed"`
	StepsFailed   int                  `json:"steps_failed"`
	StoppedEarly  bool                 `json:"stopped_early"`
	OutputBytes   int                  `json:"output_bytes"`
	OutputTokens  int                  `json:"output_tokens"`
	FinalPage     *browser.PageSummary `json:"final_page,omitempty"`
}

// BuildSummary derives the run summary from recorded statistics and the
// marshaled result document.
func BuildSummary(stats RunStats, output []byte) Summary {
	tok, _ := tokenizer.New() // nil tokenizer falls back to the estimate

	return Summary{
		RunID:         stats.RunID,
		Status:        runStatus(stats),
		StartTime:     stats.StartTime,
		EndTime:       stats.EndTime,
		DurationMS:    stats.EndTime.Sub(stats.StartTime).Milliseconds(),
		StepsPlanned:  stats.StepsPlanned,
		StepsExecuted: stats.StepsExecuted,
		StepsFailed:   stats.StepsFailed,
		StoppedEarly:  stats.Stopped,
		OutputBytes:   len(output),
		OutputTokens:  tok.CountTokens(string(output)),
		FinalPage:     stats.FinalPage,
	}
}

// runStatus maps the step counters to an overall run status. A run that
// stopped early is failed; a run that finished with failures is partial.
func runStatus(stats RunStats) string {
	switch {
	case stats.Stopped:
		return RunStatusFailed
	case stats.StepsFailed > 0:
		return RunStatusPartial
	default:
		return RunStatusSuccess
	}
}

// WriteSummary writes the summary for the last completed run to path. The
// output argument is the marshaled result document, used for the size and
// token counters.
func (r *Runner) WriteSummary(path string, output []byte) error {
	summary := BuildSummary(r.stats, output)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create artifact directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run summary: %w", err)
	}

	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("failed to write run summary: %w", writeErr)
	}

	return nil
}
