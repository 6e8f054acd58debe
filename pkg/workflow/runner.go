package workflow

import (
	"fmt"
	"time"

	"github.com/entrhq/pageflow/pkg/browser"
	"github.com/entrhq/pageflow/pkg/config"
	"github.com/entrhq/pageflow/pkg/logging"
)

// Runner executes workflows: one browser session, one page, steps in
// order. Step failures are recorded in the result document; only setup
// failures (driver, launch) surface as errors from Run.
type Runner struct {
	cfg      *config.Config
	policy   *config.URLPolicy
	recorder *browser.Recorder
	progress *Progress
	log      *logging.Logger

	// session is live only while Run is executing
	session *browser.Session

	stats RunStats
}

// RunStats describes one completed run, for the summary artifact and for
// callers that report on the run after the fact.
type RunStats struct {
	RunID         string
	StartTime     time.Time
	EndTime       time.Time
	StepsPlanned  int
	StepsExecuted int
	StepsFailed   int
	Stopped       bool
	FinalPage     *browser.PageSummary
}

// NewRunner builds a runner from the configuration. The URL policy is
// compiled here so pattern errors surface before any browser starts. A
// nil config uses the defaults.
func NewRunner(cfg *config.Config) (*Runner, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	policy, err := config.NewURLPolicy(cfg.Policy.AllowedURLPatterns, cfg.Policy.DeniedURLPatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to compile URL policy: %w", err)
	}

	log, _ := logging.NewLogger("runner") // fallback logger on error is fine

	return &Runner{
		cfg:      cfg,
		policy:   policy,
		recorder: browser.NewRecorder(),
		progress: NewProgress(ParseLevel(cfg.Logging.Verbosity)),
		log:      log,
	}, nil
}

// Stats returns the statistics of the last completed run.
func (r *Runner) Stats() RunStats {
	return r.stats
}

// Run launches the browser, executes every step in order, and returns the
// accumulated result document. The browser session is released on every
// exit path, including early termination and setup failures after launch.
func (r *Runner) Run(steps []Step) (*Result, error) {
	r.stats = RunStats{
		RunID:        logging.GetRunID(),
		StartTime:    time.Now(),
		StepsPlanned: len(steps),
	}

	if r.cfg.Browser.Install {
		r.progress.Infof("Installing browser runtime...")
		if err := browser.Install(); err != nil {
			return nil, err
		}
	}

	launcher := browser.NewLauncher()
	if err := launcher.Start(); err != nil {
		return nil, err
	}
	defer func() {
		_ = launcher.Stop() // Ignore errors, driver teardown is best effort
	}()

	session, err := launcher.Launch(browser.LaunchOptions{
		Headless: r.cfg.Browser.Headless,
		Args:     r.cfg.Browser.Args,
		Viewport: &browser.Viewport{
			Width:  r.cfg.Browser.ViewportWidth,
			Height: r.cfg.Browser.ViewportHeight,
		},
		UserAgent: r.cfg.Browser.UserAgent,
		Timeout:   r.cfg.Browser.Timeout,
	})
	if err != nil {
		return nil, err
	}

	r.session = session
	defer func() {
		r.finishRun()
		session.Close()
		r.session = nil
	}()

	r.recorder.Attach(session.Page)
	r.log.Infof("run %s started: %d steps", r.stats.RunID, len(steps))

	result := NewResult()
	for i, step := range steps {
		r.progress.Step(i, len(steps), step.Action)
		r.progress.Verbosef("params: %v", step.Params)
		stepStart := time.Now()

		env := r.Execute(step.Action, step.Params)
		result.Add(step.Key(i), env)
		r.stats.StepsExecuted++

		if env.OK() {
			r.progress.StepSuccess(step.Action, time.Since(stepStart))
			r.log.Debugf("step %d (%s) succeeded in %s", i, step.Action, time.Since(stepStart))
			continue
		}

		r.stats.StepsFailed++
		r.progress.StepFailure(step.Action, env.ErrorType, env.Message)
		r.log.Warnf("step %d (%s) failed: %s: %s", i, step.Action, env.ErrorType, env.Message)

		if step.StopOnError() {
			r.stats.Stopped = true
			r.progress.Warningf("stop_on_error set, skipping remaining %d steps", len(steps)-i-1)
			break
		}
	}

	r.progress.Summary(r.stats.StepsExecuted, r.stats.StepsFailed, r.stats.Stopped)
	return result, nil
}

// finishRun records end-of-run statistics while the session is still
// usable. Final-page metadata is collected only when the summary artifact
// is enabled.
func (r *Runner) finishRun() {
	r.stats.EndTime = time.Now()

	if !r.cfg.Artifact.Enabled || r.session == nil {
		return
	}

	content, err := r.session.Content()
	if err != nil {
		r.log.Warnf("failed to read final page for summary: %v", err)
		return
	}

	summary := browser.SummarizePage(content, r.session.URL())
	r.stats.FinalPage = &summary
}
