package browser

import (
	"fmt"
	"io"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/pageflow/pkg/logging"
)

// Launcher owns the Playwright driver process and creates browser sessions
// from it. A workflow run starts the launcher once, launches one session,
// and stops the launcher when the run ends.
type Launcher struct {
	playwright *playwright.Playwright
	log        *logging.Logger
	started    bool
}

// NewLauncher creates a launcher. Start must be called before Launch.
func NewLauncher() *Launcher {
	log, _ := logging.NewLogger("browser") // fallback logger on error is fine
	return &Launcher{log: log}
}

// Install downloads the Playwright driver and the Chromium browser. It is
// invoked from the CLI's -install flag and from configs that opt into
// installing at run start; everything else assumes an installed driver.
func Install() error {
	opts := &playwright.RunOptions{
		Browsers: []string{"chromium"},
	}
	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}
	return nil
}

// Start boots the Playwright driver. Driver output is discarded so it can
// never contaminate the JSON result document on stdout.
func (l *Launcher) Start() error {
	if l.started {
		return nil
	}

	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright (run with -install if the driver is missing): %w", err)
	}

	l.playwright = pw
	l.started = true
	l.log.Debugf("playwright driver started")
	return nil
}

// Launch creates a headless-capable browser session: Chromium with the
// given arguments, an isolated context with viewport and user agent, and
// one page with the default operation timeout applied.
func (l *Launcher) Launch(opts LaunchOptions) (*Session, error) {
	if !l.started {
		return nil, fmt.Errorf("launcher not started")
	}

	// Set defaults
	if opts.Viewport == nil {
		opts.Viewport = &Viewport{
			Width:  DefaultViewportWidth,
			Height: DefaultViewportHeight,
		}
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}

	// Launch browser
	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
		Args:     opts.Args,
	}
	browser, err := l.playwright.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	// Create context
	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
		UserAgent: &opts.UserAgent,
	}
	context, err := browser.NewContext(contextOpts)
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	// Create page
	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	// Set default timeout
	page.SetDefaultTimeout(opts.Timeout)

	l.log.Debugf("session launched (headless=%v viewport=%dx%d)",
		opts.Headless, opts.Viewport.Width, opts.Viewport.Height)

	return &Session{
		Browser:   browser,
		Context:   context,
		Page:      page,
		Headless:  opts.Headless,
		StartedAt: time.Now(),
	}, nil
}

// Stop shuts down the Playwright driver. Sessions must be closed first.
func (l *Launcher) Stop() error {
	if !l.started || l.playwright == nil {
		return nil
	}

	if err := l.playwright.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	l.started = false
	l.log.Debugf("playwright driver stopped")
	return nil
}

// Close releases the session's page, context, and browser. Close errors are
// ignored so teardown always reaches every resource.
func (s *Session) Close() {
	_ = s.Page.Close()    // Ignore errors, continue cleanup
	_ = s.Context.Close() // Ignore errors, continue cleanup
	_ = s.Browser.Close() // Ignore errors, continue cleanup
}
