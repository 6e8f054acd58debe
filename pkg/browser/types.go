package browser

import (
	"time"

	"github.com/playwright-community/playwright-go"
)

// Session represents the single browser session a workflow run drives.
type Session struct {
	// Browser is the Playwright browser instance
	Browser playwright.Browser

	// Context is the browser context (isolated session)
	Context playwright.BrowserContext

	// Page is the active page all operations target
	Page playwright.Page

	// Headless indicates if the browser is running in headless mode
	Headless bool

	// StartedAt is the timestamp when the session was created
	StartedAt time.Time
}

// LaunchOptions configures a new browser session.
type LaunchOptions struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// Args are extra Chromium command line arguments
	Args []string

	// Viewport sets the initial viewport size (defaults to 1280x720)
	Viewport *Viewport

	// UserAgent overrides the context user agent (defaults to a desktop Chrome UA)
	UserAgent string

	// Timeout sets the page default timeout for operations (in milliseconds)
	Timeout float64
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// NavigateOptions configures page navigation behavior.
type NavigateOptions struct {
	// WaitUntil specifies when to consider navigation successful
	// Valid values: "load", "domcontentloaded", "networkidle", "commit"
	WaitUntil string

	// Timeout in milliseconds (0 means Playwright default)
	Timeout float64
}

// ClickOptions configures element clicking behavior.
type ClickOptions struct {
	// Button specifies which mouse button to use (left, right, middle)
	Button string

	// ClickCount is the number of times to click (1 for single, 2 for double)
	ClickCount int

	// Timeout in milliseconds
	Timeout float64
}

// FillOptions configures form input filling.
type FillOptions struct {
	// Timeout in milliseconds
	Timeout float64
}

// TypeOptions configures keystroke-by-keystroke typing.
type TypeOptions struct {
	// Delay between keystrokes in milliseconds
	Delay float64

	// Timeout in milliseconds
	Timeout float64
}

// HoverOptions configures pointer hovering.
type HoverOptions struct {
	// Timeout in milliseconds
	Timeout float64
}

// PressOptions configures a key press targeted at an element.
type PressOptions struct {
	// Timeout in milliseconds
	Timeout float64
}

// FocusOptions configures element focusing.
type FocusOptions struct {
	// Timeout in milliseconds
	Timeout float64
}

// CheckOptions configures checkbox checking and unchecking.
type CheckOptions struct {
	// Timeout in milliseconds
	Timeout float64
}

// SelectOptions configures dropdown option selection.
type SelectOptions struct {
	// Timeout in milliseconds
	Timeout float64
}

// WaitForSelectorOptions configures waiting on a selector.
type WaitForSelectorOptions struct {
	// State to wait for: "attached", "detached", "visible", "hidden"
	State string

	// Timeout in milliseconds
	Timeout float64
}

// ScreenshotOptions configures page screenshots. Screenshots are always
// JPEG at ScreenshotQuality to keep the base64 payload small.
type ScreenshotOptions struct {
	// FullPage captures the whole scrollable page instead of the viewport
	FullPage bool
}

// Default values for session creation
const (
	DefaultTimeout        = 30000.0 // 30 seconds in milliseconds
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	// DefaultUserAgent presents as desktop Chrome so pages serve their
	// full desktop markup.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// DefaultLaunchArgs returns the Chromium arguments needed for containerized
// execution, where the sandbox and /dev/shm are unavailable.
func DefaultLaunchArgs() []string {
	return []string{"--no-sandbox", "--disable-dev-shm-usage"}
}
