package browser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// Navigate loads the given URL and waits for the configured load state.
func (s *Session) Navigate(url string, opts NavigateOptions) error {
	pwOpts := playwright.PageGotoOptions{}

	if opts.WaitUntil != "" {
		waitUntil := playwright.WaitUntilState(opts.WaitUntil)
		pwOpts.WaitUntil = &waitUntil
	}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.Goto(url, pwOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// Fill sets an input's value in one shot, replacing any existing content.
func (s *Session) Fill(selector, value string, opts FillOptions) error {
	pwOpts := playwright.PageFillOptions{}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Fill(selector, value, pwOpts); err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

// Type enters text one keystroke at a time with a delay between keys, for
// pages whose input handlers only react to key events.
func (s *Session) Type(selector, text string, opts TypeOptions) error {
	pwOpts := playwright.PageTypeOptions{}
	if opts.Delay > 0 {
		pwOpts.Delay = &opts.Delay
	}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	//nolint:staticcheck // Type is deprecated upstream but is the only API with per-keystroke delay.
	if err := s.Page.Type(selector, text, pwOpts); err != nil {
		return fmt.Errorf("type failed: %w", err)
	}
	return nil
}

// Click clicks the element matching selector.
func (s *Session) Click(selector string, opts ClickOptions) error {
	pwOpts := playwright.PageClickOptions{}

	if opts.Button != "" {
		button := playwright.MouseButton(opts.Button)
		pwOpts.Button = &button
	}
	if opts.ClickCount > 0 {
		pwOpts.ClickCount = &opts.ClickCount
	}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Click(selector, pwOpts); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

// Hover moves the mouse over the element matching selector.
func (s *Session) Hover(selector string, opts HoverOptions) error {
	pwOpts := playwright.PageHoverOptions{}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Hover(selector, pwOpts); err != nil {
		return fmt.Errorf("hover failed: %w", err)
	}
	return nil
}

// Press sends a key chord to the element matching selector.
func (s *Session) Press(selector, key string, opts PressOptions) error {
	pwOpts := playwright.PagePressOptions{}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Press(selector, key, pwOpts); err != nil {
		return fmt.Errorf("press failed: %w", err)
	}
	return nil
}

// PressKey sends a key chord to whatever currently has focus.
func (s *Session) PressKey(key string) error {
	if err := s.Page.Keyboard().Press(key); err != nil {
		return fmt.Errorf("press failed: %w", err)
	}
	return nil
}

// Focus gives keyboard focus to the element matching selector.
func (s *Session) Focus(selector string, opts FocusOptions) error {
	pwOpts := playwright.PageFocusOptions{}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Focus(selector, pwOpts); err != nil {
		return fmt.Errorf("focus failed: %w", err)
	}
	return nil
}

// Check ensures a checkbox or radio element is checked.
func (s *Session) Check(selector string, opts CheckOptions) error {
	pwOpts := playwright.PageCheckOptions{}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Check(selector, pwOpts); err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	return nil
}

// Uncheck ensures a checkbox element is unchecked.
func (s *Session) Uncheck(selector string, opts CheckOptions) error {
	pwOpts := playwright.PageUncheckOptions{}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if err := s.Page.Uncheck(selector, pwOpts); err != nil {
		return fmt.Errorf("uncheck failed: %w", err)
	}
	return nil
}

// SelectOption selects a dropdown option by value and returns the values
// actually selected.
func (s *Session) SelectOption(selector, value string, opts SelectOptions) ([]string, error) {
	pwOpts := playwright.PageSelectOptionOptions{}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	values := playwright.SelectOptionValues{
		Values: playwright.StringSlice(value),
	}

	selected, err := s.Page.SelectOption(selector, values, pwOpts)
	if err != nil {
		return nil, fmt.Errorf("select failed: %w", err)
	}
	return selected, nil
}

// WaitForSelector blocks until the element matching selector reaches the
// requested state.
func (s *Session) WaitForSelector(selector string, opts WaitForSelectorOptions) error {
	pwOpts := playwright.PageWaitForSelectorOptions{}

	if opts.State != "" {
		state := playwright.WaitForSelectorState(opts.State)
		pwOpts.State = &state
	}
	if opts.Timeout > 0 {
		pwOpts.Timeout = &opts.Timeout
	}

	if _, err := s.Page.WaitForSelector(selector, pwOpts); err != nil {
		return fmt.Errorf("wait for selector failed: %w", err)
	}
	return nil
}

// WaitForTimeout pauses for the given number of milliseconds.
func (s *Session) WaitForTimeout(ms float64) {
	s.Page.WaitForTimeout(ms)
}

// Evaluate runs a JavaScript expression in the page and returns its value.
func (s *Session) Evaluate(expression string) (interface{}, error) {
	result, err := s.Page.Evaluate(expression)
	if err != nil {
		return nil, fmt.Errorf("evaluate failed: %w", err)
	}
	return result, nil
}

// Screenshot captures the page as JPEG bytes at the fixed capture quality.
func (s *Session) Screenshot(opts ScreenshotOptions) ([]byte, error) {
	quality := ScreenshotQuality
	pwOpts := playwright.PageScreenshotOptions{
		FullPage: &opts.FullPage,
		Type:     playwright.ScreenshotTypeJpeg,
		Quality:  &quality,
	}

	data, err := s.Page.Screenshot(pwOpts)
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return data, nil
}

// Content returns the page's current HTML markup.
func (s *Session) Content() (string, error) {
	content, err := s.Page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to get content: %w", err)
	}
	return content, nil
}

// Title returns the page's current title.
func (s *Session) Title() (string, error) {
	title, err := s.Page.Title()
	if err != nil {
		return "", fmt.Errorf("failed to get title: %w", err)
	}
	return title, nil
}

// URL returns the page's current URL.
func (s *Session) URL() string {
	return s.Page.URL()
}

// IsTimeout reports whether err came from a Playwright operation timing
// out. The driver does not wrap every timeout in ErrTimeout, so the check
// falls back to message inspection.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return true
	}
	return strings.Contains(err.Error(), "Timeout")
}
