package workflow

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/entrhq/pageflow/pkg/browser"
)

// Execute runs a single action against the session and returns its
// envelope. Failures never propagate: every error, from validation to
// browser faults, is folded into an error envelope here.
func (r *Runner) Execute(action string, params map[string]interface{}) Envelope {
	fields, err := r.dispatch(action, params)
	if err != nil {
		return Failure(err, action, params)
	}
	return Success(fields...)
}

// dispatch resolves the action name and routes to its handler. Parameter
// decoding happens inside each handler before any browser call, so a
// validation failure never touches the page.
func (r *Runner) dispatch(action string, params map[string]interface{}) ([]Field, error) {
	kind, err := ParseAction(action)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ActionNavigate:
		return r.navigate(params)
	case ActionFill:
		return nil, r.fill(params)
	case ActionType:
		return nil, r.typeText(params)
	case ActionClick:
		return nil, r.click(params)
	case ActionHover:
		return nil, r.hover(params)
	case ActionScroll:
		return r.scroll(params)
	case ActionWait:
		return nil, r.wait(params)
	case ActionWaitForSelector:
		return r.waitForSelector(params)
	case ActionScreenshot:
		return r.screenshot(params)
	case ActionCaptureSnapshot:
		return r.captureSnapshot(params)
	case ActionCaptureRequests:
		return r.captureRequests(params)
	case ActionEvaluateJS:
		return r.evaluateJS(params)
	case ActionSelect:
		return nil, r.selectOption(params)
	case ActionPress:
		return nil, r.press(params)
	case ActionFocus:
		return nil, r.focus(params)
	case ActionClear:
		return nil, r.clear(params)
	case ActionCheck:
		return nil, r.check(params)
	case ActionUncheck:
		return nil, r.uncheck(params)
	default:
		return nil, &UnknownActionError{Name: action}
	}
}

func (r *Runner) navigate(params map[string]interface{}) ([]Field, error) {
	p, err := decodeNavigateParams(params)
	if err != nil {
		return nil, err
	}

	if err := r.policy.Check(p.URL); err != nil {
		return nil, err
	}

	err = r.session.Navigate(p.URL, browser.NavigateOptions{
		WaitUntil: p.WaitUntil,
		Timeout:   p.Timeout,
	})
	if err != nil {
		return nil, err
	}

	title, err := r.session.Title()
	if err != nil {
		return nil, err
	}

	return []Field{
		F("url", r.session.URL()),
		F("title", title),
	}, nil
}

func (r *Runner) fill(params map[string]interface{}) error {
	p, err := decodeFillParams(params)
	if err != nil {
		return err
	}

	return r.session.Fill(p.Selector, p.Value, browser.FillOptions{Timeout: p.Timeout})
}

func (r *Runner) typeText(params map[string]interface{}) error {
	p, err := decodeTypeParams(params)
	if err != nil {
		return err
	}

	return r.session.Type(p.Selector, p.Text, browser.TypeOptions{
		Delay:   p.Delay,
		Timeout: p.Timeout,
	})
}

func (r *Runner) click(params map[string]interface{}) error {
	p, err := decodeClickParams(params)
	if err != nil {
		return err
	}

	return r.session.Click(p.Selector, browser.ClickOptions{
		Button:     p.Button,
		ClickCount: p.ClickCount,
		Timeout:    p.Timeout,
	})
}

func (r *Runner) hover(params map[string]interface{}) error {
	p, err := decodeSelectorParams(params, "hover")
	if err != nil {
		return err
	}

	return r.session.Hover(p.Selector, browser.HoverOptions{Timeout: p.Timeout})
}

func (r *Runner) scroll(params map[string]interface{}) ([]Field, error) {
	p := decodeScrollParams(params)

	var script string
	switch p.Direction {
	case "down":
		script = fmt.Sprintf("window.scrollBy(0, %s)", formatAmount(p.Amount))
	case "up":
		script = fmt.Sprintf("window.scrollBy(0, -%s)", formatAmount(p.Amount))
	case "bottom":
		script = "window.scrollTo(0, document.body.scrollHeight)"
	case "top":
		script = "window.scrollTo(0, 0)"
	}

	// Unrecognized directions scroll nowhere but still report the
	// current position.
	if script != "" {
		if _, err := r.session.Evaluate(script); err != nil {
			return nil, err
		}
	}

	position, err := r.session.Evaluate("window.scrollY")
	if err != nil {
		return nil, err
	}

	return []Field{F("scroll_position", position)}, nil
}

// formatAmount renders a scroll amount for interpolation into the scroll
// script, without an exponent and without a trailing ".0" for whole
// numbers.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func (r *Runner) wait(params map[string]interface{}) error {
	p := decodeWaitParams(params)
	r.session.WaitForTimeout(p.Timeout)
	return nil
}

func (r *Runner) waitForSelector(params map[string]interface{}) ([]Field, error) {
	p, err := decodeWaitForSelectorParams(params)
	if err != nil {
		return nil, err
	}

	err = r.session.WaitForSelector(p.Selector, browser.WaitForSelectorOptions{
		State:   p.State,
		Timeout: p.Timeout,
	})
	if err != nil {
		return nil, err
	}

	return []Field{
		F("found", true),
		F("selector", p.Selector),
	}, nil
}

func (r *Runner) screenshot(params map[string]interface{}) ([]Field, error) {
	p := decodeScreenshotParams(params)

	data, err := r.session.Screenshot(browser.ScreenshotOptions{FullPage: p.FullPage})
	if err != nil {
		return nil, err
	}

	sizeKB := math.Round(float64(len(data))/1024*10) / 10

	return []Field{
		F("screenshot_base64", base64.StdEncoding.EncodeToString(data)),
		F("format", "jpeg"),
		F("size_kb", sizeKB),
	}, nil
}

func (r *Runner) captureSnapshot(params map[string]interface{}) ([]Field, error) {
	p := decodeSnapshotParams(params)

	content, err := r.session.Content()
	if err != nil {
		return nil, err
	}

	html := content
	if p.Clean {
		html = browser.CleanSnapshot(html)
	}
	html, truncated := browser.Truncate(html, p.MaxLength)

	// original_length reports a second, independent read of the raw
	// document, not the cleaned text.
	full, err := r.session.Content()
	if err != nil {
		return nil, err
	}

	title, err := r.session.Title()
	if err != nil {
		return nil, err
	}

	return []Field{
		F("html", html),
		F("truncated", truncated),
		F("original_length", browser.Length(full)),
		F("title", title),
		F("url", r.session.URL()),
	}, nil
}

func (r *Runner) captureRequests(params map[string]interface{}) ([]Field, error) {
	p := decodeCaptureRequestsParams(params)

	if p.Stop {
		log := r.recorder.Stop(p.Filter)
		return []Field{
			F("requests", log.Requests),
			F("count", log.Count),
			F("truncated", log.Truncated),
		}, nil
	}

	r.recorder.Start()
	return []Field{F("capturing", true)}, nil
}

func (r *Runner) evaluateJS(params map[string]interface{}) ([]Field, error) {
	p, err := decodeEvaluateParams(params)
	if err != nil {
		return nil, err
	}

	value, err := r.session.Evaluate(p.Script)
	if err != nil {
		return nil, err
	}

	serialized := "null"
	if value != nil {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, &SerializationError{Err: err}
		}
		serialized = string(data)
	}

	result, truncated := browser.Truncate(serialized, browser.MaxJSResultLength)

	return []Field{
		F("result", result),
		F("truncated", truncated),
	}, nil
}

func (r *Runner) selectOption(params map[string]interface{}) error {
	p, err := decodeSelectParams(params)
	if err != nil {
		return err
	}

	_, err = r.session.SelectOption(p.Selector, p.Value, browser.SelectOptions{Timeout: p.Timeout})
	return err
}

func (r *Runner) press(params map[string]interface{}) error {
	p, err := decodePressParams(params)
	if err != nil {
		return err
	}

	if p.Selector != "" {
		return r.session.Press(p.Selector, p.Key, browser.PressOptions{Timeout: p.Timeout})
	}
	return r.session.PressKey(p.Key)
}

func (r *Runner) focus(params map[string]interface{}) error {
	p, err := decodeSelectorParams(params, "focus")
	if err != nil {
		return err
	}

	return r.session.Focus(p.Selector, browser.FocusOptions{Timeout: p.Timeout})
}

// clear empties an input by filling it with the empty string.
func (r *Runner) clear(params map[string]interface{}) error {
	p, err := decodeSelectorParams(params, "clear")
	if err != nil {
		return err
	}

	return r.session.Fill(p.Selector, "", browser.FillOptions{Timeout: p.Timeout})
}

func (r *Runner) check(params map[string]interface{}) error {
	p, err := decodeSelectorParams(params, "check")
	if err != nil {
		return err
	}

	return r.session.Check(p.Selector, browser.CheckOptions{Timeout: p.Timeout})
}

func (r *Runner) uncheck(params map[string]interface{}) error {
	p, err := decodeSelectorParams(params, "uncheck")
	if err != nil {
		return err
	}

	return r.session.Uncheck(p.Selector, browser.CheckOptions{Timeout: p.Timeout})
}
