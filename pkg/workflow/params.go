package workflow

import (
	"github.com/entrhq/pageflow/pkg/browser"
)

// Parameter bags arrive as loosely typed JSON objects. Each action decodes
// its bag into a typed struct exactly once, applying defaults and failing
// fast on missing required fields. Optional fields holding a value of the
// wrong type fall back to their defaults.

// stringParam returns the string value for key, or def when the key is
// absent or holds a non-string value.
func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// floatParam returns the numeric value for key, or def when the key is
// absent or holds a non-numeric value. JSON numbers decode as float64.
func floatParam(params map[string]interface{}, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case float64:
			return n
		case int:
			return float64(n)
		}
	}
	return def
}

// intParam returns the numeric value for key truncated to an int.
func intParam(params map[string]interface{}, key string, def int) int {
	return int(floatParam(params, key, float64(def)))
}

// boolParam returns the truthiness of the value for key, or def when the
// key is absent.
func boolParam(params map[string]interface{}, key string, def bool) bool {
	v, ok := params[key]
	if !ok {
		return def
	}
	return truthy(v)
}

// truthy evaluates a decoded JSON value the way a loosely typed caller
// expects: null, false, zero, empty strings, and empty collections are
// false; everything else is true.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	case []interface{}:
		return len(val) > 0
	case map[string]interface{}:
		return len(val) > 0
	default:
		return true
	}
}

// requireString returns the string value for key, failing when the key is
// absent, null, empty, or not a string.
func requireString(params map[string]interface{}, key, action string) (string, error) {
	v, ok := params[key]
	if !ok {
		return "", requiredParam(key, action)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", requiredParam(key, action)
	}
	return s, nil
}

// NavigateParams configures the navigate action.
type NavigateParams struct {
	URL       string
	WaitUntil string
	Timeout   float64
}

func decodeNavigateParams(params map[string]interface{}) (NavigateParams, error) {
	url, err := requireString(params, "url", "navigate")
	if err != nil {
		return NavigateParams{}, err
	}

	return NavigateParams{
		URL:       url,
		WaitUntil: stringParam(params, "wait_until", "domcontentloaded"),
		Timeout:   floatParam(params, "timeout", browser.DefaultTimeout),
	}, nil
}

// FillParams configures the fill action.
type FillParams struct {
	Selector string
	Value    string
	Timeout  float64
}

func decodeFillParams(params map[string]interface{}) (FillParams, error) {
	selector, err := requireString(params, "selector", "fill")
	if err != nil {
		return FillParams{}, err
	}

	return FillParams{
		Selector: selector,
		Value:    stringParam(params, "value", ""),
		Timeout:  floatParam(params, "timeout", browser.DefaultTimeout),
	}, nil
}

// TypeParams configures the type action.
type TypeParams struct {
	Selector string
	Text     string
	Delay    float64
	Timeout  float64
}

func decodeTypeParams(params map[string]interface{}) (TypeParams, error) {
	selector, err := requireString(params, "selector", "type")
	if err != nil {
		return TypeParams{}, err
	}

	return TypeParams{
		Selector: selector,
		Text:     stringParam(params, "text", ""),
		Delay:    floatParam(params, "delay", 50),
		Timeout:  floatParam(params, "timeout", browser.DefaultTimeout),
	}, nil
}

// ClickParams configures the click action.
type ClickParams struct {
	Selector   string
	Button     string
	ClickCount int
	Timeout    float64
}

func decodeClickParams(params map[string]interface{}) (ClickParams, error) {
	selector, err := requireString(params, "selector", "click")
	if err != nil {
		return ClickParams{}, err
	}

	return ClickParams{
		Selector:   selector,
		Button:     stringParam(params, "button", "left"),
		ClickCount: intParam(params, "click_count", 1),
		Timeout:    floatParam(params, "timeout", browser.DefaultTimeout),
	}, nil
}

// SelectorParams covers the actions whose inputs are a selector and an
// optional timeout: hover, focus, clear, check, uncheck.
type SelectorParams struct {
	Selector string
	Timeout  float64
}

func decodeSelectorParams(params map[string]interface{}, action string) (SelectorParams, error) {
	selector, err := requireString(params, "selector", action)
	if err != nil {
		return SelectorParams{}, err
	}

	return SelectorParams{
		Selector: selector,
		Timeout:  floatParam(params, "timeout", browser.DefaultTimeout),
	}, nil
}

// ScrollParams configures the scroll action. Direction is a closed set
// (down, up, bottom, top); unrecognized values scroll nowhere.
type ScrollParams struct {
	Direction string
	Amount    float64
}

func decodeScrollParams(params map[string]interface{}) ScrollParams {
	return ScrollParams{
		Direction: stringParam(params, "direction", "down"),
		Amount:    floatParam(params, "amount", 500),
	}
}

// WaitParams configures the wait action.
type WaitParams struct {
	Timeout float64
}

func decodeWaitParams(params map[string]interface{}) WaitParams {
	return WaitParams{
		Timeout: floatParam(params, "timeout", 2000),
	}
}

// WaitForSelectorParams configures the wait_for_selector action.
type WaitForSelectorParams struct {
	Selector string
	State    string
	Timeout  float64
}

func decodeWaitForSelectorParams(params map[string]interface{}) (WaitForSelectorParams, error) {
	selector, err := requireString(params, "selector", "wait_for_selector")
	if err != nil {
		return WaitForSelectorParams{}, err
	}

	return WaitForSelectorParams{
		Selector: selector,
		State:    stringParam(params, "state", "visible"),
		Timeout:  floatParam(params, "timeout", browser.DefaultTimeout),
	}, nil
}

// ScreenshotParams configures the screenshot action.
type ScreenshotParams struct {
	FullPage bool
}

func decodeScreenshotParams(params map[string]interface{}) ScreenshotParams {
	return ScreenshotParams{
		FullPage: boolParam(params, "full_page", false),
	}
}

// SnapshotParams configures the capture_snapshot action.
type SnapshotParams struct {
	MaxLength int
	Clean     bool
}

func decodeSnapshotParams(params map[string]interface{}) SnapshotParams {
	return SnapshotParams{
		MaxLength: intParam(params, "max_length", browser.MaxSnapshotLength),
		Clean:     boolParam(params, "clean", true),
	}
}

// CaptureRequestsParams configures the capture_requests action.
type CaptureRequestsParams struct {
	Stop   bool
	Filter string
}

func decodeCaptureRequestsParams(params map[string]interface{}) CaptureRequestsParams {
	return CaptureRequestsParams{
		Stop:   boolParam(params, "stop", false),
		Filter: stringParam(params, "filter", ""),
	}
}

// EvaluateParams configures the evaluate_js action.
type EvaluateParams struct {
	Script string
}

func decodeEvaluateParams(params map[string]interface{}) (EvaluateParams, error) {
	script, err := requireString(params, "script", "evaluate_js")
	if err != nil {
		return EvaluateParams{}, err
	}

	return EvaluateParams{Script: script}, nil
}

// SelectParams configures the select action. Value must be present but may
// be the empty string.
type SelectParams struct {
	Selector string
	Value    string
	Timeout  float64
}

func decodeSelectParams(params map[string]interface{}) (SelectParams, error) {
	selector := stringParam(params, "selector", "")
	value, valueOK := params["value"].(string)

	if selector == "" || !valueOK {
		return SelectParams{}, &ParamError{Message: "'selector' and 'value' parameters are required for select action"}
	}

	return SelectParams{
		Selector: selector,
		Value:    value,
		Timeout:  floatParam(params, "timeout", browser.DefaultTimeout),
	}, nil
}

// PressParams configures the press action. When Selector is empty the key
// is sent to whichever element currently has focus.
type PressParams struct {
	Key      string
	Selector string
	Timeout  float64
}

func decodePressParams(params map[string]interface{}) (PressParams, error) {
	key, err := requireString(params, "key", "press")
	if err != nil {
		return PressParams{}, err
	}

	return PressParams{
		Key:      key,
		Selector: stringParam(params, "selector", ""),
		Timeout:  floatParam(params, "timeout", browser.DefaultTimeout),
	}, nil
}
