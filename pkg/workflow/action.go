package workflow

import "fmt"

// Action identifies one registered browser operation. The wire name is
// resolved to this enum once per step, so handler dispatch is a closed
// switch instead of a string-keyed table.
type Action int

const (
	ActionNavigate Action = iota
	ActionFill
	ActionType
	ActionClick
	ActionHover
	ActionScroll
	ActionWait
	ActionWaitForSelector
	ActionScreenshot
	ActionCaptureSnapshot
	ActionCaptureRequests
	ActionEvaluateJS
	ActionSelect
	ActionPress
	ActionFocus
	ActionClear
	ActionCheck
	ActionUncheck
)

// actionNames holds the wire name of every action in registration order.
// The order is part of the output contract: the unknown-action message
// enumerates names in exactly this order.
var actionNames = []string{
	"navigate",
	"fill",
	"type",
	"click",
	"hover",
	"scroll",
	"wait",
	"wait_for_selector",
	"screenshot",
	"capture_snapshot",
	"capture_requests",
	"evaluate_js",
	"select",
	"press",
	"focus",
	"clear",
	"check",
	"uncheck",
}

func (a Action) String() string {
	if int(a) < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves a wire name to its action. Unregistered names fail
// with an UnknownActionError whose message lists the full action set.
func ParseAction(name string) (Action, error) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	return 0, &UnknownActionError{Name: name}
}

// SupportedActions returns the wire names of all registered actions in
// registration order.
func SupportedActions() []string {
	names := make([]string, len(actionNames))
	copy(names, actionNames)
	return names
}
