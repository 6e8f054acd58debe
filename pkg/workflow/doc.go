// Package workflow executes a declarative sequence of browser actions and
// normalizes every outcome into a uniform, size-bounded result document.
//
// # Architecture
//
// The package is organized around a small set of components:
//
//   - Action: the closed enum of registered operations. Wire names exist
//     only at the JSON boundary; dispatch switches on the enum.
//   - Params: per-action parameter types decoded once from the step's
//     parameter bag, with defaults and validation applied up front.
//   - Envelope: the uniform success/error result recorded per step, with
//     deterministic key order in the output document.
//   - Classify: the heuristic that turns failure messages into actionable
//     suggestions for the caller.
//   - Runner: the orchestrator that owns the browser session, the request
//     recorder, and the step loop.
//
// # Execution Model
//
// A run is strictly sequential: one browser session, one page, one action
// in flight at a time. Step failures are folded into the result document
// and never abort the run unless the failing step carries
// stop_on_error:true. The browser session is released on every exit path.
//
// # Example Usage
//
//	runner, err := workflow.NewRunner(config.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	steps := []workflow.Step{
//		{Action: "navigate", Params: map[string]interface{}{"url": "https://example.com"}},
//		{Action: "capture_snapshot", Params: map[string]interface{}{"max_length": 2000}},
//	}
//
//	result, err := runner.Run(steps)
//	if err != nil {
//		return err
//	}
//
//	output, err := workflow.MarshalASCII(result)
package workflow
