// Package main provides the pageflow command: a batch browser automation
// runner that executes a JSON list of page actions in a single browser
// session and prints a JSON result document to standard output.
//
// The result document is the only thing written to stdout. Progress
// narration goes to stderr and invocation failures are reported as JSON
// error payloads on stdout with exit code 1.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/entrhq/pageflow/pkg/browser"
	"github.com/entrhq/pageflow/pkg/config"
	"github.com/entrhq/pageflow/pkg/workflow"
)

const version = "0.1.0"

const (
	usageLine      = `pageflow '{"steps": "[...]"}' OR pageflow '{"steps_file": "path/to/steps.json"}'`
	jsonSuggestion = "Ensure the input is valid JSON format. Check for proper escaping of quotes."
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile  string
	StepsFile   string
	LogLevel    string
	SummaryPath string
	Install     bool
	ShowVersion bool
}

// invocation is the positional-argument payload. Steps stays raw because
// it may be an array or a string containing a JSON-encoded array.
type invocation struct {
	Steps     json.RawMessage `json:"steps"`
	StepsFile string          `json:"steps_file"`
}

// payload is a top-level error document. Field order follows the output
// contract: error first, then the detail fields each payload kind uses.
type payload struct {
	Error      string `json:"error"`
	Usage      string `json:"usage,omitempty"`
	ErrorType  string `json:"error_type,omitempty"`
	Message    string `json:"message,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func main() {
	cli := parseFlags()

	if cli.ShowVersion {
		fmt.Printf("pageflow v%s\n", version)
		return
	}

	os.Exit(run(cli, flag.Args()))
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	cli := &CLIConfig{}

	flag.StringVar(&cli.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&cli.StepsFile, "steps-file", "", "Path to a JSON file holding the steps array")
	flag.StringVar(&cli.LogLevel, "log-level", "", "Progress verbosity: quiet, normal, verbose, debug")
	flag.StringVar(&cli.SummaryPath, "summary", "", "Write a run summary JSON to this path")
	flag.BoolVar(&cli.Install, "install", false, "Download the browser runtime before running")
	flag.BoolVar(&cli.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pageflow - Batch Browser Automation Runner\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pageflow [options] '<json payload>'\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Run inline steps\n")
		fmt.Fprintf(os.Stderr, "  pageflow '{\"steps\": [{\"action\": \"navigate\", \"params\": {\"url\": \"https://example.com\"}}]}'\n\n")
		fmt.Fprintf(os.Stderr, "  # Run steps from a file\n")
		fmt.Fprintf(os.Stderr, "  pageflow -steps-file steps.json\n\n")
		fmt.Fprintf(os.Stderr, "  # Install the browser runtime\n")
		fmt.Fprintf(os.Stderr, "  pageflow -install\n\n")
	}

	flag.Parse()
	return cli
}

// run resolves the steps input, executes the workflow, and prints either
// the result document or an error payload. The returned value is the
// process exit code.
func run(cli *CLIConfig, args []string) int {
	// A bare -install downloads the browser runtime and exits.
	if cli.Install && cli.StepsFile == "" && len(args) == 0 {
		if err := browser.Install(); err != nil {
			fmt.Fprintf(os.Stderr, "install failed: %v\n", err)
			return 1
		}
		fmt.Fprintln(os.Stderr, "Browser runtime installed")
		return 0
	}

	rawSteps, errPayload := resolveSteps(cli, args)
	if errPayload != nil {
		return emit(*errPayload)
	}

	steps, err := workflow.ParseSteps(rawSteps)
	if err != nil {
		return emit(stepsErrorPayload(err))
	}

	cfg, err := loadConfig(cli)
	if err != nil {
		return emit(executionFailed(err))
	}

	runner, err := workflow.NewRunner(cfg)
	if err != nil {
		return emit(executionFailed(err))
	}

	result, err := runner.Run(steps)
	if err != nil {
		return emit(executionFailed(err))
	}

	output, err := workflow.MarshalASCII(result)
	if err != nil {
		return emit(executionFailed(err))
	}

	fmt.Println(string(output))

	if cfg.Artifact.Enabled {
		if err := runner.WriteSummary(cfg.Artifact.Path, output); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	return 0
}

// resolveSteps returns the raw steps document from the -steps-file flag or
// the positional invocation payload. The steps value inside the payload
// may be a JSON array or a string holding a JSON-encoded array.
func resolveSteps(cli *CLIConfig, args []string) ([]byte, *payload) {
	if cli.StepsFile != "" {
		return readStepsFile(cli.StepsFile)
	}

	if len(args) == 0 {
		return nil, &payload{Error: "No input provided", Usage: usageLine}
	}

	var inv invocation
	if err := json.Unmarshal([]byte(args[0]), &inv); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &payload{
				Error:     "Execution failed",
				ErrorType: workflow.ErrorTypeInvalidParameter,
				Message:   err.Error(),
			}
		}
		return nil, &payload{Error: "Invalid JSON input", Message: err.Error(), Suggestion: jsonSuggestion}
	}

	if inv.StepsFile != "" {
		return readStepsFile(inv.StepsFile)
	}

	if len(inv.Steps) == 0 {
		return nil, &payload{
			Error:     "Execution failed",
			ErrorType: workflow.ErrorTypeInvalidParameter,
			Message:   workflow.ErrStepsNotArray.Error(),
		}
	}

	raw := []byte(inv.Steps)
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, &payload{Error: "Invalid JSON input", Message: err.Error(), Suggestion: jsonSuggestion}
		}
		raw = []byte(inner)
	}

	return raw, nil
}

// readStepsFile reads the steps document from disk.
func readStepsFile(path string) ([]byte, *payload) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &payload{
				Error:      "Steps file not found",
				Message:    err.Error(),
				Suggestion: "Check that the file path is correct",
			}
		}
		p := executionFailed(err)
		return nil, &p
	}
	return data, nil
}

// loadConfig builds the run configuration from the config file and flag
// overrides.
func loadConfig(cli *CLIConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if cli.ConfigFile != "" {
		loaded, err := config.Load(cli.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cli.LogLevel != "" {
		cfg.Logging.Verbosity = cli.LogLevel
	}
	if cli.SummaryPath != "" {
		cfg.Artifact.Enabled = true
		cfg.Artifact.Path = cli.SummaryPath
	}
	if cli.Install {
		cfg.Browser.Install = true
	}

	return cfg, nil
}

// stepsErrorPayload maps a ParseSteps failure to its payload: malformed
// JSON keeps the invalid-input payload, a well-formed document of the
// wrong shape is an execution failure.
func stepsErrorPayload(err error) payload {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return payload{Error: "Invalid JSON input", Message: err.Error(), Suggestion: jsonSuggestion}
	}

	message, _ := browser.Truncate(err.Error(), browser.MaxErrorLength)
	return payload{
		Error:     "Execution failed",
		ErrorType: workflow.ErrorTypeInvalidParameter,
		Message:   message,
	}
}

// executionFailed wraps a setup or runtime error in the generic failure
// payload.
func executionFailed(err error) payload {
	message, _ := browser.Truncate(err.Error(), browser.MaxErrorLength)
	return payload{
		Error:     "Execution failed",
		ErrorType: workflow.ErrorTypeExecution,
		Message:   message,
	}
}

// emit prints an error payload to stdout and returns the failure exit
// code.
func emit(p payload) int {
	data, err := workflow.MarshalASCII(p)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode error payload: %v\n", err)
		return 1
	}
	fmt.Println(string(data))
	return 1
}
