package workflow

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// LogLevel represents the progress narration verbosity level
type LogLevel int

const (
	// LogLevelQuiet shows only errors and warnings
	LogLevelQuiet LogLevel = iota
	// LogLevelNormal shows per-step progress (default)
	LogLevelNormal
	// LogLevelVerbose shows step parameters and timing
	LogLevelVerbose
	// LogLevelDebug shows all internal details for debugging
	LogLevelDebug
)

// ParseLevel converts a string log level to LogLevel
func ParseLevel(level string) LogLevel {
	switch level {
	case "quiet":
		return LogLevelQuiet
	case "normal":
		return LogLevelNormal
	case "verbose":
		return LogLevelVerbose
	case "debug":
		return LogLevelDebug
	default:
		return LogLevelNormal
	}
}

// Progress narrates the run on standard error. Standard output carries the
// result document, so nothing here may ever write to it.
type Progress struct {
	level  LogLevel
	writer io.Writer

	// ANSI color codes
	colorReset     string
	colorCyan      string
	colorYellow    string
	colorGray      string
	colorBoldGreen string
	colorBoldRed   string
	colorBoldWhite string

	startTime time.Time
}

// NewProgress creates a progress narrator with the specified level.
func NewProgress(level LogLevel) *Progress {
	return &Progress{
		level:          level,
		writer:         os.Stderr,
		colorReset:     "\033[0m",
		colorCyan:      "\033[36m",
		colorYellow:    "\033[33m",
		colorGray:      "\033[90m",
		colorBoldGreen: "\033[1;32m",
		colorBoldRed:   "\033[1;31m",
		colorBoldWhite: "\033[1;37m",
		startTime:      time.Now(),
	}
}

// Header prints a prominent header message
func (p *Progress) Header(message string) {
	if p.level >= LogLevelNormal {
		fmt.Fprintf(p.writer, "\n%s%s%s\n", p.colorBoldWhite, strings.Repeat("=", 70), p.colorReset)
		fmt.Fprintf(p.writer, "%s  %s%s\n", p.colorBoldWhite, message, p.colorReset)
		fmt.Fprintf(p.writer, "%s%s%s\n", p.colorBoldWhite, strings.Repeat("=", 70), p.colorReset)
	}
}

// Step prints a numbered step before it executes
func (p *Progress) Step(index, total int, action string) {
	if p.level >= LogLevelNormal {
		fmt.Fprintf(p.writer, "%s[%d/%d] %s%s\n", p.colorCyan, index+1, total, action, p.colorReset)
	}
}

// StepSuccess prints a step's success with its duration
func (p *Progress) StepSuccess(action string, elapsed time.Duration) {
	if p.level >= LogLevelNormal {
		fmt.Fprintf(p.writer, "%s  ✓ %s (%s)%s\n", p.colorBoldGreen, action, elapsed.Round(time.Millisecond), p.colorReset)
	}
}

// StepFailure prints a step's failure with its error type and message
func (p *Progress) StepFailure(action, errorType, message string) {
	if p.level >= LogLevelQuiet {
		fmt.Fprintf(p.writer, "%s  ✗ %s: %s: %s%s\n", p.colorBoldRed, action, errorType, message, p.colorReset)
	}
}

// Infof prints an informational message
func (p *Progress) Infof(format string, args ...interface{}) {
	if p.level >= LogLevelNormal {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(p.writer, "%s%s%s\n", p.colorCyan, msg, p.colorReset)
	}
}

// Warningf prints a warning message
func (p *Progress) Warningf(format string, args ...interface{}) {
	if p.level >= LogLevelQuiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(p.writer, "%s⚠ Warning: %s%s\n", p.colorYellow, msg, p.colorReset)
	}
}

// Errorf prints an error message
func (p *Progress) Errorf(format string, args ...interface{}) {
	if p.level >= LogLevelQuiet {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(p.writer, "%s✗ Error: %s%s\n", p.colorBoldRed, msg, p.colorReset)
	}
}

// Verbosef prints detailed information (only in verbose mode)
func (p *Progress) Verbosef(format string, args ...interface{}) {
	if p.level >= LogLevelVerbose {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(p.writer, "%s→ %s%s\n", p.colorGray, msg, p.colorReset)
	}
}

// Debugf prints debug information (only in debug mode)
func (p *Progress) Debugf(format string, args ...interface{}) {
	if p.level >= LogLevelDebug {
		msg := fmt.Sprintf(format, args...)
		fmt.Fprintf(p.writer, "%s[DEBUG] %s%s\n", p.colorGray, msg, p.colorReset)
	}
}

// Summary prints the final run summary line
func (p *Progress) Summary(executed, failed int, stopped bool) {
	if p.level < LogLevelNormal {
		return
	}

	elapsed := time.Since(p.startTime).Round(time.Millisecond)
	if failed == 0 {
		fmt.Fprintf(p.writer, "%s✓ %d steps completed in %s%s\n", p.colorBoldGreen, executed, elapsed, p.colorReset)
		return
	}

	note := ""
	if stopped {
		note = ", stopped early"
	}
	fmt.Fprintf(p.writer, "%s✗ %d of %d steps failed in %s%s%s\n", p.colorBoldRed, failed, executed, elapsed, note, p.colorReset)
}
