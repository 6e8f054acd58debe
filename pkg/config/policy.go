package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

// ConstraintViolation represents a policy violation error
type ConstraintViolation struct {
	Type    ViolationType
	Message string
	Details map[string]interface{}
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation (%s): %s", e.Type, e.Message)
}

// ViolationType identifies the type of policy that was violated
type ViolationType string

const (
	ViolationURLPattern ViolationType = "url_pattern"
)

// URLPolicy handles glob pattern matching for navigation access control.
// A nil policy, or one with no patterns, allows every URL.
type URLPolicy struct {
	allowedPatterns []glob.Glob
	deniedPatterns  []glob.Glob

	allowed []string
	denied  []string
}

// NewURLPolicy compiles the allow and deny pattern lists
func NewURLPolicy(allowed, denied []string) (*URLPolicy, error) {
	policy := &URLPolicy{
		allowed: allowed,
		denied:  denied,
	}

	// Compile allowed patterns
	for _, pattern := range allowed {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed pattern '%s': %w", pattern, err)
		}
		policy.allowedPatterns = append(policy.allowedPatterns, g)
	}

	// Compile denied patterns
	for _, pattern := range denied {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid denied pattern '%s': %w", pattern, err)
		}
		policy.deniedPatterns = append(policy.deniedPatterns, g)
	}

	return policy, nil
}

// IsAllowed returns true if the URL is allowed by the pattern rules
func (p *URLPolicy) IsAllowed(url string) bool {
	if p == nil {
		return true
	}

	// Denied patterns take precedence
	for _, pattern := range p.deniedPatterns {
		if pattern.Match(url) {
			return false
		}
	}

	// If no allowed patterns specified, allow all (except denied)
	if len(p.allowedPatterns) == 0 {
		return true
	}

	// Check if URL matches any allowed pattern
	for _, pattern := range p.allowedPatterns {
		if pattern.Match(url) {
			return true
		}
	}

	return false
}

// Check returns a ConstraintViolation if the URL is not allowed
func (p *URLPolicy) Check(url string) error {
	if p.IsAllowed(url) {
		return nil
	}

	return &ConstraintViolation{
		Type:    ViolationURLPattern,
		Message: fmt.Sprintf("URL '%s' is blocked by the configured URL policy", url),
		Details: map[string]interface{}{
			"url":              url,
			"allowed_patterns": p.allowed,
			"denied_patterns":  p.denied,
		},
	}
}
