// Package tokenizer provides token counting for run summaries, backed by
// tiktoken with a character-based estimate as fallback.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Tokenizer counts tokens using the cl100k_base encoding
type Tokenizer struct {
	encoder *tiktoken.Tiktoken
}

// New creates a tokenizer. Initialization can fail when the encoding data
// is unavailable; callers should fall back to Estimate in that case.
func New() (*Tokenizer, error) {
	encoder, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}

	return &Tokenizer{encoder: encoder}, nil
}

// CountTokens counts the number of tokens in a text
func (t *Tokenizer) CountTokens(text string) int {
	if t == nil || t.encoder == nil {
		return Estimate(text)
	}

	tokens := t.encoder.Encode(text, nil, nil)
	return len(tokens)
}

// Estimate provides a rough token estimate
func Estimate(text string) int {
	// Rough estimate: ~4 characters per token
	return len(text) / 4
}
