package browser

import (
	"strings"
	"testing"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		limit         int
		want          string
		wantTruncated bool
	}{
		{
			name:          "shorter than limit",
			input:         "hello",
			limit:         10,
			want:          "hello",
			wantTruncated: false,
		},
		{
			name:          "exactly at limit",
			input:         "hello",
			limit:         5,
			want:          "hello",
			wantTruncated: false,
		},
		{
			name:          "longer than limit",
			input:         "hello world",
			limit:         5,
			want:          "hello",
			wantTruncated: true,
		},
		{
			name:          "empty string",
			input:         "",
			limit:         5,
			want:          "",
			wantTruncated: false,
		},
		{
			name:          "zero limit",
			input:         "hello",
			limit:         0,
			want:          "",
			wantTruncated: true,
		},
		{
			name:          "negative limit clamps to zero",
			input:         "hello",
			limit:         -1,
			want:          "",
			wantTruncated: true,
		},
		{
			name:          "multibyte runes counted as characters",
			input:         "日本語のテスト",
			limit:         3,
			want:          "日本語",
			wantTruncated: true,
		},
		{
			name:          "multibyte within limit",
			input:         "héllo",
			limit:         5,
			want:          "héllo",
			wantTruncated: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := Truncate(tt.input, tt.limit)
			if got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
			if truncated != tt.wantTruncated {
				t.Errorf("Truncate() truncated = %v, want %v", truncated, tt.wantTruncated)
			}
		})
	}
}

func TestTruncateURL(t *testing.T) {
	short := "https://example.com/path"
	if got := TruncateURL(short); got != short {
		t.Errorf("TruncateURL() = %q, want %q", got, short)
	}

	long := "https://example.com/" + strings.Repeat("a", 300)
	got := TruncateURL(long)
	if Length(got) != MaxURLLength {
		t.Errorf("TruncateURL() length = %d, want %d", Length(got), MaxURLLength)
	}
	if !strings.HasPrefix(long, got) {
		t.Errorf("TruncateURL() result is not a prefix of the input")
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"multibyte", "日本語", 3},
		{"mixed", "a日b", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Length(tt.input); got != tt.want {
				t.Errorf("Length(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
