package processor

import (
	"strings"
	"testing"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"short", "hello world", "hello world"},
		{"exactly 500", strings.Repeat("a", 500), strings.Repeat("a", 500)},
		{"501", strings.Repeat("a", 501), strings.Repeat("a", 500) + "…"},
		{"long", strings.Repeat("b", 2000), strings.Repeat("b", 500) + "…"},
		{"multibyte 500", strings.Repeat("é", 500), strings.Repeat("é", 500)},
		{"multibyte 501", strings.Repeat("é", 501), strings.Repeat("é", 500) + "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Preview(tt.in); got != tt.want {
				t.Errorf("Preview() length %d, want length %d", len(got), len(tt.want))
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	err := &ModelInitError{Component: "summarizer", Err: errFake("connection refused")}
	if got := UserMessage(err); got != "Failed to load models: connection refused" {
		t.Errorf("UserMessage() = %q", got)
	}
	if got := UserMessage(errFake("boom")); got != "Error processing video: boom" {
		t.Errorf("UserMessage() = %q", got)
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }
