package utils

import (
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestNormalizeWhitespace(t *testing.T) {
	s := NewStringHelper()

	if got := s.NormalizeWhitespace("  Grand \t Hall\n "); got != "Grand Hall" {
		t.Errorf("NormalizeWhitespace() = %q", got)
	}
}

func TestTruncateWidth(t *testing.T) {
	s := NewStringHelper()

	tests := []struct {
		in    string
		width int
		want  string
	}{
		{in: "short", width: 10, want: "short"},
		{in: "exactly10!", width: 10, want: "exactly10!"},
		{in: "a much longer title", width: 8, want: "a much …"},
		{in: "anything", width: 0, want: "anything"},
	}

	for _, tt := range tests {
		if got := s.TruncateWidth(tt.in, tt.width); got != tt.want {
			t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}

	wide := s.TruncateWidth("消防處增至八十三", 7)
	if w := runewidth.StringWidth(wide); w > 7 {
		t.Errorf("Expected width <= 7, got %d for %q", w, wide)
	}
}

func TestBuildHeaders(t *testing.T) {
	h := NewHTTPHelper().BuildHeaders(map[string]string{"If-None-Match": `"abc"`})

	if h.Get("User-Agent") != UserAgent {
		t.Errorf("Unexpected user agent %q", h.Get("User-Agent"))
	}

	if h.Get("Accept") != "application/json" {
		t.Errorf("Unexpected accept %q", h.Get("Accept"))
	}

	if h.Get("If-None-Match") != `"abc"` {
		t.Errorf("Custom header missing")
	}
}
