package util

import (
	"strings"
	"testing"
)

func TestWrapStringShort(t *testing.T) {
	in := "short help text"
	if got := WrapString(in); got != in {
		t.Errorf("expected a text under the wrap width to pass through unchanged, got %q", got)
	}
}

func TestWrapStringKeepsLastLine(t *testing.T) {
	in := "Number of goroutines to use for the id allocation check"
	got := WrapString(in)

	if !strings.HasSuffix(got, "check") {
		t.Errorf("last word dropped: %q", got)
	}
	if strings.ReplaceAll(got, "\n", " ") != in {
		t.Errorf("wrapping changed the text: %q", got)
	}
}

func TestWrapStringLineWidth(t *testing.T) {
	in := strings.Repeat("word ", 40) + "end"
	for _, line := range strings.Split(WrapString(in), "\n") {
		if len(line) > Wrap {
			t.Errorf("line exceeds wrap width %d: %q", Wrap, line)
		}
	}
}

func TestWrapStringEmpty(t *testing.T) {
	if got := WrapString(""); got != "" {
		t.Errorf("expected empty input to stay empty, got %q", got)
	}
}
