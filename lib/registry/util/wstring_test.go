package util

import "testing"

func TestWideStringRoundTrip(t *testing.T) {
	cases := []string{
		"",
		"Hello",
		"Schwertkämpfer",
		"挑戦者",
		"emoji 🗡 payload",
	}

	for _, s := range cases {
		if got := GoString(WideString(s)); got != s {
			t.Errorf("round trip of %q returned %q", s, got)
		}
	}
}

func TestGoStringNil(t *testing.T) {
	if got := GoString(nil); got != "" {
		t.Errorf("expected empty string for nil pointer, got %q", got)
	}
}

func TestWideStringTerminated(t *testing.T) {
	// the pointer must reference a NUL-terminated sequence; "ab" encodes to
	// two code units plus the terminator
	p := WideString("ab")
	if *p != 'a' {
		t.Errorf("expected first code unit 'a', got %d", *p)
	}
}
