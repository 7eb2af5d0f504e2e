package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogCategory(t *testing.T) {
	var buf bytes.Buffer
	EnableTo(&buf)
	defer Disable()

	Log("engine", "reset voices=%d", 8)

	out := buf.String()
	if !strings.Contains(out, "category=engine") {
		t.Errorf("missing category field: %q", out)
	}
	if !strings.Contains(out, "reset voices=8") {
		t.Errorf("missing message: %q", out)
	}
}

func TestLogDisabled(t *testing.T) {
	var buf bytes.Buffer
	EnableTo(&buf)
	Disable()

	Log("engine", "dropped")
	if strings.Contains(buf.String(), "dropped") {
		t.Error("logged while disabled")
	}
	if Enabled() {
		t.Error("still enabled")
	}
}

func TestLogEvery(t *testing.T) {
	var buf bytes.Buffer
	EnableTo(&buf)
	defer Disable()

	for i := 0; i < 10; i++ {
		LogEvery(5, "tick", "cycle")
	}
	if n := strings.Count(buf.String(), "cycle (every 5"); n != 2 {
		t.Errorf("got %d lines, want 2:\n%s", n, buf.String())
	}
}
