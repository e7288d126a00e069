package style

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetColorMode_Never(t *testing.T) {
	SetColorMode("never", nil)
	if got := OK("written"); got != IconPass+" written" {
		t.Errorf("OK() = %q, want no ANSI escapes", got)
	}
	if got := Fail("broken"); strings.Contains(got, "\x1b") {
		t.Errorf("Fail() = %q, want no ANSI escapes", got)
	}
}

func TestSetColorMode_AutoNonTerminal(t *testing.T) {
	SetColorMode("auto", &bytes.Buffer{})
	if got := Dim.Render("x"); got != "x" {
		t.Errorf("Dim.Render(\"x\") = %q, want plain text for a non-terminal writer", got)
	}
}

func TestSetColorMode_Always(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")
	SetColorMode("always", nil)
	if got := Success.Render("ok"); !strings.Contains(got, "ok") {
		t.Errorf("Success.Render(\"ok\") = %q, want it to contain the text", got)
	}
	SetColorMode("never", nil)
}

func TestIsTerminal_NonFile(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal(buffer) = true, want false")
	}
}
