package display

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/harrison/show/internal/walk"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title: "Configuration Missing",
	}

	w.Display(&buf)

	output := buf.String()

	// Should contain yellow color code
	if !strings.Contains(output, "\x1b[33m") {
		t.Error("Expected yellow ANSI color code in output")
	}

	if !strings.Contains(output, "warning: Configuration Missing") {
		t.Error("Expected title in output")
	}

	// Should end with reset code
	if !strings.HasSuffix(output, "\x1b[0m") {
		t.Error("Expected ANSI reset code at the end of output")
	}
}

func TestDisplayWarning_Plain(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{Title: "Plain", Plain: true}

	w.Display(&buf)

	if buf.String() != "warning: Plain\n" {
		t.Errorf("Unexpected output %q", buf.String())
	}
}

func TestDisplayWarning_Complete(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{
		Title:      "Walk incomplete",
		Message:    "Some directories were skipped",
		Files:      []string{"/a", "/b"},
		Suggestion: "Check permissions",
		Plain:      true,
	}

	w.Display(&buf)

	expected := "warning: Walk incomplete\n" +
		"    Some directories were skipped\n" +
		"    Affected paths:\n" +
		"      1. /a\n" +
		"      2. /b\n" +
		"    Suggestion:\n" +
		"    Check permissions\n"
	if buf.String() != expected {
		t.Errorf("Expected:\n%q\nGot:\n%q", expected, buf.String())
	}
}

func TestDisplayWarning_SingleFile(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{Title: "t", Files: []string{"/only"}, Plain: true}

	w.Display(&buf)

	if !strings.Contains(buf.String(), "Affected path:\n") {
		t.Errorf("Expected singular label, got %q", buf.String())
	}
}

func TestWarnUnreadable(t *testing.T) {
	errs := []error{
		&walk.EntryError{Path: "/srv/private", Op: "readdir", Err: os.ErrPermission},
		errors.New("something else"),
	}

	w := WarnUnreadable(errs)

	if w.Title != "2 entries could not be read" {
		t.Errorf("Unexpected title %q", w.Title)
	}
	if len(w.Files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(w.Files))
	}
	if w.Files[0] != "/srv/private (permission denied)" {
		t.Errorf("Unexpected file line %q", w.Files[0])
	}
	if w.Files[1] != "something else" {
		t.Errorf("Unexpected file line %q", w.Files[1])
	}
	if !strings.Contains(w.Suggestion, "--ignore-errors") {
		t.Errorf("Suggestion should mention --ignore-errors, got %q", w.Suggestion)
	}

	if single := WarnUnreadable(errs[:1]); single.Title != "1 entry could not be read" {
		t.Errorf("Unexpected singular title %q", single.Title)
	}
}
