package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/show/internal/walk"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
	Plain      bool     // Disable color
}

// Display shows a formatted warning in yellow
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, file := range w.Files {
			b.WriteString(fmt.Sprintf("      %d. %s\n", i+1, file))
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	yellow := color.New(color.FgYellow)
	if w.Plain {
		yellow.DisableColor()
	} else {
		yellow.EnableColor()
	}
	fmt.Fprint(out, yellow.Sprint(b.String()))
}

// WarnUnreadable summarizes the per-entry failures of a walk
func WarnUnreadable(errs []error) Warning {
	files := make([]string, 0, len(errs))
	for _, err := range errs {
		var entryErr *walk.EntryError
		if errors.As(err, &entryErr) {
			files = append(files, fmt.Sprintf("%s (%v)", entryErr.Path, entryErr.Err))
		} else {
			files = append(files, err.Error())
		}
	}

	noun := "entries"
	if len(errs) == 1 {
		noun = "entry"
	}
	return Warning{
		Title:      fmt.Sprintf("%d %s could not be read", len(errs), noun),
		Files:      files,
		Suggestion: "Use --ignore-errors to hide these messages",
	}
}
