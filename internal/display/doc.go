// Package display formats everything show prints for humans: resolved
// paths, walk results and warnings.
//
// Paths are printed with their normalized form and colored by kind:
//
//	p := display.NewPathPrinter(os.Stdout, true)
//	if err := p.Print("../bin/tool"); err != nil {
//	    return err // ErrNoSuchPath when nothing exists there
//	}
//
// Directories are blue and executables yellow. A symlink is printed as
// "path --> target", where the arrow is bold cyan and the target is green
// when it exists and red when the link dangles. Relative link targets are
// resolved against the directory holding the link.
//
// Walk results go through PrintEntry, which honors AbsolutePath and
// NameOnly.
//
// Warnings are multi-line yellow blocks:
//
//	warning := display.Warning{
//	    Title:      "2 entries could not be read",
//	    Files:      []string{"/srv/private", "/srv/lost+found"},
//	    Suggestion: "Use --ignore-errors to hide these messages",
//	}
//	warning.Display(os.Stderr)
//
// All functions accept io.Writer interfaces for testability.
package display
