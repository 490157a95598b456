package display

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"github.com/harrison/show/internal/execpath"
	"github.com/harrison/show/internal/pathutil"
	"github.com/harrison/show/internal/walk"
)

// ErrNoSuchPath is returned when a path to print does not exist.
var ErrNoSuchPath = errors.New("no such file or directory")

type palette struct {
	dir    *color.Color
	exec   *color.Color
	arrow  *color.Color
	target *color.Color
	broken *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		dir:    color.New(color.FgBlue),
		exec:   color.New(color.FgYellow),
		arrow:  color.New(color.FgCyan, color.Bold),
		target: color.New(color.FgGreen),
		broken: color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.dir, p.exec, p.arrow, p.target, p.broken} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// PathPrinter prints normalized paths, one per line.
type PathPrinter struct {
	Out   io.Writer
	Style pathutil.Style
	Color bool
	Probe execpath.Probe
	Getwd func() (string, error)

	// AbsolutePath and NameOnly change how PrintEntry spells walk results.
	// By default entries are printed as the walk produced them.
	AbsolutePath bool
	NameOnly     bool
}

// NewPathPrinter returns a printer using the platform probe and os.Getwd.
func NewPathPrinter(out io.Writer, color bool) *PathPrinter {
	return &PathPrinter{
		Out:   out,
		Style: pathutil.StyleNative,
		Color: color,
		Probe: execpath.DefaultProbe(),
		Getwd: os.Getwd,
	}
}

func (p *PathPrinter) normalizer() *pathutil.Normalizer {
	return &pathutil.Normalizer{Getwd: p.Getwd}
}

// kind describes what a line is about.
type kind struct {
	dir  bool
	exec bool
	link bool
}

// Print normalizes raw and prints it. The path itself is not followed, so a
// dangling symlink still prints.
func (p *PathPrinter) Print(raw string) error {
	abs, err := p.normalizer().Abs(raw)
	if err != nil {
		return err
	}

	k, err := p.inspect(abs)
	if err != nil {
		return err
	}
	return p.line(abs, pathutil.Render(abs, p.Style), k)
}

// PrintRelative prints raw relative to the current directory.
func (p *PathPrinter) PrintRelative(raw string) error {
	abs, err := p.normalizer().Abs(raw)
	if err != nil {
		return err
	}

	k, err := p.inspect(abs)
	if err != nil {
		return err
	}

	cwd, err := p.normalizer().Abs(".")
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil {
		rel = abs
	}
	return p.line(abs, pathutil.Render(rel, p.Style), k)
}

// PrintEntry prints one walk result.
func (p *PathPrinter) PrintEntry(e walk.DirEntry) error {
	var shown string
	switch {
	case p.NameOnly:
		shown = e.Name()
	case p.AbsolutePath:
		abs, err := p.normalizer().Abs(e.Path)
		if err != nil {
			return err
		}
		shown = pathutil.Render(abs, p.Style)
	default:
		shown = pathutil.Render(e.Path, p.Style)
	}

	k := kind{dir: e.IsDir(), link: e.IsSymlink()}
	k.exec = !k.dir && e.Type != walk.TypeSymlink && p.probe().IsExecutable(e.Path)
	return p.line(e.Path, shown, k)
}

func (p *PathPrinter) probe() execpath.Probe {
	if p.Probe == nil {
		return execpath.DefaultProbe()
	}
	return p.Probe
}

// inspect classifies abs without following it for existence.
func (p *PathPrinter) inspect(abs string) (kind, error) {
	info, err := os.Lstat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return kind{}, fmt.Errorf("%w: %s", ErrNoSuchPath, abs)
		}
		return kind{}, fmt.Errorf("failed to stat %s: %w", abs, err)
	}

	k := kind{link: info.Mode()&fs.ModeSymlink != 0}
	if target, err := os.Stat(abs); err == nil {
		k.dir = target.IsDir()
	}
	k.exec = !k.dir && p.probe().IsExecutable(abs)
	return k, nil
}

// line writes shown, colored by k, with the link target when path is a
// symlink.
func (p *PathPrinter) line(path, shown string, k kind) error {
	colors := newPalette(p.Color)

	switch {
	case k.dir:
		shown = colors.dir.Sprint(shown)
	case k.exec:
		shown = colors.exec.Sprint(shown)
	}

	if !k.link {
		_, err := fmt.Fprintln(p.Out, shown)
		return err
	}

	target, err := os.Readlink(path)
	if err != nil {
		_, err := fmt.Fprintln(p.Out, shown)
		return err
	}

	abs, err := p.normalizer().Abs(path)
	if err != nil {
		return err
	}
	resolved := pathutil.Normalize(target, filepath.Dir(abs))

	targetColor := colors.target
	if _, err := os.Stat(resolved); err != nil {
		targetColor = colors.broken
	}

	_, err = fmt.Fprintf(p.Out, "%s %s %s\n", shown, colors.arrow.Sprint("-->"), targetColor.Sprint(pathutil.Render(resolved, p.Style)))
	return err
}
