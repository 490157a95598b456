package execpath

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/show/internal/pathutil"
)

// Resolver searches the directories listed in PATH for executables.
type Resolver struct {
	Getenv func(string) string
	Getwd  func() (string, error)
	Probe  Probe
}

// NewResolver returns a Resolver bound to the process environment and the
// platform probe.
func NewResolver() *Resolver {
	return &Resolver{
		Getenv: os.Getenv,
		Getwd:  os.Getwd,
		Probe:  DefaultProbe(),
	}
}

// SearchPath returns the directories of PATH in order. An empty element
// stands for the current directory, as in Unix shells.
func (r *Resolver) SearchPath() []string {
	getenv := r.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	list := getenv("PATH")
	if list == "" {
		return nil
	}

	dirs := filepath.SplitList(list)
	for i, dir := range dirs {
		if dir == "" {
			dirs[i] = "."
		}
	}
	return dirs
}

// Candidates returns every absolute path that FindAll would probe for name,
// in probe order. Names that contain a path separator bypass the search path.
// The only error is a failure to obtain the working directory.
func (r *Resolver) Candidates(name string) ([]string, error) {
	if name == "" {
		return nil, nil
	}

	probe := r.probe()
	normalizer := &pathutil.Normalizer{Getwd: r.Getwd}

	var files []string
	exts := probe.Extensions()
	if len(exts) > 0 && filepath.Ext(name) == "" {
		for _, ext := range exts {
			files = append(files, name+ext)
		}
	} else {
		files = []string{name}
	}

	if strings.ContainsAny(name, pathSeparators) {
		candidates := make([]string, 0, len(files))
		for _, f := range files {
			abs, err := normalizer.Abs(f)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, abs)
		}
		return candidates, nil
	}

	for i, f := range files {
		files[i] = probe.FoldName(f)
	}

	dirs := r.SearchPath()
	candidates := make([]string, 0, len(dirs)*len(files))
	for _, dir := range dirs {
		for _, f := range files {
			abs, err := normalizer.Abs(filepath.Join(dir, f))
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, abs)
		}
	}
	return candidates, nil
}

// FindFirst returns the first candidate accepted by the probe. ok is false
// when no candidate is executable.
func (r *Resolver) FindFirst(name string) (path string, ok bool, err error) {
	candidates, err := r.Candidates(name)
	if err != nil {
		return "", false, err
	}

	probe := r.probe()
	for _, c := range candidates {
		if probe.IsExecutable(c) {
			return c, true, nil
		}
	}
	return "", false, nil
}

// FindAll returns every candidate accepted by the probe, in search order and
// without removing duplicates.
func (r *Resolver) FindAll(name string) ([]string, error) {
	candidates, err := r.Candidates(name)
	if err != nil {
		return nil, err
	}

	probe := r.probe()
	var found []string
	for _, c := range candidates {
		if probe.IsExecutable(c) {
			found = append(found, c)
		}
	}
	return found, nil
}

func (r *Resolver) probe() Probe {
	if r.Probe == nil {
		return DefaultProbe()
	}
	return r.Probe
}
