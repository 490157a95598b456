package walk

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type verdict int

const (
	accept verdict = iota
	// reject suppresses the entry but keeps its subtree.
	reject
	// prune suppresses the entry and its subtree.
	prune
)

type pattern struct {
	text  string
	glob  bool
	path  bool
	folds bool
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}

func validatePattern(p string) error {
	if p == "" {
		return errEmptyPattern
	}
	if isGlob(p) && !doublestar.ValidatePattern(p) {
		return errBadPattern(p)
	}
	return nil
}

func compilePattern(p string, ignoreCase bool) pattern {
	if ignoreCase {
		p = strings.ToLower(p)
	}
	return pattern{
		text:  p,
		glob:  isGlob(p),
		path:  strings.Contains(p, "/"),
		folds: ignoreCase,
	}
}

// match tests the entry name, or rel for patterns naming a path.
func (p pattern) match(name, rel string) bool {
	subject := name
	if p.path {
		subject = rel
	}
	if p.folds {
		subject = strings.ToLower(subject)
	}
	if p.glob {
		return doublestar.MatchUnvalidated(p.text, subject)
	}
	return strings.Contains(subject, p.text)
}

// matcher is a SearchFilter prepared for evaluation.
type matcher struct {
	filter     SearchFilter
	include    []pattern
	exclude    []pattern
	includeExt map[string]bool
	excludeExt map[string]bool
}

func newMatcher(f SearchFilter) *matcher {
	m := &matcher{filter: f}
	for _, p := range f.Include {
		m.include = append(m.include, compilePattern(p, f.IgnoreCase))
	}
	for _, p := range f.Exclude {
		m.exclude = append(m.exclude, compilePattern(p, f.IgnoreCase))
	}
	m.includeExt = extensionSet(f.IncludeExtensions)
	m.excludeExt = extensionSet(f.ExcludeExtensions)
	return m
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		return nil
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

// evaluate applies the predicates in order and stops at the first
// rejection. rel is the slash-separated path below the root.
func (m *matcher) evaluate(e DirEntry, rel string) verdict {
	f := m.filter
	name := e.Name()

	if f.MaxDepth != nil && e.Depth > *f.MaxDepth {
		return prune
	}

	// Roots are named by the caller, so only their descendants are pruned
	// by name.
	if e.Depth > 0 && f.SkipHidden && isHidden(name) {
		return prune
	}
	for _, p := range m.exclude {
		if p.match(name, rel) {
			if e.Depth == 0 {
				return reject
			}
			return prune
		}
	}

	// Entries above the minimum depth are still descended into.
	if f.MinDepth != nil && e.Depth < *f.MinDepth {
		return reject
	}

	if len(m.include) > 0 && !matchAny(m.include, name, rel) {
		return reject
	}

	ext := strings.ToLower(filepath.Ext(name))
	if m.includeExt != nil && !m.includeExt[ext] {
		return reject
	}
	if m.excludeExt != nil && m.excludeExt[ext] {
		return reject
	}

	if f.Types != 0 && !f.Types.matches(e) {
		return reject
	}

	if f.MinSize != nil || f.MaxSize != nil {
		if e.Type != TypeRegular {
			return reject
		}
		if f.MinSize != nil && e.Size() < *f.MinSize {
			return reject
		}
		if f.MaxSize != nil && e.Size() > *f.MaxSize {
			return reject
		}
	}

	if f.needsTimes() {
		t, err := e.Times()
		if err != nil {
			return reject
		}
		if !f.Created.contains(t.Created) || !f.Changed.contains(t.Changed) || !f.Accessed.contains(t.Accessed) {
			return reject
		}
	}

	return accept
}

func matchAny(patterns []pattern, name, rel string) bool {
	for _, p := range patterns {
		if p.match(name, rel) {
			return true
		}
	}
	return false
}
