package walk

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TypeMask selects entry kinds. An entry passes when it matches any set bit.
type TypeMask uint8

const (
	MaskDirectory TypeMask = 1 << iota
	MaskFile
	MaskSymlink
	MaskPipe
	MaskSocket
	MaskExecutable
	MaskEmpty
)

var typeMaskNames = map[string]TypeMask{
	"d": MaskDirectory, "directory": MaskDirectory,
	"f": MaskFile, "file": MaskFile,
	"l": MaskSymlink, "symlink": MaskSymlink,
	"p": MaskPipe, "pipe": MaskPipe,
	"s": MaskSocket, "socket": MaskSocket,
	"x": MaskExecutable, "executable": MaskExecutable,
	"e": MaskEmpty, "empty": MaskEmpty,
}

// ParseTypeMask combines type names such as "f", "directory" or "x".
func ParseTypeMask(names []string) (TypeMask, error) {
	var mask TypeMask
	for _, name := range names {
		bit, ok := typeMaskNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return 0, &ConfigError{Field: "type", Reason: fmt.Sprintf("unknown type %q", name)}
		}
		mask |= bit
	}
	return mask, nil
}

func (m TypeMask) matches(e DirEntry) bool {
	switch {
	case m&MaskDirectory != 0 && e.Type == TypeDirectory,
		m&MaskFile != 0 && e.Type == TypeRegular,
		m&MaskSymlink != 0 && e.IsSymlink(),
		m&MaskPipe != 0 && e.Type == TypePipe,
		m&MaskSocket != 0 && e.Type == TypeSocket:
		return true
	}
	if m&MaskExecutable != 0 && e.IsExecutable() {
		return true
	}
	return m&MaskEmpty != 0 && e.IsEmpty()
}

// TimeRange bounds a timestamp. A zero field is unbounded; both bounds are
// exclusive.
type TimeRange struct {
	After  time.Time
	Before time.Time
}

// Set reports whether either bound is present.
func (r TimeRange) Set() bool {
	return !r.After.IsZero() || !r.Before.IsZero()
}

func (r TimeRange) contains(t time.Time) bool {
	if !r.After.IsZero() && !t.After(r.After) {
		return false
	}
	if !r.Before.IsZero() && !t.Before(r.Before) {
		return false
	}
	return true
}

// SearchFilter decides which entries a walk emits and which directories it
// descends into.
type SearchFilter struct {
	FollowSymlinks bool
	SkipHidden     bool
	IgnoreCase     bool

	// MinDepth and MaxDepth are unbounded when nil. Roots have depth 0.
	MinDepth *int
	MaxDepth *int

	// Include and Exclude hold glob patterns (containing any of "*?[{") or
	// plain substrings. Patterns with a "/" are matched against the
	// root-relative slash path, others against the entry name.
	Include []string
	Exclude []string

	// Extensions are compared case-insensitively, with or without the dot.
	IncludeExtensions []string
	ExcludeExtensions []string

	Types TypeMask

	// Size bounds are inclusive and only regular files satisfy them.
	MinSize *int64
	MaxSize *int64

	Created  TimeRange
	Changed  TimeRange
	Accessed TimeRange
}

// DefaultFilter skips hidden entries and sets no other bound.
func DefaultFilter() SearchFilter {
	return SearchFilter{SkipHidden: true}
}

// Bound returns a pointer to v, for the optional filter fields.
func Bound[T int | int64](v T) *T {
	return &v
}

// EpochSeconds converts an epoch-second threshold into a time.
func EpochSeconds(sec int64) time.Time {
	return time.Unix(sec, 0)
}

// Validate rejects contradicting bounds and malformed patterns.
func (f SearchFilter) Validate() error {
	if f.MinDepth != nil && *f.MinDepth < 0 {
		return &ConfigError{Field: "min_depth", Reason: "must be >= 0"}
	}
	if f.MaxDepth != nil && *f.MaxDepth < 0 {
		return &ConfigError{Field: "max_depth", Reason: "must be >= 0"}
	}
	if f.MinDepth != nil && f.MaxDepth != nil && *f.MinDepth > *f.MaxDepth {
		return &ConfigError{Field: "min_depth", Reason: fmt.Sprintf("%d is greater than max_depth %d", *f.MinDepth, *f.MaxDepth)}
	}
	if f.MinSize != nil && *f.MinSize < 0 {
		return &ConfigError{Field: "min_size", Reason: "must be >= 0"}
	}
	if f.MaxSize != nil && *f.MaxSize < 0 {
		return &ConfigError{Field: "max_size", Reason: "must be >= 0"}
	}
	if f.MinSize != nil && f.MaxSize != nil && *f.MinSize > *f.MaxSize {
		return &ConfigError{Field: "min_size", Reason: fmt.Sprintf("%d is greater than max_size %d", *f.MinSize, *f.MaxSize)}
	}

	ranges := []struct {
		field string
		r     TimeRange
	}{
		{"created", f.Created},
		{"changed", f.Changed},
		{"accessed", f.Accessed},
	}
	for _, tr := range ranges {
		if !tr.r.After.IsZero() && !tr.r.Before.IsZero() && !tr.r.After.Before(tr.r.Before) {
			return &ConfigError{Field: tr.field, Reason: "after bound is not earlier than before bound"}
		}
	}

	for _, p := range f.Include {
		if err := validatePattern(p); err != nil {
			return &ConfigError{Field: "include", Reason: err.Error()}
		}
	}
	for _, p := range f.Exclude {
		if err := validatePattern(p); err != nil {
			return &ConfigError{Field: "exclude", Reason: err.Error()}
		}
	}
	return nil
}

func (f SearchFilter) needsTimes() bool {
	return f.Created.Set() || f.Changed.Set() || f.Accessed.Set()
}

// ParseSize reads a byte count with an optional b, k, m, g or t suffix
// (powers of 1024).
func ParseSize(s string) (int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSuffix(s, "b")
	if s == "" {
		return 0, fmt.Errorf("invalid size %q", s)
	}

	multiplier := int64(1)
	switch s[len(s)-1] {
	case 'k':
		multiplier = 1 << 10
	case 'm':
		multiplier = 1 << 20
	case 'g':
		multiplier = 1 << 30
	case 't':
		multiplier = 1 << 40
	}
	if multiplier != 1 {
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return n * multiplier, nil
}
