package walk

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is matched by every *ConfigError.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSymlinkLoop is reported when a followed symlink leads back into the
	// directory chain being expanded.
	ErrSymlinkLoop = errors.New("symlink loop")
)

// ConfigError rejects a walk before it starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// EntryError reports one entry that could not be read. It never ends a walk.
type EntryError struct {
	Path string
	Op   string
	Err  error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// RootError reports a root that could not be read. It ends the walk.
type RootError struct {
	Path string
	Op   string
	Err  error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("root %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *RootError) Unwrap() error {
	return e.Err
}

// IsEntryError reports whether err is a non-fatal per-entry failure.
func IsEntryError(err error) bool {
	var entryErr *EntryError
	return errors.As(err, &entryErr)
}

var errEmptyPattern = errors.New("empty pattern")

func errBadPattern(p string) error {
	return fmt.Errorf("malformed glob pattern %q", p)
}
