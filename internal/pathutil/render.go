package pathutil

import (
	"fmt"
	"strings"
)

// Style selects how Render spells a path.
type Style int

const (
	// StyleNative keeps the separators and prefixes of the platform.
	StyleNative Style = iota
	// StylePOSIX uses "/" everywhere and re-spells Windows prefixes.
	StylePOSIX
)

func (s Style) String() string {
	switch s {
	case StyleNative:
		return "native"
	case StylePOSIX:
		return "posix"
	default:
		return "unknown"
	}
}

// ParseStyle converts "native" or "posix" (case-insensitive) to a Style.
func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "native":
		return StyleNative, nil
	case "posix":
		return StylePOSIX, nil
	default:
		return StyleNative, fmt.Errorf("invalid path style %q, must be one of: native, posix", s)
	}
}

// Format renders path strings of one platform family.
type Format interface {
	Render(path string, style Style) string
}

// Render renders path using the format of the platform the binary was built
// for.
func Render(path string, style Style) string {
	return LocalFormat.Render(path, style)
}

type unixFormat struct{}

// UnixFormat renders "/"-separated paths. Both styles produce the same result.
var UnixFormat Format = unixFormat{}

func (unixFormat) Render(path string, _ Style) string {
	if path == "" {
		return ""
	}
	trimmed := strings.TrimRight(path, "/")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
