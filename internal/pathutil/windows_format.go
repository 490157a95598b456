package pathutil

import (
	"strings"
)

type windowsFormat struct{}

// WindowsFormat renders paths that use "\" or "/" as separators and may start
// with a drive letter, a UNC share or an extended-length prefix.
var WindowsFormat Format = windowsFormat{}

// windowsRoot holds both spellings of a parsed prefix.
type windowsRoot struct {
	native string
	posix  string
}

func isWindowsSeparator(c byte) bool {
	return c == '\\' || c == '/'
}

func stripWindowsSeparators(p string) string {
	for p != "" && isWindowsSeparator(p[0]) {
		p = p[1:]
	}
	return p
}

func (windowsFormat) Render(path string, style Style) string {
	if path == "" {
		return ""
	}

	root, rest := parseWindowsRoot(path)
	segments := strings.FieldsFunc(rest, func(r rune) bool {
		return r == '\\' || r == '/'
	})

	if style == StylePOSIX {
		out := root.posix + strings.Join(segments, "/")
		// Only "/" and drive roots keep their trailing separator.
		if len(out) > 1 && strings.HasSuffix(out, "/") && !(len(out) == 3 && out[1] == ':') {
			out = strings.TrimRight(out, "/")
		}
		return out
	}
	return root.native + strings.Join(segments, "\\")
}

// parseWindowsRoot splits path into its prefix and the remainder.
func parseWindowsRoot(path string) (windowsRoot, string) {
	// Extended-length (\\?\) and NT object namespace (\??\) prefixes.
	if len(path) >= 4 && path[0] == '\\' && (path[1] == '\\' || path[1] == '?') && path[2] == '?' && path[3] == '\\' {
		verbatim := path[:4]
		p := path[4:]
		if len(p) >= 4 && strings.EqualFold(p[:4], "UNC\\") {
			if server, share, rest, ok := parseUNC(p[4:]); ok {
				return windowsRoot{
					native: verbatim + "UNC\\" + server + "\\" + share + "\\",
					posix:  "/" + server + "/" + share + "/",
				}, rest
			}
		}
		if drive, ok := driveLetter(p); ok {
			return windowsRoot{
				native: verbatim + drive + ":\\",
				posix:  drive + ":/",
			}, p[2:]
		}
		name, rest, _ := strings.Cut(p, "\\")
		return windowsRoot{
			native: verbatim + name + "\\",
			posix:  "/" + name + "/",
		}, rest
	}

	// Device namespace, e.g. \\.\COM1.
	if len(path) >= 4 && isWindowsSeparator(path[0]) && isWindowsSeparator(path[1]) && path[2] == '.' && isWindowsSeparator(path[3]) {
		return windowsRoot{native: "\\\\.\\", posix: "/./"}, path[4:]
	}

	if drive, ok := driveLetter(path); ok {
		rest := path[2:]
		if rest != "" && isWindowsSeparator(rest[0]) {
			return windowsRoot{native: drive + ":\\", posix: drive + ":/"}, rest
		}
		// Drive-relative path such as C:foo.
		return windowsRoot{native: drive + ":", posix: drive + ":"}, rest
	}

	if len(path) >= 2 && isWindowsSeparator(path[0]) && isWindowsSeparator(path[1]) {
		if server, share, rest, ok := parseUNC(path[2:]); ok {
			return windowsRoot{
				native: "\\\\" + server + "\\" + share + "\\",
				posix:  "/" + server + "/" + share + "/",
			}, rest
		}
	}

	if isWindowsSeparator(path[0]) {
		return windowsRoot{native: "\\", posix: "/"}, path
	}
	return windowsRoot{}, path
}

// driveLetter returns the upper-cased drive letter when p starts with one.
func driveLetter(p string) (string, bool) {
	if len(p) < 2 || p[1] != ':' {
		return "", false
	}
	upper := p[0] &^ 0x20
	if upper < 'A' || upper > 'Z' {
		return "", false
	}
	return string(upper), true
}

// parseUNC splits "server\share\rest". Both server and share must be
// non-empty.
func parseUNC(p string) (server, share, rest string, ok bool) {
	serverLen := strings.IndexAny(p, "\\/")
	if serverLen < 1 {
		return "", "", "", false
	}
	server = p[:serverLen]
	remainder := p[serverLen+1:]
	shareLen := strings.IndexAny(remainder, "\\/")
	switch {
	case shareLen == -1:
		share, rest = remainder, ""
	case shareLen == 0:
		return "", "", "", false
	default:
		share, rest = remainder[:shareLen], stripWindowsSeparators(remainder[shareLen:])
	}
	if share == "" {
		return "", "", "", false
	}
	return server, share, rest, true
}
