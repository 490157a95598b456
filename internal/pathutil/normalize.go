package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// IOError is returned when the reference directory needed to anchor a
// relative path cannot be obtained.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Normalize returns the absolute, lexically normalized form of raw. Relative
// paths are anchored at cwd, which is expected to be absolute. The filesystem
// is never consulted.
func Normalize(raw, cwd string) string {
	root, rest, rooted := splitRoot(raw)
	if rooted {
		return join(root, push(nil, rest))
	}

	root, cwdRest, _ := splitRoot(cwd)
	segments := push(nil, cwdRest)
	return join(root, push(segments, raw))
}

// IsRooted reports whether p carries a volume name or a leading separator.
func IsRooted(p string) bool {
	_, _, rooted := splitRoot(p)
	return rooted
}

// splitRoot separates the volume name and leading separators from p. A leading
// run of separators is folded into a single one.
func splitRoot(p string) (root, rest string, rooted bool) {
	vol := filepath.VolumeName(p)
	rest = p[len(vol):]

	i := 0
	for i < len(rest) && os.IsPathSeparator(rest[i]) {
		i++
	}

	root = vol
	if i > 0 {
		root += string(filepath.Separator)
	}
	return root, rest[i:], vol != "" || i > 0
}

// push applies the components of p to segments from left to right.
func push(segments []string, p string) []string {
	for _, c := range components(p) {
		switch c {
		case ".":
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, c)
		}
	}
	return segments
}

func components(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r < utf8.RuneSelf && os.IsPathSeparator(uint8(r))
	})
}

func join(root string, segments []string) string {
	if root == "" && len(segments) == 0 {
		return "."
	}
	return root + strings.Join(segments, string(filepath.Separator))
}

// Normalizer anchors relative paths at the directory reported by Getwd.
type Normalizer struct {
	Getwd func() (string, error)
}

// NewNormalizer returns a Normalizer that uses the process working directory.
func NewNormalizer() *Normalizer {
	return &Normalizer{Getwd: os.Getwd}
}

// Abs normalizes raw. The working directory is only looked up when raw is
// relative; failing to obtain it is the only error Abs returns.
func (n *Normalizer) Abs(raw string) (string, error) {
	if IsRooted(raw) {
		return Normalize(raw, ""), nil
	}

	getwd := n.Getwd
	if getwd == nil {
		getwd = os.Getwd
	}
	cwd, err := getwd()
	if err != nil {
		return "", &IOError{Op: "getwd", Err: err}
	}
	return Normalize(raw, cwd), nil
}

// Abs normalizes raw against the process working directory.
func Abs(raw string) (string, error) {
	return NewNormalizer().Abs(raw)
}
