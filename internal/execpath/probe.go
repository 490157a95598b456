// Package execpath locates executables on the search path.
//
// Whether a file counts as executable is decided by a Probe. Exactly one probe
// is active per target platform and DefaultProbe returns it: permission bits
// everywhere except Windows, where the extension list in PATHEXT and the
// image type reported by the system are used instead.
package execpath

import (
	"os"
	"path/filepath"
	"strings"
)

// Probe decides whether a path is an executable file and how names are
// spelled when candidates are built.
type Probe interface {
	// IsExecutable reports whether path is a regular file that can be run.
	IsExecutable(path string) bool
	// Extensions returns the suffixes tried, in order, for names that carry
	// no extension. A nil result means names are used as given.
	Extensions() []string
	// FoldName returns the spelling of name used to build candidates.
	FoldName(name string) string
}

// PermissionProbe accepts regular files with at least one execute bit set.
type PermissionProbe struct{}

// IsExecutable follows symlinks, so a link to an executable is executable.
func (PermissionProbe) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

// Extensions returns nil: the name is looked up verbatim.
func (PermissionProbe) Extensions() []string {
	return nil
}

// FoldName returns name unchanged. Permission-bit platforms use
// case-sensitive filesystems.
func (PermissionProbe) FoldName(name string) string {
	return name
}

// defaultPathExt is used when PATHEXT is unset, matching cmd.exe.
const defaultPathExt = ".com;.exe;.bat;.cmd"

// ExtensionProbe accepts regular files whose extension is in Exts. Files
// without an extension are accepted when IsImage reports them as binary
// executable images.
type ExtensionProbe struct {
	Exts    []string
	IsImage func(path string) bool
}

// NewExtensionProbe builds a probe from a PATHEXT style list.
func NewExtensionProbe(pathExt string, isImage func(string) bool) *ExtensionProbe {
	return &ExtensionProbe{
		Exts:    ParsePathExt(pathExt),
		IsImage: isImage,
	}
}

// ParsePathExt splits a ";"-separated extension list. Entries are
// lower-cased and given a leading dot; empty entries are dropped. An empty
// list falls back to the cmd.exe default.
func ParsePathExt(pathExt string) []string {
	if strings.TrimSpace(pathExt) == "" {
		pathExt = defaultPathExt
	}

	var exts []string
	for _, e := range strings.Split(pathExt, ";") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		exts = append(exts, e)
	}
	return exts
}

func (p *ExtensionProbe) IsExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	if ext := filepath.Ext(path); ext != "" {
		for _, e := range p.Exts {
			if strings.EqualFold(ext, e) {
				return true
			}
		}
		return false
	}

	if p.IsImage == nil {
		return false
	}
	return p.IsImage(path)
}

func (p *ExtensionProbe) Extensions() []string {
	return p.Exts
}

// FoldName lower-cases name; extension platforms match names
// case-insensitively.
func (p *ExtensionProbe) FoldName(name string) string {
	return strings.ToLower(name)
}
