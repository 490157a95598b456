package walk

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/show/internal/execpath"
)

// FileType classifies a directory entry.
type FileType int

const (
	TypeDirectory FileType = iota
	TypeRegular
	TypeSymlink
	TypePipe
	TypeSocket
	TypeOther
)

func (t FileType) String() string {
	switch t {
	case TypeDirectory:
		return "directory"
	case TypeRegular:
		return "file"
	case TypeSymlink:
		return "symlink"
	case TypePipe:
		return "pipe"
	case TypeSocket:
		return "socket"
	default:
		return "other"
	}
}

// FileTypeOf classifies a file mode.
func FileTypeOf(mode fs.FileMode) FileType {
	switch {
	case mode.IsDir():
		return TypeDirectory
	case mode.IsRegular():
		return TypeRegular
	case mode&fs.ModeSymlink != 0:
		return TypeSymlink
	case mode&fs.ModeNamedPipe != 0:
		return TypePipe
	case mode&fs.ModeSocket != 0:
		return TypeSocket
	default:
		return TypeOther
	}
}

// Times holds the timestamps of an entry. Fields the platform cannot report
// fall back to the modification time.
type Times struct {
	Accessed time.Time
	Changed  time.Time
	Created  time.Time
}

// DirEntry is one filesystem object visited during a walk.
type DirEntry struct {
	// Path is the root joined with the names leading to the entry.
	Path string
	Type FileType
	// Depth is 0 for roots.
	Depth int
	// FollowedLink is set when Path is a symlink and Info describes its
	// target.
	FollowedLink bool
	Info         fs.FileInfo

	times *Times
	probe execpath.Probe
}

// Name returns the last element of Path.
func (e DirEntry) Name() string {
	return filepath.Base(e.Path)
}

func (e DirEntry) IsDir() bool {
	return e.Type == TypeDirectory
}

// IsSymlink reports whether Path is a symlink, followed or not.
func (e DirEntry) IsSymlink() bool {
	return e.FollowedLink || e.Type == TypeSymlink
}

// IsHidden reports whether the entry name starts with a dot.
func (e DirEntry) IsHidden() bool {
	return isHidden(e.Name())
}

func (e DirEntry) Size() int64 {
	if e.Info == nil {
		return 0
	}
	return e.Info.Size()
}

// IsExecutable applies the walker's executable check to regular files.
// Entries built outside a walk use the platform check.
func (e DirEntry) IsExecutable() bool {
	if e.Type != TypeRegular {
		return false
	}
	probe := e.probe
	if probe == nil {
		probe = execpath.DefaultProbe()
	}
	return probe.IsExecutable(e.Path)
}

// IsEmpty reports zero-length regular files and directories without
// children.
func (e DirEntry) IsEmpty() bool {
	switch e.Type {
	case TypeRegular:
		return e.Size() == 0
	case TypeDirectory:
		f, err := os.Open(e.Path)
		if err != nil {
			return false
		}
		defer f.Close()
		_, err = f.Readdirnames(1)
		return errors.Is(err, io.EOF)
	default:
		return false
	}
}

// Times returns the timestamps captured during the walk, or reads them now
// when the walk did not need them.
func (e DirEntry) Times() (Times, error) {
	if e.times != nil {
		return *e.times, nil
	}
	return statTimes(e.Path, e.Info, e.FollowedLink)
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// newEntry reads the metadata of path. Symlinks are resolved when follow is
// set; a dangling link is reported as a symlink.
func newEntry(path string, depth int, follow, needTimes bool) (DirEntry, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return DirEntry{}, err
	}

	followed := false
	if follow && info.Mode()&fs.ModeSymlink != 0 {
		if target, err := os.Stat(path); err == nil {
			info = target
			followed = true
		}
	}

	e := DirEntry{
		Path:         path,
		Type:         FileTypeOf(info.Mode()),
		Depth:        depth,
		FollowedLink: followed,
		Info:         info,
	}

	if needTimes {
		t, err := statTimes(path, info, followed)
		if err != nil {
			return DirEntry{}, err
		}
		e.times = &t
	}
	return e, nil
}
