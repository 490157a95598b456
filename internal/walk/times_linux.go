//go:build linux

package walk

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func statTimes(path string, info fs.FileInfo, follow bool) (Times, error) {
	flags := unix.AT_STATX_DONT_SYNC
	if !follow {
		flags |= unix.AT_SYMLINK_NOFOLLOW
	}

	var stx unix.Statx_t
	for {
		err := unix.Statx(unix.AT_FDCWD, path, flags, unix.STATX_ATIME|unix.STATX_CTIME|unix.STATX_BTIME, &stx)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return Times{}, err
		}
		break
	}

	t := Times{
		Accessed: statxTime(stx.Atime),
		Changed:  statxTime(stx.Ctime),
		Created:  info.ModTime(),
	}
	// Not every filesystem records a birth time.
	if stx.Mask&unix.STATX_BTIME != 0 {
		t.Created = statxTime(stx.Btime)
	}
	return t, nil
}

func statxTime(ts unix.StatxTimestamp) time.Time {
	return time.Unix(ts.Sec, int64(ts.Nsec))
}
