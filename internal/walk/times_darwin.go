//go:build darwin

package walk

import (
	"io/fs"
	"time"

	"golang.org/x/sys/unix"
)

func statTimes(path string, _ fs.FileInfo, follow bool) (Times, error) {
	var st unix.Stat_t
	var err error
	if follow {
		err = unix.Stat(path, &st)
	} else {
		err = unix.Lstat(path, &st)
	}
	if err != nil {
		return Times{}, err
	}

	return Times{
		Accessed: time.Unix(st.Atim.Unix()),
		Changed:  time.Unix(st.Ctim.Unix()),
		Created:  time.Unix(st.Btim.Unix()),
	}, nil
}
