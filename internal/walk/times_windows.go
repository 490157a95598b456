//go:build windows

package walk

import (
	"io/fs"
	"syscall"
	"time"
)

func statTimes(_ string, info fs.FileInfo, _ bool) (Times, error) {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return modTimes(info), nil
	}
	return Times{
		Accessed: time.Unix(0, data.LastAccessTime.Nanoseconds()),
		Changed:  time.Unix(0, data.LastWriteTime.Nanoseconds()),
		Created:  time.Unix(0, data.CreationTime.Nanoseconds()),
	}, nil
}
