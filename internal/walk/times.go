package walk

import "io/fs"

func modTimes(info fs.FileInfo) Times {
	if info == nil {
		return Times{}
	}
	m := info.ModTime()
	return Times{Accessed: m, Changed: m, Created: m}
}
