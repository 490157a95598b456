//go:build !windows

package pathutil

// LocalFormat is the format used by Render.
var LocalFormat = UnixFormat
