// Package pathutil turns user supplied paths into canonical absolute paths and
// renders them for display.
//
// Normalization is purely lexical: "." components are dropped, ".." pops the
// previous component and relative paths are anchored at a reference
// directory. Symlinks are never resolved, so the final component of a
// normalized path may itself be a symlink. Popping past the root is a no-op.
//
// Rendering converts a path into a display string, either in the native
// spelling of the platform or in POSIX style, where every separator becomes
// "/" and Windows prefixes are re-spelled:
//
//	C:\Users\me       -> C:/Users/me
//	\\server\share\x  -> /server/share/x
//
// Both the Unix and Windows formats are available on every platform. The
// format used by Render is chosen at build time.
package pathutil
