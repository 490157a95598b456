// Package walk enumerates directory trees.
//
// A Walker is built from one or more roots and a SearchFilter and yields a
// lazy, single-pass sequence of DirEntry values. Every call to Walk starts a
// fresh traversal.
//
//	w, err := walk.New([]string{"."}, walk.DefaultFilter(), walk.WithThreads(4))
//	if err != nil {
//	    return err // ErrInvalidConfiguration
//	}
//	for entry, err := range w.Walk(ctx) {
//	    var entryErr *walk.EntryError
//	    if errors.As(err, &entryErr) {
//	        continue // one unreadable entry, the walk goes on
//	    }
//	    if err != nil {
//	        return err // unreadable root, the walk is over
//	    }
//	    fmt.Println(entry.Path)
//	}
//
// # Filtering
//
// Predicates run in a fixed order and stop at the first rejection: maximum
// depth, hidden names, exclude patterns, minimum depth, include patterns,
// extensions, entry types, size bounds and timestamp bounds. A hidden or
// excluded directory is not descended into, whatever its depth; the other
// predicates only decide whether an entry is emitted. Exclude patterns
// therefore win over include patterns.
//
// # Sequential and parallel walks
//
// With one thread the tree is walked depth-first on the calling goroutine and
// children are visited in lexical order. With more threads directories are
// expanded by a fixed pool of workers. Each worker keeps a private queue and
// hands surplus directories to idle workers through a channel; discovered
// entries reach the consumer through a single result channel. Parallel walks
// produce the same set of entries as sequential ones, in no particular
// order.
//
// # Symlinks
//
// Symlinks are reported as such unless FollowSymlinks is set. When following,
// every expanded directory carries the canonical paths of its open ancestors;
// a link that leads back into that chain is emitted but not expanded, and an
// EntryError wrapping ErrSymlinkLoop is reported.
package walk
