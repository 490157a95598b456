package walk

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/show/internal/execpath"
	"github.com/harrison/show/internal/logger"
)

// buildTree creates:
//
//	a.txt        (5 bytes)
//	b.go         (empty)
//	.dot.txt
//	.hidden/inner.txt
//	empty/
//	sub/c.txt    (100 bytes)
//	sub/deep/d.md
//	sub/deep/deeper/e.txt
func buildTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	files := map[string]int{
		"a.txt":                 5,
		"b.go":                  0,
		".dot.txt":              1,
		".hidden/inner.txt":     1,
		"sub/c.txt":             100,
		"sub/deep/d.md":         1,
		"sub/deep/deeper/e.txt": 1,
	}
	for rel, size := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, make([]byte, size), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(root, "empty"), 0o755))
	return root
}

// relNames returns the sorted slash paths of entries below root; the root
// itself is ".".
func relNames(t *testing.T, root string, entries []DirEntry) []string {
	t.Helper()
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		rel, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(rel))
	}
	sort.Strings(names)
	return names
}

func collect(t *testing.T, root string, filter SearchFilter, opts ...Option) *Result {
	t.Helper()
	w, err := New([]string{root}, filter, opts...)
	require.NoError(t, err)
	res, err := w.Collect(context.Background())
	require.NoError(t, err)
	return res
}

func TestNew_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		roots  []string
		filter SearchFilter
		opts   []Option
		field  string
	}{
		{"no roots", nil, SearchFilter{}, nil, "roots"},
		{"min depth above max", []string{"."}, SearchFilter{MinDepth: Bound(3), MaxDepth: Bound(1)}, nil, "min_depth"},
		{"negative max depth", []string{"."}, SearchFilter{MaxDepth: Bound(-1)}, nil, "max_depth"},
		{"min size above max", []string{"."}, SearchFilter{MinSize: Bound[int64](10), MaxSize: Bound[int64](1)}, nil, "min_size"},
		{"inverted window", []string{"."}, SearchFilter{Changed: TimeRange{After: EpochSeconds(200), Before: EpochSeconds(100)}}, nil, "changed"},
		{"malformed glob", []string{"."}, SearchFilter{Include: []string{"[abc"}}, nil, "include"},
		{"empty exclude", []string{"."}, SearchFilter{Exclude: []string{""}}, nil, "exclude"},
		{"negative threads", []string{"."}, SearchFilter{}, []Option{WithThreads(-2)}, "threads"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := New(tt.roots, tt.filter, tt.opts...)
			require.Error(t, err)
			assert.Nil(t, w)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestNew_ThreadsDefault(t *testing.T) {
	w, err := New([]string{"."}, DefaultFilter(), WithThreads(0))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, w.Threads(), 1)

	w, err = New([]string{"."}, DefaultFilter())
	require.NoError(t, err)
	assert.Equal(t, 1, w.Threads())
}

func TestNew_Defaults(t *testing.T) {
	w, err := New([]string{"."}, DefaultFilter(), WithLogger(nil), WithProbe(nil))
	require.NoError(t, err)
	assert.IsType(t, &logger.NoOpLogger{}, w.logger)
	assert.IsType(t, execpath.DefaultProbe(), w.Probe())
}

// namedProbe accepts files by base name, whatever their permissions.
type namedProbe map[string]bool

func (p namedProbe) IsExecutable(path string) bool { return p[filepath.Base(path)] }
func (p namedProbe) Extensions() []string          { return nil }
func (p namedProbe) FoldName(name string) string   { return name }

func TestWalk_ExecutableTypeUsesWalkerProbe(t *testing.T) {
	root := buildTree(t)
	probe := namedProbe{"a.txt": true, "d.md": true, "deep": true}

	for _, threads := range []int{1, 4} {
		res := collect(t, root, SearchFilter{Types: MaskExecutable}, WithProbe(probe), WithThreads(threads))
		assert.Equal(t, []string{"a.txt", "sub/deep/d.md"}, relNames(t, root, res.Entries), "threads=%d", threads)
		for _, e := range res.Entries {
			assert.True(t, e.IsExecutable(), e.Path)
		}
	}
}

func TestWalk_MaxDepthOne(t *testing.T) {
	root := buildTree(t)
	filter := SearchFilter{MaxDepth: Bound(1)}

	res := collect(t, root, filter)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []string{".", ".dot.txt", ".hidden", "a.txt", "b.go", "empty", "sub"}, relNames(t, root, res.Entries))
	for _, e := range res.Entries {
		assert.LessOrEqual(t, e.Depth, 1)
	}
}

func TestWalk_MinDepthStillDescends(t *testing.T) {
	root := buildTree(t)
	filter := DefaultFilter()
	filter.MinDepth = Bound(3)

	res := collect(t, root, filter)
	assert.Equal(t, []string{"sub/deep/d.md", "sub/deep/deeper", "sub/deep/deeper/e.txt"}, relNames(t, root, res.Entries))
}

func TestWalk_MinDepthKeepsPruning(t *testing.T) {
	root := buildTree(t)

	hidden := DefaultFilter()
	hidden.MinDepth = Bound(2)

	excluded := DefaultFilter()
	excluded.MinDepth = Bound(2)
	excluded.Exclude = []string{"deep"}

	tests := []struct {
		name   string
		filter SearchFilter
		want   []string
	}{
		{"hidden directory", hidden, []string{"sub/c.txt", "sub/deep", "sub/deep/d.md", "sub/deep/deeper", "sub/deep/deeper/e.txt"}},
		{"excluded directory", excluded, []string{"sub/c.txt"}},
	}

	for _, tt := range tests {
		for _, threads := range []int{1, 4} {
			t.Run(tt.name, func(t *testing.T) {
				res := collect(t, root, tt.filter, WithThreads(threads))
				assert.Equal(t, tt.want, relNames(t, root, res.Entries), "threads=%d", threads)
			})
		}
	}
}

func TestWalk_SkipHiddenSameSetInBothModes(t *testing.T) {
	root := buildTree(t)

	sequential := collect(t, root, DefaultFilter(), WithThreads(1))
	parallel := collect(t, root, DefaultFilter(), WithThreads(4))

	want := []string{".", "a.txt", "b.go", "empty", "sub", "sub/c.txt", "sub/deep", "sub/deep/d.md", "sub/deep/deeper", "sub/deep/deeper/e.txt"}
	assert.Equal(t, want, relNames(t, root, sequential.Entries))
	assert.Equal(t, want, relNames(t, root, parallel.Entries))

	for _, e := range parallel.Entries {
		if e.Depth > 0 {
			assert.False(t, e.IsHidden(), e.Path)
		}
	}
}

func TestWalk_SequentialOrderIsDepthFirst(t *testing.T) {
	root := buildTree(t)
	res := collect(t, root, DefaultFilter())

	var got []string
	for _, e := range res.Entries {
		rel, err := filepath.Rel(root, e.Path)
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{".", "a.txt", "b.go", "empty", "sub", "sub/c.txt", "sub/deep", "sub/deep/d.md", "sub/deep/deeper", "sub/deep/deeper/e.txt"}, got)
}

func TestWalk_ShowHidden(t *testing.T) {
	root := buildTree(t)
	res := collect(t, root, SearchFilter{Include: []string{"inner"}})
	assert.Equal(t, []string{".hidden/inner.txt"}, relNames(t, root, res.Entries))
}

func TestWalk_Patterns(t *testing.T) {
	root := buildTree(t)

	tests := []struct {
		name   string
		filter SearchFilter
		want   []string
	}{
		{
			name:   "glob on name",
			filter: SearchFilter{SkipHidden: true, Include: []string{"*.txt"}},
			want:   []string{"a.txt", "sub/c.txt", "sub/deep/deeper/e.txt"},
		},
		{
			name:   "substring",
			filter: SearchFilter{SkipHidden: true, Include: []string{"ee"}},
			want:   []string{"sub/deep", "sub/deep/deeper"},
		},
		{
			name:   "glob on relative path",
			filter: SearchFilter{SkipHidden: true, Include: []string{"sub/**/*.txt"}},
			want:   []string{"sub/c.txt", "sub/deep/deeper/e.txt"},
		},
		{
			name:   "ignore case",
			filter: SearchFilter{SkipHidden: true, IgnoreCase: true, Include: []string{"*.TXT"}},
			want:   []string{"a.txt", "sub/c.txt", "sub/deep/deeper/e.txt"},
		},
		{
			name:   "case sensitive by default",
			filter: SearchFilter{SkipHidden: true, Include: []string{"*.TXT"}},
			want:   []string{},
		},
		{
			name:   "exclude prunes subtree",
			filter: SearchFilter{SkipHidden: true, Exclude: []string{"deep"}},
			want:   []string{".", "a.txt", "b.go", "empty", "sub", "sub/c.txt"},
		},
		{
			name:   "exclude wins over include",
			filter: SearchFilter{SkipHidden: true, Include: []string{"*.txt"}, Exclude: []string{"c.*"}},
			want:   []string{"a.txt", "sub/deep/deeper/e.txt"},
		},
		{
			name:   "extensions",
			filter: SearchFilter{SkipHidden: true, IncludeExtensions: []string{"md", ".GO"}},
			want:   []string{"b.go", "sub/deep/d.md"},
		},
		{
			name:   "excluded extensions",
			filter: SearchFilter{SkipHidden: true, Types: MaskFile, ExcludeExtensions: []string{"txt"}},
			want:   []string{"b.go", "sub/deep/d.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := collect(t, root, tt.filter)
			assert.Equal(t, tt.want, relNames(t, root, res.Entries))
		})
	}
}

func TestWalk_Types(t *testing.T) {
	root := buildTree(t)

	dirs := collect(t, root, SearchFilter{SkipHidden: true, Types: MaskDirectory})
	assert.Equal(t, []string{".", "empty", "sub", "sub/deep", "sub/deep/deeper"}, relNames(t, root, dirs.Entries))

	empty := collect(t, root, SearchFilter{SkipHidden: true, Types: MaskEmpty})
	assert.Equal(t, []string{"b.go", "empty"}, relNames(t, root, empty.Entries))
}

func TestWalk_SizeBounds(t *testing.T) {
	root := buildTree(t)

	res := collect(t, root, SearchFilter{SkipHidden: true, MinSize: Bound[int64](5)})
	assert.Equal(t, []string{"a.txt", "sub/c.txt"}, relNames(t, root, res.Entries))

	res = collect(t, root, SearchFilter{SkipHidden: true, MinSize: Bound[int64](1), MaxSize: Bound[int64](5)})
	assert.Equal(t, []string{"a.txt", "sub/deep/d.md", "sub/deep/deeper/e.txt"}, relNames(t, root, res.Entries))
}

func TestWalk_TimeBounds(t *testing.T) {
	root := buildTree(t)
	hourAgo := time.Now().Add(-time.Hour)

	res := collect(t, root, SearchFilter{SkipHidden: true, Changed: TimeRange{After: hourAgo}})
	assert.Len(t, res.Entries, 10)

	res = collect(t, root, SearchFilter{SkipHidden: true, Changed: TimeRange{Before: EpochSeconds(1)}})
	assert.Empty(t, res.Entries)

	for _, e := range collect(t, root, SearchFilter{SkipHidden: true, Created: TimeRange{After: EpochSeconds(1)}}).Entries {
		times, err := e.Times()
		require.NoError(t, err)
		assert.False(t, times.Created.IsZero(), e.Path)
	}
}

func TestWalk_MissingRootIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	for _, threads := range []int{1, 4} {
		w, err := New([]string{missing}, DefaultFilter(), WithThreads(threads))
		require.NoError(t, err)

		res, err := w.Collect(context.Background())
		require.Error(t, err)
		assert.False(t, IsEntryError(err))

		var rootErr *RootError
		require.ErrorAs(t, err, &rootErr)
		assert.Equal(t, missing, rootErr.Path)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Empty(t, res.Entries)
	}
}

func TestWalk_FileRoot(t *testing.T) {
	root := buildTree(t)
	file := filepath.Join(root, "a.txt")

	res := collect(t, file, DefaultFilter())
	require.Len(t, res.Entries, 1)
	assert.Equal(t, file, res.Entries[0].Path)
	assert.Equal(t, TypeRegular, res.Entries[0].Type)
	assert.Equal(t, 0, res.Entries[0].Depth)
}

func TestWalk_MultipleRoots(t *testing.T) {
	a, b := buildTree(t), buildTree(t)

	w, err := New([]string{a, b}, SearchFilter{SkipHidden: true, Include: []string{"e.txt"}}, WithThreads(3))
	require.NoError(t, err)
	res, err := w.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Entries, 2)

	paths := []string{res.Entries[0].Path, res.Entries[1].Path}
	sort.Strings(paths)
	want := []string{filepath.Join(a, "sub", "deep", "deeper", "e.txt"), filepath.Join(b, "sub", "deep", "deeper", "e.txt")}
	sort.Strings(want)
	assert.Equal(t, want, paths)
}

func TestWalk_EarlyBreak(t *testing.T) {
	root := buildTree(t)

	for _, threads := range []int{1, 4} {
		w, err := New([]string{root}, DefaultFilter(), WithThreads(threads))
		require.NoError(t, err)

		count := 0
		for _, err := range w.Walk(context.Background()) {
			require.NoError(t, err)
			count++
			if count == 3 {
				break
			}
		}
		assert.Equal(t, 3, count)
	}
}

func TestWalk_CancelledContext(t *testing.T) {
	root := buildTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, threads := range []int{1, 4} {
		w, err := New([]string{root}, DefaultFilter(), WithThreads(threads))
		require.NoError(t, err)

		_, err = w.Collect(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestWalk_RestartsFromScratch(t *testing.T) {
	root := buildTree(t)
	w, err := New([]string{root}, DefaultFilter())
	require.NoError(t, err)

	first, err := w.Collect(context.Background())
	require.NoError(t, err)
	second, err := w.Collect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, relNames(t, root, first.Entries), relNames(t, root, second.Entries))
}

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) LogDebug(message string) {
	l.messages = append(l.messages, message)
}

func TestWalk_LogsExpansions(t *testing.T) {
	root := buildTree(t)
	log := &recordingLogger{}

	collect(t, root, SearchFilter{SkipHidden: true, MaxDepth: Bound(0)}, WithLogger(log))
	assert.Empty(t, log.messages, "a depth-0 walk expands nothing")

	collect(t, root, SearchFilter{SkipHidden: true, MaxDepth: Bound(1)}, WithLogger(log))
	assert.Equal(t, []string{"expanding " + root}, log.messages)
}
