package walk

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/harrison/show/internal/execpath"
	"github.com/harrison/show/internal/logger"
)

// Logger receives diagnostic messages from a walk.
type Logger interface {
	LogDebug(message string)
}

// Option configures a Walker.
type Option func(*Walker)

// WithThreads sets the number of expansion workers. 1 walks sequentially
// on the calling goroutine, 0 uses GOMAXPROCS.
func WithThreads(n int) Option {
	return func(w *Walker) {
		w.threads = n
	}
}

// WithLogger routes walk diagnostics to l.
func WithLogger(l Logger) Option {
	return func(w *Walker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithProbe replaces the platform executable check used by the
// executable type filter.
func WithProbe(p execpath.Probe) Option {
	return func(w *Walker) {
		if p != nil {
			w.probe = p
		}
	}
}

// Walker enumerates the subtrees below a set of roots.
type Walker struct {
	roots   []string
	filter  SearchFilter
	matcher *matcher
	threads int
	logger  Logger
	probe   execpath.Probe
}

// Result holds everything a walk produced.
type Result struct {
	Entries []DirEntry
	// Errors are the non-fatal per-entry failures, in the order seen.
	Errors []error
}

// New validates the filter and prepares a walk over roots.
func New(roots []string, filter SearchFilter, opts ...Option) (*Walker, error) {
	if len(roots) == 0 {
		return nil, &ConfigError{Field: "roots", Reason: "at least one root is required"}
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	w := &Walker{
		roots:   append([]string(nil), roots...),
		filter:  filter,
		matcher: newMatcher(filter),
		threads: 1,
		logger:  logger.NewNoOpLogger(),
		probe:   execpath.DefaultProbe(),
	}
	for _, opt := range opts {
		opt(w)
	}

	if w.threads < 0 {
		return nil, &ConfigError{Field: "threads", Reason: fmt.Sprintf("%d is negative", w.threads)}
	}
	if w.threads == 0 {
		w.threads = runtime.GOMAXPROCS(0)
	}
	return w, nil
}

// Probe returns the executable check applied to entries.
func (w *Walker) Probe() execpath.Probe {
	return w.probe
}

// Threads returns the resolved worker count.
func (w *Walker) Threads() int {
	return w.threads
}

// Walk returns a single-pass sequence of accepted entries. Errors are
// *EntryError values, which leave the walk running, or a *RootError or
// context error, which end it. Each call walks from scratch.
func (w *Walker) Walk(ctx context.Context) iter.Seq2[DirEntry, error] {
	if w.threads <= 1 {
		return w.walkSequential(ctx)
	}
	return w.walkParallel(ctx)
}

// Collect runs the walk to completion. The returned error is the fatal one,
// if any; per-entry errors are kept in the result.
func (w *Walker) Collect(ctx context.Context) (*Result, error) {
	result := &Result{
		Entries: make([]DirEntry, 0),
		Errors:  make([]error, 0),
	}
	for entry, err := range w.Walk(ctx) {
		if err != nil {
			if IsEntryError(err) {
				result.Errors = append(result.Errors, err)
				continue
			}
			return result, err
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// ancestor is one link of the canonical directory chain above a task.
type ancestor struct {
	path   string
	parent *ancestor
}

func (a *ancestor) contains(p string) bool {
	for ; a != nil; a = a.parent {
		if a.path == p {
			return true
		}
	}
	return false
}

// dirTask is a directory waiting to be expanded.
type dirTask struct {
	path  string
	rel   string
	depth int
	chain *ancestor
}

// step is the outcome of visiting one path.
type step struct {
	entry DirEntry
	emit  bool
	errs  []error
	next  *dirTask
}

func isFatal(err error) bool {
	var rootErr *RootError
	return errors.As(err, &rootErr)
}

// visit reads one path, filters it and decides whether it is expanded.
func (w *Walker) visit(p, rel string, depth int, chain *ancestor) step {
	// Roots are always resolved so a link named on the command line is walked.
	follow := w.filter.FollowSymlinks || depth == 0

	entry, err := newEntry(p, depth, follow, w.filter.needsTimes())
	if err != nil {
		if depth == 0 {
			return step{errs: []error{&RootError{Path: p, Op: "lstat", Err: err}}}
		}
		return step{errs: []error{&EntryError{Path: p, Op: "lstat", Err: err}}}
	}
	entry.probe = w.probe

	v := w.matcher.evaluate(entry, rel)
	s := step{entry: entry, emit: v == accept}

	if v == prune || entry.Type != TypeDirectory {
		return s
	}
	if limit := w.filter.MaxDepth; limit != nil && depth >= *limit {
		return s
	}

	task := &dirTask{path: p, rel: rel, depth: depth, chain: chain}
	if w.filter.FollowSymlinks {
		canonical, err := filepath.EvalSymlinks(p)
		if err != nil {
			s.errs = append(s.errs, &EntryError{Path: p, Op: "resolve", Err: err})
			return s
		}
		if chain.contains(canonical) {
			w.logger.LogDebug(fmt.Sprintf("not descending into %s: %s is already open", p, canonical))
			s.errs = append(s.errs, &EntryError{Path: p, Op: "follow", Err: ErrSymlinkLoop})
			return s
		}
		task.chain = &ancestor{path: canonical, parent: chain}
	}
	s.next = task
	return s
}

// readDir lists task in name order. Names read before a failure are still
// returned with a per-entry error; failing to read a root is fatal.
func (w *Walker) readDir(task dirTask) ([]string, error) {
	w.logger.LogDebug("expanding " + task.path)

	entries, err := os.ReadDir(task.path)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	if err != nil {
		if task.depth == 0 {
			return nil, &RootError{Path: task.path, Op: "readdir", Err: err}
		}
		return names, &EntryError{Path: task.path, Op: "readdir", Err: err}
	}
	return names, nil
}

func (w *Walker) visitChild(task dirTask, name string) step {
	return w.visit(filepath.Join(task.path, name), path.Join(task.rel, name), task.depth+1, task.chain)
}

// sequentialRun tracks whether the consumer stopped a sequential walk.
type sequentialRun struct {
	w     *Walker
	ctx   context.Context
	yield func(DirEntry, error) bool
	done  bool
}

func (r *sequentialRun) send(entry DirEntry, err error) bool {
	if r.done {
		return false
	}
	if !r.yield(entry, err) {
		r.done = true
	}
	return !r.done
}

// emit forwards a step and reports whether the walk goes on.
func (r *sequentialRun) emit(s step) bool {
	if s.emit && !r.send(s.entry, nil) {
		return false
	}
	for _, err := range s.errs {
		if !r.send(DirEntry{}, err) || isFatal(err) {
			return false
		}
	}
	return true
}

func (r *sequentialRun) expand(task dirTask) bool {
	if r.ctx.Err() != nil {
		return false
	}

	names, err := r.w.readDir(task)
	if err != nil && (!r.send(DirEntry{}, err) || isFatal(err)) {
		return false
	}

	for _, name := range names {
		s := r.w.visitChild(task, name)
		if !r.emit(s) {
			return false
		}
		if s.next != nil && !r.expand(*s.next) {
			return false
		}
	}
	return true
}

// walkSequential visits roots and children depth-first in name order.
func (w *Walker) walkSequential(ctx context.Context) iter.Seq2[DirEntry, error] {
	return func(yield func(DirEntry, error) bool) {
		r := &sequentialRun{w: w, ctx: ctx, yield: yield}
		for _, root := range w.roots {
			s := w.visit(root, "", 0, nil)
			if !r.emit(s) {
				return
			}
			if s.next != nil && !r.expand(*s.next) {
				break
			}
		}
		if err := ctx.Err(); err != nil {
			r.send(DirEntry{}, err)
		}
	}
}

type result struct {
	entry DirEntry
	err   error
}

// walkParallel expands directories on a fixed pool. Each worker keeps its
// own stack of pending directories and hands the oldest ones to idle
// workers through an unbuffered channel. Entries reach the consumer through
// a single results channel, so their order varies between runs.
func (w *Walker) walkParallel(parent context.Context) iter.Seq2[DirEntry, error] {
	return func(yield func(DirEntry, error) bool) {
		var initial []dirTask
		for _, root := range w.roots {
			s := w.visit(root, "", 0, nil)
			if s.emit && !yield(s.entry, nil) {
				return
			}
			for _, err := range s.errs {
				if !yield(DirEntry{}, err) || isFatal(err) {
					return
				}
			}
			if s.next != nil {
				initial = append(initial, *s.next)
			}
		}

		stopped, cancel := context.WithCancel(parent)
		defer cancel()
		group, ctx := errgroup.WithContext(stopped)

		results := make(chan result, w.threads*64)
		work := make(chan dirTask)

		var pending sync.WaitGroup
		pending.Add(len(initial))

		stacks := make([][]dirTask, w.threads)
		for i, task := range initial {
			stacks[i%w.threads] = append(stacks[i%w.threads], task)
		}

		for _, stack := range stacks {
			group.Go(func() error {
				w.work(ctx, stack, work, results, &pending)
				return nil
			})
		}

		go func() {
			pending.Wait()
			close(work)
		}()
		go func() {
			_ = group.Wait()
			close(results)
		}()

		// drain lets blocked workers finish before the iterator returns.
		drain := func() {
			cancel()
			for range results {
			}
		}

		for r := range results {
			if !yield(r.entry, r.err) || (r.err != nil && isFatal(r.err)) {
				drain()
				return
			}
		}
		if err := parent.Err(); err != nil {
			yield(DirEntry{}, err)
		}
	}
}

// work runs one pool worker until no directory is pending anywhere. After
// cancellation it keeps accepting tasks but only retires them.
func (w *Walker) work(ctx context.Context, stack []dirTask, work chan dirTask, results chan<- result, pending *sync.WaitGroup) {
	send := func(r result) bool {
		select {
		case results <- r:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		var task dirTask
		if n := len(stack); n > 0 {
			task = stack[n-1]
			stack = stack[:n-1]
		} else {
			t, ok := <-work
			if !ok {
				return
			}
			task = t
		}

		children := w.expandInto(ctx, task, send)

		// Register children before retiring the task so the pending count
		// cannot reach zero while work remains.
		pending.Add(len(children))
		stack = append(stack, children...)
		pending.Done()

	share:
		for len(stack) > 1 {
			select {
			case work <- stack[0]:
				stack = stack[1:]
			default:
				break share
			}
		}
	}
}

// expandInto lists task, sends its accepted children and returns the child
// directories still to expand.
func (w *Walker) expandInto(ctx context.Context, task dirTask, send func(result) bool) []dirTask {
	if ctx.Err() != nil {
		return nil
	}

	names, err := w.readDir(task)
	if err != nil && !send(result{err: err}) {
		return nil
	}

	var next []dirTask
	for _, name := range names {
		s := w.visitChild(task, name)
		if s.emit && !send(result{entry: s.entry}) {
			return nil
		}
		for _, err := range s.errs {
			if !send(result{err: err}) {
				return nil
			}
		}
		if s.next != nil {
			next = append(next, *s.next)
		}
	}
	return next
}
