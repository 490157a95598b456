package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/show/internal/display"
	"github.com/harrison/show/internal/walk"
)

var typeNames = []string{
	"d", "directory", "e", "empty", "f", "file", "l", "symlink",
	"p", "pipe", "s", "socket", "x", "executable",
}

// NewFindCommand creates and returns the find subcommand
func NewFindCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "find [PATTERN] [DIRECTORY...]",
		Aliases: []string{"location"},
		Short:   "Search for files in directory trees",
		Long: `Walk each DIRECTORY (default: the current directory) and print the
entries whose name matches PATTERN.

PATTERN is a glob when it contains any of * ? [ {, and a substring otherwise.
A pattern containing "/" is matched against the path below the directory.
Hidden entries are skipped unless --hidden is given.

Size bounds accept b, k, m, g and t suffixes. Time bounds are epoch seconds.`,
		Args: cobra.ArbitraryArgs,
		RunE: runFind,
	}

	cmd.Flags().StringSliceP("type", "t", nil, "Filter by type: d, e, f, l, p, s, x (or directory, empty, file, symlink, pipe, socket, executable)")
	cmd.Flags().StringArrayP("extension", "e", nil, "Only show entries with this extension (repeatable)")
	cmd.Flags().StringArrayP("exclude", "E", nil, "Skip entries matching this pattern, and their subtrees (repeatable)")
	cmd.Flags().BoolP("ignore-case", "i", false, "Match patterns case-insensitively")
	cmd.Flags().BoolP("hidden", "H", false, "Include hidden entries")
	cmd.Flags().BoolP("follow", "L", false, "Follow symlinked directories")
	cmd.Flags().Int("min-depth", 0, "Only show entries at least this deep")
	cmd.Flags().IntP("max-depth", "d", 0, "Do not descend below this depth")
	cmd.Flags().String("min-size", "", "Only show files at least this large")
	cmd.Flags().String("max-size", "", "Only show files at most this large")
	cmd.Flags().Int64("changed-after", 0, "Only show entries changed after this time")
	cmd.Flags().Int64("changed-before", 0, "Only show entries changed before this time")
	cmd.Flags().Int64("accessed-after", 0, "Only show entries accessed after this time")
	cmd.Flags().Int64("accessed-before", 0, "Only show entries accessed before this time")
	cmd.Flags().Int64("created-after", 0, "Only show entries created after this time")
	cmd.Flags().Int64("created-before", 0, "Only show entries created before this time")
	cmd.Flags().IntP("threads", "j", 0, "Number of walk workers (0 = config or one per CPU, 1 = sequential)")
	cmd.Flags().BoolP("absolute", "a", false, "Print absolute paths")
	cmd.Flags().Bool("name-only", false, "Print entry names instead of paths")
	cmd.Flags().Bool("ignore-errors", false, "Do not report unreadable entries")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("posix", false, "Print paths with forward slashes")
	cmd.MarkFlagsMutuallyExclusive("absolute", "name-only")

	_ = cmd.RegisterFlagCompletionFunc("type", fixedCompletions(typeNames...))

	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	var pattern string
	roots := []string{"."}
	if len(args) > 0 {
		pattern = args[0]
	}
	if len(args) > 1 {
		roots = args[1:]
	}

	filter, err := buildFilter(cmd, s, pattern)
	if err != nil {
		return err
	}

	threads := s.cfg.Threads
	if cmd.Flags().Changed("threads") {
		threads, _ = cmd.Flags().GetInt("threads")
	}

	walker, err := walk.New(roots, filter, walk.WithThreads(threads), walk.WithLogger(s.log))
	if err != nil {
		return err
	}

	style, err := pathStyle(cmd, s)
	if err != nil {
		return err
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	printer := display.NewPathPrinter(cmd.OutOrStdout(), s.outColor && !noColor)
	printer.Style = style
	printer.Probe = walker.Probe()
	printer.AbsolutePath, _ = cmd.Flags().GetBool("absolute")
	printer.NameOnly, _ = cmd.Flags().GetBool("name-only")

	ignoreErrors := s.cfg.Walk.IgnoreErrors
	if cmd.Flags().Changed("ignore-errors") {
		ignoreErrors, _ = cmd.Flags().GetBool("ignore-errors")
	}

	start := time.Now()
	var entryErrs []error
	printed := 0
	for entry, err := range walker.Walk(cmd.Context()) {
		if err != nil {
			if !walk.IsEntryError(err) {
				return err
			}
			entryErrs = append(entryErrs, err)
			if !ignoreErrors {
				s.log.LogWarn(err.Error())
			}
			continue
		}
		if err := printer.PrintEntry(entry); err != nil {
			return err
		}
		printed++
	}
	s.log.LogWalkSummary(printed, len(entryErrs), time.Since(start))

	if len(entryErrs) > 0 && !ignoreErrors {
		warning := display.WarnUnreadable(entryErrs)
		warning.Plain = !s.errColor || noColor
		warning.Display(cmd.ErrOrStderr())
	}
	return nil
}

// buildFilter turns the find flags and config defaults into a SearchFilter
func buildFilter(cmd *cobra.Command, s *settings, pattern string) (walk.SearchFilter, error) {
	flags := cmd.Flags()

	filter := walk.SearchFilter{
		SkipHidden:     s.cfg.Walk.SkipHidden,
		FollowSymlinks: s.cfg.Walk.FollowSymlinks,
		IgnoreCase:     s.cfg.Walk.IgnoreCase,
	}
	if hidden, _ := flags.GetBool("hidden"); hidden {
		filter.SkipHidden = false
	}
	if follow, _ := flags.GetBool("follow"); follow {
		filter.FollowSymlinks = true
	}
	if ignoreCase, _ := flags.GetBool("ignore-case"); ignoreCase {
		filter.IgnoreCase = true
	}

	if pattern != "" {
		filter.Include = []string{pattern}
	}
	filter.Exclude, _ = flags.GetStringArray("exclude")
	filter.IncludeExtensions, _ = flags.GetStringArray("extension")

	types, _ := flags.GetStringSlice("type")
	mask, err := walk.ParseTypeMask(types)
	if err != nil {
		return filter, err
	}
	filter.Types = mask

	if flags.Changed("min-depth") {
		v, _ := flags.GetInt("min-depth")
		filter.MinDepth = walk.Bound(v)
	}
	if flags.Changed("max-depth") {
		v, _ := flags.GetInt("max-depth")
		filter.MaxDepth = walk.Bound(v)
	}

	for _, bound := range []struct {
		flag string
		dst  **int64
	}{
		{"min-size", &filter.MinSize},
		{"max-size", &filter.MaxSize},
	} {
		if !flags.Changed(bound.flag) {
			continue
		}
		raw, _ := flags.GetString(bound.flag)
		size, err := walk.ParseSize(raw)
		if err != nil {
			return filter, fmt.Errorf("--%s: %w", bound.flag, err)
		}
		*bound.dst = walk.Bound(size)
	}

	for _, bound := range []struct {
		flag string
		dst  *time.Time
	}{
		{"changed-after", &filter.Changed.After},
		{"changed-before", &filter.Changed.Before},
		{"accessed-after", &filter.Accessed.After},
		{"accessed-before", &filter.Accessed.Before},
		{"created-after", &filter.Created.After},
		{"created-before", &filter.Created.Before},
	} {
		if flags.Changed(bound.flag) {
			v, _ := flags.GetInt64(bound.flag)
			*bound.dst = walk.EpochSeconds(v)
		}
	}

	return filter, nil
}
