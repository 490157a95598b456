package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/show/internal/display"
	"github.com/harrison/show/internal/execpath"
)

// NewWhichCommand creates and returns the which subcommand
func NewWhichCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "which BIN",
		Short: "Print the path of an executable",
		Long: `Search the directories of PATH, in order, for an executable named BIN.
On Windows the extensions listed in PATHEXT are tried as well.

Exit code: 0 if found, 1 otherwise`,
		Args: cobra.ExactArgs(1),
		RunE: runWhich,
	}

	cmd.Flags().BoolP("all", "a", false, "Print every match, not just the first")

	return cmd
}

func runWhich(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")

	resolver := execpath.NewResolver()
	s.log.LogDebug("searching " + args[0] + " in " + strings.Join(resolver.SearchPath(), string(os.PathListSeparator)))

	var matches []string
	if all {
		matches, err = resolver.FindAll(args[0])
	} else {
		var first string
		var ok bool
		first, ok, err = resolver.FindFirst(args[0])
		if ok {
			matches = []string{first}
		}
	}
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		return &ExitError{Code: 1}
	}

	printer := display.NewPathPrinter(cmd.OutOrStdout(), s.outColor)
	printer.Probe = resolver.Probe
	for _, m := range matches {
		if err := printer.Print(m); err != nil {
			return err
		}
	}
	return nil
}
