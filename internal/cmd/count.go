package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/show/internal/execpath"
	"github.com/harrison/show/internal/linecount"
)

// NewCountCommand creates and returns the count subcommand
func NewCountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count FILE...",
		Short: "Count the lines of files",
		Long: `Print the number of newline characters in each FILE, followed by a
total when more than one file is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCount,
	}

	return cmd
}

func runCount(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var total uint64
	failed := 0
	for _, path := range args {
		if execpath.IsBinary(path) {
			s.log.LogInfo(path + " looks like a binary file")
		}

		n, err := linecount.CountFile(path)
		if err != nil {
			s.log.LogError(err.Error())
			failed++
			continue
		}
		total += n
		fmt.Fprintf(out, "%8d %s\n", n, path)
	}

	if len(args) > 1 {
		fmt.Fprintf(out, "%8d total\n", total)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be counted", failed, len(args))
	}
	return nil
}
