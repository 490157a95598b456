package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for show
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show resolved paths, executables, files and line counts",
		Long: `Show prints filesystem paths the way the operating system resolves them.

It normalizes paths lexically, locates executables on the search path,
searches directory trees with filters, and counts lines in files.`,
		Version: Version,
		// main prints the error; cobra would print it a second time
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// generate-completions replaces cobra's default completion command
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.PersistentFlags().String("config", "", "Path to config file (default: $SHOW_HOME/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().String("color", "", "Color output: auto, always, never")

	_ = cmd.RegisterFlagCompletionFunc("log-level", fixedCompletions("trace", "debug", "info", "warn", "error"))
	_ = cmd.RegisterFlagCompletionFunc("color", fixedCompletions("auto", "always", "never"))

	cmd.AddCommand(NewPathCommand())
	cmd.AddCommand(NewWhichCommand())
	cmd.AddCommand(NewFindCommand())
	cmd.AddCommand(NewCountCommand())
	cmd.AddCommand(NewCompletionCommand())

	return cmd
}

// fixedCompletions completes a flag from a closed set of values
func fixedCompletions(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
