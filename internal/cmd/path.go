package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/show/internal/display"
	"github.com/harrison/show/internal/pathutil"
)

// NewPathCommand creates and returns the path subcommand
func NewPathCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path PATH...",
		Short: "Show the normalized path of files or directories",
		Long: `Print each PATH as an absolute path with "." and ".." resolved
lexically. Symlinks are printed as "path --> target".`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPath,
	}

	cmd.Flags().BoolP("absolute", "a", false, "Print absolute paths (default)")
	cmd.Flags().BoolP("relative", "r", false, "Print paths relative to the current directory")
	cmd.Flags().Bool("posix", false, "Print paths with forward slashes")
	cmd.MarkFlagsMutuallyExclusive("absolute", "relative")

	return cmd
}

func runPath(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	style, err := pathStyle(cmd, s)
	if err != nil {
		return err
	}
	relative, _ := cmd.Flags().GetBool("relative")

	printer := display.NewPathPrinter(cmd.OutOrStdout(), s.outColor)
	printer.Style = style

	failed := 0
	for _, arg := range args {
		if relative {
			err = printer.PrintRelative(arg)
		} else {
			err = printer.Print(arg)
		}
		if err != nil {
			s.log.LogError(err.Error())
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d paths could not be shown", failed, len(args))
	}
	return nil
}

// pathStyle resolves --posix against the configured path style
func pathStyle(cmd *cobra.Command, s *settings) (pathutil.Style, error) {
	if posix, _ := cmd.Flags().GetBool("posix"); posix {
		return pathutil.StylePOSIX, nil
	}
	style, err := pathutil.ParseStyle(s.cfg.PathStyle)
	if err != nil {
		return style, fmt.Errorf("invalid path_style: %w", err)
	}
	return style, nil
}
