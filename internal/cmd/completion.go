package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/harrison/show/internal/config"
	"github.com/harrison/show/internal/filelock"
)

// completionFiles maps each supported shell to its conventional script name
var completionFiles = map[string]string{
	"bash":       "show.bash",
	"fish":       "show.fish",
	"zsh":        "_show",
	"powershell": "show.ps1",
}

// NewCompletionCommand creates and returns the generate-completions subcommand
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-completions",
		Short: "Generate a shell completion script",
		Long: `Write a completion script for bash, fish, zsh or powershell.

The script goes to standard output unless --out or --install is given.
--install writes it into $SHOW_HOME/completions.`,
		Args: cobra.NoArgs,
		RunE: runCompletion,
	}

	cmd.Flags().String("shell", "", "Target shell: bash, fish, zsh, powershell")
	cmd.Flags().String("out", "", "Write the script to this file")
	cmd.Flags().Bool("install", false, "Write the script into the show home")
	_ = cmd.MarkFlagRequired("shell")
	cmd.MarkFlagsMutuallyExclusive("out", "install")
	_ = cmd.RegisterFlagCompletionFunc("shell", fixedCompletions("bash", "fish", "zsh", "powershell"))

	return cmd
}

func runCompletion(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	shell, _ := cmd.Flags().GetString("shell")
	render, err := completionRenderer(cmd.Root(), shell)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if install, _ := cmd.Flags().GetBool("install"); install {
		dir, err := config.GetCompletionsDir()
		if err != nil {
			return err
		}
		out = filepath.Join(dir, completionFiles[shell])
	}

	if out == "" {
		return render(cmd.OutOrStdout())
	}

	if err := filelock.WriteWith(out, 0644, render); err != nil {
		return err
	}
	s.log.LogInfo(fmt.Sprintf("%s completions written to %s", shell, out))
	return nil
}

// completionRenderer returns the cobra generator for shell
func completionRenderer(root *cobra.Command, shell string) (func(io.Writer) error, error) {
	switch shell {
	case "bash":
		return func(w io.Writer) error { return root.GenBashCompletionV2(w, true) }, nil
	case "fish":
		return func(w io.Writer) error { return root.GenFishCompletion(w, true) }, nil
	case "zsh":
		return root.GenZshCompletion, nil
	case "powershell":
		return root.GenPowerShellCompletionWithDesc, nil
	default:
		return nil, fmt.Errorf("unsupported shell %q, must be one of: bash, fish, zsh, powershell", shell)
	}
}
