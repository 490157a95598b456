package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/show/internal/config"
	"github.com/harrison/show/internal/logger"
)

// ExitError ends the process with Code and no message
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// settings is the configuration shared by every subcommand
type settings struct {
	cfg      *config.Config
	log      *logger.ConsoleLogger
	outColor bool
	errColor bool
}

// loadSettings reads the config file and applies the persistent flags
func loadSettings(cmd *cobra.Command) (*settings, error) {
	var cfg *config.Config
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		home, err := config.GetShowHome()
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(home, config.FileName)
		cfg, err = config.LoadConfigFromDir(home)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var logLevel, colorMode *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	if cmd.Flags().Changed("color") {
		v, _ := cmd.Flags().GetString("color")
		colorMode = &v
	}
	cfg.MergeWithFlags(logLevel, colorMode, nil, nil)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	s := &settings{
		cfg:      cfg,
		outColor: cfg.UseColor(isTerminal(cmd.OutOrStdout())),
		errColor: cfg.UseColor(isTerminal(cmd.ErrOrStderr())),
	}
	s.log = logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	s.log.SetColor(s.errColor)
	s.log.LogDebug("config loaded from " + configPath)
	return s, nil
}

// isTerminal reports whether w is a terminal file
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
