package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionCommand_Stdout(t *testing.T) {
	isolate(t)

	for _, shell := range []string{"bash", "fish", "zsh", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			stdout, _, err := execute(t, "generate-completions", "--shell", shell)
			require.NoError(t, err)
			assert.NotEmpty(t, stdout)
			assert.Contains(t, stdout, "show")
		})
	}
}

func TestCompletionCommand_Out(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "nested", "show.bash")

	stdout, _, err := execute(t, "generate-completions", "--shell", "bash", "--out", out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "bash completion")

	_, err = os.Stat(out + ".lock")
	assert.NoError(t, err, "lock file is kept for later writers")
}

func TestCompletionCommand_Install(t *testing.T) {
	home := isolate(t)

	_, _, err := execute(t, "generate-completions", "--shell", "zsh", "--install")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(home, "completions", "_show"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "#compdef show")
}

func TestCompletionCommand_Errors(t *testing.T) {
	isolate(t)

	_, _, err := execute(t, "generate-completions", "--shell", "tcsh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported shell")

	_, _, err = execute(t, "generate-completions")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shell")

	_, _, err = execute(t, "generate-completions", "--shell", "bash", "--out", "x", "--install")
	assert.Error(t, err)
}
