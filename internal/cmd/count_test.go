package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"one.txt":   "a\nb\nc\n",
		"two.txt":   "no newline",
		"three.txt": "\n\n",
	})
	one, two, three := filepath.Join(dir, "one.txt"), filepath.Join(dir, "two.txt"), filepath.Join(dir, "three.txt")

	stdout, _, err := execute(t, "count", one)
	require.NoError(t, err)
	assert.Equal(t, "       3 "+one+"\n", stdout)

	stdout, _, err = execute(t, "count", one, two, three)
	require.NoError(t, err)
	assert.Equal(t, "       3 "+one+"\n       0 "+two+"\n       2 "+three+"\n       5 total\n", stdout)
}

func TestCountCommand_MissingFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"ok.txt": "x\n"})
	ok := filepath.Join(dir, "ok.txt")

	stdout, stderr, err := execute(t, "count", ok, filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files could not be counted")
	assert.Contains(t, stderr, "error: ")
	assert.Equal(t, "       1 "+ok+"\n       1 total\n", stdout)
}

func TestCountCommand_BinaryNotice(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"blob.bin": "\x00\x01\n"})
	blob := filepath.Join(dir, "blob.bin")

	_, stderr, err := execute(t, "--log-level", "info", "count", blob)
	require.NoError(t, err)
	assert.Contains(t, stderr, "info: "+blob+" looks like a binary file")
}
