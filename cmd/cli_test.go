package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)

	require.NoError(t, rootCmd.Execute())

	return out.String()
}

func TestCLI_AddAndList(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("location:\n  mode: \"off\"\n"), 0644))

	home := filepath.Join(dir, "home")

	out := run(t, "add", "--config", cfg, "--home", home, "-t", "Milk", "-t", "[x] Bread", "Groceries")
	assert.Contains(t, out, "## Groceries")
	assert.Contains(t, out, "- location: Location not available")
	assert.Contains(t, out, "- [x] Bread")

	out = run(t, "ls", "--config", cfg, "--home", home)
	assert.Contains(t, out, "## Groceries")
	assert.Contains(t, out, "- [ ] Milk")

	out = run(t, "clear", "--config", cfg, "--home", home)
	assert.Contains(t, out, "All notes deleted.")

	out = run(t, "ls", "--config", cfg, "--home", home)
	assert.Equal(t, "No notes.\n", out)
}
