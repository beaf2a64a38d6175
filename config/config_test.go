package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[run]
mode = "interactive"
max-call-depth = 64

[log]
verbosity = 2
file = "seed.log"

[store]
path = "db/chunks.db"
`)

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "interactive", c.Run.Mode)
	assert.Equal(t, 64, c.Run.MaxCallDepth)
	assert.Equal(t, 2, c.Log.Verbosity)
	assert.Equal(t, filepath.Join(c.Dir, "seed.log"), c.LogFile())
	assert.Equal(t, filepath.Join(c.Dir, "db", "chunks.db"), c.StorePath())
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[log]\nverbosity = 1\n")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "script", c.Run.Mode)
	assert.Equal(t, 256, c.Run.MaxCallDepth)
	assert.Equal(t, "", c.LogFile())
	assert.Equal(t, filepath.Join(c.Dir, ".seed", "chunks.db"), c.StorePath())
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":      "[run\n",
		"unknown key": "[run]\nspeed = 3\n",
		"bad mode":    "[run]\nmode = \"batch\"\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, content)
			_, err := Load(dir)
			assert.Error(t, err)
		})
	}

	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "cannot read")
}

func TestFindAndLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[run]\nmax-call-depth = 10\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	c, err := FindAndLoad(nested)
	require.NoError(t, err)
	assert.Equal(t, 10, c.Run.MaxCallDepth)
	abs, _ := filepath.Abs(root)
	assert.Equal(t, abs, c.Dir)
}

func TestFindAndLoadDefault(t *testing.T) {
	dir := t.TempDir()
	c, err := FindAndLoad(dir)
	require.NoError(t, err)
	assert.Equal(t, Default().Run, c.Run)
	abs, _ := filepath.Abs(dir)
	assert.Equal(t, abs, c.Dir)
}

func TestAbsoluteStorePath(t *testing.T) {
	c := Default()
	c.Store.Path = "/var/lib/seed.db"
	assert.Equal(t, "/var/lib/seed.db", c.StorePath())
	c.Store.Path = ":memory:"
	assert.Equal(t, ":memory:", c.StorePath())
}
