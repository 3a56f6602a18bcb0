package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scene = `
[surface]
width = 120
height = 80

[[element]]
id = "box"
style = "width: 50%; height: 40px; background: teal"
`

func writeScene(t *testing.T, doc string) (dir, path string) {
	t.Helper()
	dir = t.TempDir()
	path = filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return dir, path
}

func TestRenderWritesPNG(t *testing.T) {
	dir, path := writeScene(t, scene)
	cfg := filepath.Join(dir, "none.toml")

	var out bytes.Buffer
	require.NoError(t, Render([]string{"-config", cfg, path}, &out))
	assert.Contains(t, out.String(), "scene.png (120x80, 1 elements)")
	assert.FileExists(t, filepath.Join(dir, "scene.png"))

	custom := filepath.Join(dir, "custom.png")
	out.Reset()
	require.NoError(t, Render([]string{"-config", cfg, "-o", custom, "-width", "300", path}, &out))
	assert.Contains(t, out.String(), "(300x80")
	assert.FileExists(t, custom)
}

func TestRenderStrict(t *testing.T) {
	dir, path := writeScene(t, scene+"\n[[element]]\nstyle = \"colour: red\"\n")
	cfg := filepath.Join(dir, "none.toml")

	var out bytes.Buffer
	require.NoError(t, Render([]string{"-config", cfg, path}, &out))
	assert.Contains(t, out.String(), "unknown property")

	err := Render([]string{"-config", cfg, "-strict", path}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestDump(t *testing.T) {
	dir, path := writeScene(t, scene)
	var out bytes.Buffer
	require.NoError(t, Dump([]string{"-config", filepath.Join(dir, "none.toml"), "-dpi", "192", path}, &out))
	assert.Equal(t, "box x=0 y=0 w=60 h=40\n", out.String())
}

func TestCommandErrors(t *testing.T) {
	var out bytes.Buffer
	err := Dump(nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected exactly one scene file")

	err = Render([]string{filepath.Join(t.TempDir(), "missing.toml")}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")

	assert.Error(t, Render([]string{"-bogus"}, &out))
}
