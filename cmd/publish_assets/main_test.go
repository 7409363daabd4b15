package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	root := t.TempDir()
	uploads := filepath.Join(root, "server", "uploads")
	assets := filepath.Join(root, "assets", "uploads")
	projects := filepath.Join(root, "assets", "projects.json")

	require.NoError(t, os.MkdirAll(filepath.Join(uploads, "projects", "p1"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "projects", "p1", "a.png"), []byte("a"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Dir(projects), 0755))
	require.NoError(t, os.WriteFile(projects, []byte(`[{"id":"p1","main_image":"/uploads/projects/p1/a.png"}]`), 0644))

	run := func() string {
		var out bytes.Buffer

		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{
			"--uploads", uploads,
			"--assets-uploads", assets,
			"--projects-json", projects,
			"--env", "prod",
		})
		require.NoError(t, cmd.Execute())

		return out.String()
	}

	assert.Contains(t, run(), "Done.")
	assert.FileExists(t, filepath.Join(assets, "projects", "p1", "a.png"))

	first, err := os.ReadFile(projects)
	require.NoError(t, err)
	assert.Contains(t, string(first), `"assets/uploads/projects/p1/a.png"`)

	run()

	second, err := os.ReadFile(projects)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
