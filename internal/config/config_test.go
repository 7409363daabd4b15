package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	return path
}

func TestMustLoadPath_RepoConfigs(t *testing.T) {
	projects := MustLoadPath("../../config/projects.yaml")

	assert.Equal(t, "5000", projects.HTTP.Port)
	assert.Equal(t, "25M", projects.HTTP.BodyLimit)
	assert.Len(t, projects.HTTP.AllowOrigins, 6)
	assert.Equal(t, "server/data/projects.json", projects.Storage.DataFile)
	assert.Equal(t, "assets/projects.json", projects.Storage.PublicFile)
	assert.Equal(t, 15, projects.Storage.GalleryLimit)
	assert.Equal(t, 5*time.Minute, projects.Cache.GalleryTTL)
	assert.Equal(t, "projects:mirror", projects.Redis.Channel)

	news := MustLoadPath("../../config/news.yaml")

	assert.Equal(t, "0.0.0.0", news.HTTP.Host)
	assert.Equal(t, "5001", news.HTTP.Port)
	assert.Equal(t, "16M", news.HTTP.BodyLimit)
	assert.Empty(t, news.HTTP.AllowOrigins)
	assert.Empty(t, news.Storage.PublicFile)
	assert.Equal(t, "uploads", news.Storage.UploadDir)
}

func TestMustLoadPath_Defaults(t *testing.T) {
	cfg := MustLoadPath(writeConfig(t, `
storage:
  data_file: data.json
  upload_dir: up
`))

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, "/uploads", cfg.Storage.BaseURL)
	assert.Equal(t, []string{"png", "jpg", "jpeg", "gif", "webp"}, cfg.Storage.AllowedExtensions)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Empty(t, cfg.Admin.PasswordHash)
	assert.Empty(t, cfg.Redis.RedisAddr)
}

func TestMustLoadPath_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadPath(filepath.Join(t.TempDir(), "missing.yaml"))
	})

	assert.Panics(t, func() {
		MustLoadPath(writeConfig(t, "storage:\n  upload_dir: up\n"))
	})
}
