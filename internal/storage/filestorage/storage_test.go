package storage_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"content_admin/internal/storage"
	filestorage "content_admin/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T, opts ...filestorage.Option) (*filestorage.LocalFileStorage, string) {
	t.Helper()

	tempDir := t.TempDir()

	fs, err := filestorage.NewLocalFileStorage(tempDir, "/uploads", opts...)
	require.NoError(t, err)

	return fs, tempDir
}

func createTestFile(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	// Создаем multipart форму
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)

	_, err = part.Write([]byte(content))
	require.NoError(t, err)

	err = writer.Close()
	require.NoError(t, err)

	// Парсим multipart запрос
	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	file, header, err := req.FormFile("file")
	require.NoError(t, err)
	file.Close()

	return header
}

func TestLocalFileStorage_Save(t *testing.T) {
	fs, tempDir := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful save", func(t *testing.T) {
		testFile := createTestFile(t, "photo.png", "test content")

		url, size, err := fs.Save(ctx, testFile, "projects/p1")
		require.NoError(t, err)

		assert.Equal(t, "/uploads/projects/p1/photo.png", url)
		assert.Equal(t, int64(12), size)

		data, err := os.ReadFile(filepath.Join(tempDir, "projects", "p1", "photo.png"))
		require.NoError(t, err)
		assert.Equal(t, "test content", string(data))
	})

	t.Run("collision appends numeric suffix", func(t *testing.T) {
		testFile := createTestFile(t, "dup.jpg", "x")

		first, _, err := fs.Save(ctx, testFile, "projects/p2")
		require.NoError(t, err)
		second, _, err := fs.Save(ctx, testFile, "projects/p2")
		require.NoError(t, err)
		third, _, err := fs.Save(ctx, testFile, "projects/p2")
		require.NoError(t, err)

		assert.Equal(t, "/uploads/projects/p2/dup.jpg", first)
		assert.Equal(t, "/uploads/projects/p2/dup-1.jpg", second)
		assert.Equal(t, "/uploads/projects/p2/dup-2.jpg", third)
	})

	t.Run("save with empty subpath", func(t *testing.T) {
		testFile := createTestFile(t, "root.gif", "x")

		url, _, err := fs.Save(ctx, testFile, "")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/root.gif", url)
	})

	t.Run("extension check is case-insensitive", func(t *testing.T) {
		testFile := createTestFile(t, "LOUD.JPEG", "x")

		url, _, err := fs.Save(ctx, testFile, "mixed")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/mixed/LOUD.JPEG", url)
	})

	t.Run("disallowed extension", func(t *testing.T) {
		testFile := createTestFile(t, "notes.txt", "x")

		url, _, err := fs.Save(ctx, testFile, "projects/p3")
		assert.ErrorIs(t, err, storage.ErrInvalidFileType)
		assert.Empty(t, url)

		_, statErr := os.Stat(filepath.Join(tempDir, "projects", "p3"))
		assert.True(t, os.IsNotExist(statErr))
	})

	t.Run("file name is sanitized", func(t *testing.T) {
		testFile := createTestFile(t, "../../evil name.png", "x")

		url, _, err := fs.Save(ctx, testFile, "safe")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/safe/evil_name.png", url)
	})

	t.Run("save with context cancellation", func(t *testing.T) {
		testFile := createTestFile(t, "cancel.png", "x")

		ctx, cancel := context.WithCancel(ctx)
		cancel() // Отменяем контекст сразу

		_, _, err := fs.Save(ctx, testFile, "subdir")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalFileStorage_RandomPrefix(t *testing.T) {
	fs, tempDir := setupFileStorage(t, filestorage.WithNaming(filestorage.RandomPrefix))
	ctx := context.Background()
	testFile := createTestFile(t, "cover.webp", "x")

	first, _, err := fs.Save(ctx, testFile, "news")
	require.NoError(t, err)
	second, _, err := fs.Save(ctx, testFile, "news")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	for _, url := range []string{first, second} {
		require.True(t, strings.HasPrefix(url, "/uploads/news/"))

		name := strings.TrimPrefix(url, "/uploads/news/")
		assert.Regexp(t, `^[0-9a-f]{32}_cover\.webp$`, name)

		_, err := os.Stat(filepath.Join(tempDir, "news", name))
		assert.NoError(t, err)
	}
}

func TestLocalFileStorage_Delete(t *testing.T) {
	fs, tempDir := setupFileStorage(t)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		url, _, err := fs.Save(ctx, createTestFile(t, "to_delete.png", "content"), "")
		require.NoError(t, err)

		err = fs.Delete(ctx, url)
		assert.NoError(t, err)

		_, err = os.Stat(filepath.Join(tempDir, "to_delete.png"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("delete non-existent file", func(t *testing.T) {
		err := fs.Delete(ctx, "/uploads/nonexistent.png")
		assert.ErrorIs(t, err, storage.ErrFileNotFound)
	})

	t.Run("url outside of base url", func(t *testing.T) {
		err := fs.Delete(ctx, "/static/app.js")
		assert.ErrorIs(t, err, storage.ErrOutsideRoot)
	})
}

func TestLocalFileStorage_Resolve(t *testing.T) {
	fs, tempDir := setupFileStorage(t)

	got, err := fs.Resolve("/uploads/news/a.png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "news", "a.png"), got)

	got, err = fs.Resolve("/uploads/../../etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "etc", "passwd"), got)
}

func TestLocalFileStorage_Allowed(t *testing.T) {
	fs, _ := setupFileStorage(t, filestorage.WithAllowedExtensions([]string{".PNG", "svg"}))

	assert.True(t, fs.Allowed("a.png"))
	assert.True(t, fs.Allowed("a.b.SVG"))
	assert.False(t, fs.Allowed("a.jpg"))
	assert.False(t, fs.Allowed("png"))
	assert.False(t, fs.Allowed("trailing."))
}

func TestLocalFileStorage_GetFullPath(t *testing.T) {
	fs, _ := setupFileStorage(t)

	relPath := "test/file.txt"
	expected := filepath.Join(fs.GetBaseDir(), relPath)
	assert.Equal(t, expected, fs.GetFullPath(relPath))
	assert.Equal(t, "/uploads", fs.BaseURL())
}

func TestSecureFilename(t *testing.T) {
	tests := map[string]string{
		"My cool movie.mov":                    "My_cool_movie.mov",
		"../../../etc/passwd":                  "etc_passwd",
		"i contain cool \u00fcml\u00e4uts.txt": "i_contain_cool_umlauts.txt",
		`C:\photos\beach.jpg`:                  "C_photos_beach.jpg",
		"...":                                  "",
		"слайд.png":                            "png",
	}

	for in, want := range tests {
		assert.Equal(t, want, filestorage.SecureFilename(in), in)
	}
}

func TestSaveErrorCases(t *testing.T) {
	fs, tempDir := setupFileStorage(t)
	ctx := context.Background()

	t.Run("invalid file header", func(t *testing.T) {
		invalidFile := &multipart.FileHeader{
			Filename: "bad.png",
		}
		_, _, err := fs.Save(ctx, invalidFile, "")
		assert.Error(t, err)
	})

	t.Run("leading dots are stripped", func(t *testing.T) {
		url, _, err := fs.Save(ctx, createTestFile(t, "..png", "x"), "")
		require.NoError(t, err)
		assert.Equal(t, "/uploads/png", url)
	})

	t.Run("subpath blocked by a regular file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "blocker"), []byte("x"), 0644))

		_, _, err := fs.Save(ctx, createTestFile(t, "a.png", "x"), "blocker/sub")
		assert.Error(t, err)
	})
}

func TestConcurrentSaves(t *testing.T) {
	fs, tempDir := setupFileStorage(t)
	ctx := context.Background()
	testFile := createTestFile(t, "concurrent.png", "data")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := fs.Save(ctx, testFile, "concurrent")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	entries, err := os.ReadDir(filepath.Join(tempDir, "concurrent"))
	require.NoError(t, err)
	assert.Len(t, entries, 10)
}
