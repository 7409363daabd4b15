package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"content_admin/internal/storage"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// NamingPolicy решает, как избежать коллизий имён в каталоге загрузки
type NamingPolicy int

const (
	// SuffixOnCollision appends -1, -2, ... to the base name until the path is free.
	SuffixOnCollision NamingPolicy = iota
	// RandomPrefix prepends a random hex token and an underscore.
	RandomPrefix
)

var DefaultAllowedExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// FileStorage интерфейс для работы с файловым хранилищем
type FileStorage interface {
	Allowed(filename string) bool
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (fileURL string, fileSize int64, err error)
	Delete(ctx context.Context, fileURL string) error
	GetFullPath(relativePath string) string
	BaseURL() string
	GetBaseDir() string
}

// LocalFileStorage реализация для локальной файловой системы
type LocalFileStorage struct {
	baseDir string // Базовый каталог для хранения (например: "./uploads")
	baseURL string // Публичный префикс URL (например: "/uploads")
	allowed map[string]struct{}
	naming  NamingPolicy
}

var _ FileStorage = (*LocalFileStorage)(nil)

type Option func(*LocalFileStorage)

func WithAllowedExtensions(exts []string) Option {
	return func(s *LocalFileStorage) {
		if len(exts) == 0 {
			return
		}

		s.allowed = make(map[string]struct{}, len(exts))
		for _, ext := range exts {
			s.allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
		}
	}
}

func WithNaming(policy NamingPolicy) Option {
	return func(s *LocalFileStorage) {
		s.naming = policy
	}
}

func NewLocalFileStorage(baseDir, baseURL string, opts ...Option) (*LocalFileStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	s := &LocalFileStorage{
		baseDir: baseDir,
		baseURL: "/" + strings.Trim(baseURL, "/"),
		naming:  SuffixOnCollision,
	}

	WithAllowedExtensions(DefaultAllowedExtensions)(s)
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Allowed reports whether the extension after the last dot is on the allow-list.
func (s *LocalFileStorage) Allowed(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}

	_, ok := s.allowed[strings.ToLower(filename[i+1:])]

	return ok
}

// Save сохраняет файл в baseDir/subPath и возвращает его публичный URL
func (s *LocalFileStorage) Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}

	if !s.Allowed(file.Filename) {
		return "", 0, storage.ErrInvalidFileType
	}

	name := SecureFilename(file.Filename)
	if name == "" {
		return "", 0, storage.ErrInvalidFileName
	}

	dir := filepath.Join(s.baseDir, filepath.FromSlash(subPath))

	select {
	case <-ctx.Done():
		return "", 0, ctx.Err()
	default:
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", 0, fmt.Errorf("failed to create directories: %w", err)
		}
	}

	src, err := file.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer src.Close()

	// Создаем целевой файл
	dst, name, err := s.create(dir, name)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	filePath := dst.Name()

	done := make(chan struct{})
	var size int64
	var copyErr error

	go func() {
		size, copyErr = io.Copy(dst, src)
		close(done)
	}()

	select {
	case <-done:
		if copyErr != nil {
			_ = os.Remove(filePath)
			return "", 0, fmt.Errorf("failed to copy file: %w", copyErr)
		}
	case <-ctx.Done():
		<-done
		_ = os.Remove(filePath)
		return "", 0, ctx.Err()
	}

	return path.Join(s.baseURL, filepath.ToSlash(subPath), name), size, nil
}

func (s *LocalFileStorage) create(dir, name string) (*os.File, string, error) {
	const flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL

	if s.naming == RandomPrefix {
		name = strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + name
		f, err := os.OpenFile(filepath.Join(dir, name), flags, 0644)

		return f, name, err
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := name

	for i := 1; ; i++ {
		f, err := os.OpenFile(filepath.Join(dir, candidate), flags, 0644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}

		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
}

// Delete удаляет файл по публичному URL
func (s *LocalFileStorage) Delete(ctx context.Context, fileURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullPath, err := s.Resolve(fileURL)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", storage.ErrFileNotFound, fileURL)
		}

		return err
	}

	return nil
}

// Resolve maps a public URL under baseURL to a path inside baseDir.
func (s *LocalFileStorage) Resolve(fileURL string) (string, error) {
	prefix := strings.TrimSuffix(s.baseURL, "/") + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", fmt.Errorf("%w: %s", storage.ErrOutsideRoot, fileURL)
	}

	rel := path.Clean("/" + strings.TrimPrefix(fileURL, prefix))
	if rel == "/" {
		return "", fmt.Errorf("%w: %s", storage.ErrOutsideRoot, fileURL)
	}

	return filepath.Join(s.baseDir, filepath.FromSlash(rel)), nil
}

// GetFullPath возвращает полный путь к файлу на диске
func (s *LocalFileStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, relativePath)
}

// BaseURL возвращает базовый URL для доступа к файлам
func (s *LocalFileStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalFileStorage) GetBaseDir() string {
	return s.baseDir
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename сводит имя файла к безопасному ASCII-виду:
// "../../etc/passwd" -> "etc_passwd", "My cool movie.mov" -> "My_cool_movie.mov".
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(b.String())
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")

	return strings.Trim(name, "._")
}
