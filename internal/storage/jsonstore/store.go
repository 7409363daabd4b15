package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"content_admin/internal/lib/logger/sl"
	"content_admin/internal/storage"
)

// Mode определяет, что делать с файлом, который не удалось прочитать
type Mode int

const (
	// Lenient treats an unreadable file or invalid JSON as an empty array.
	Lenient Mode = iota
	// Strict only treats a missing file as empty; anything else is an error.
	Strict
)

// Store хранит массив записей одного типа в JSON-файле.
// Блокировок нет: при конкурентной записи побеждает последний.
type Store[T any] struct {
	log  *slog.Logger
	path string
	mode Mode
}

func New[T any](log *slog.Logger, path string, mode Mode) *Store[T] {
	return &Store[T]{
		log:  log,
		path: path,
		mode: mode,
	}
}

func (s *Store[T]) Path() string {
	return s.path
}

func (s *Store[T]) Load(ctx context.Context) ([]T, error) {
	const op = "jsonstore.Store.Load"

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := s.log.With(
		slog.String("op", op),
		slog.String("path", s.path),
	)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, nil
		}

		if s.mode == Lenient {
			log.Warn("store file unreadable, using empty list", sl.Err(err))
			return []T{}, nil
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !json.Valid(data) {
		if s.mode == Lenient {
			log.Warn("store file malformed, using empty list")
			return []T{}, nil
		}

		return nil, fmt.Errorf("%s: %w: invalid JSON", op, storage.ErrMalformedStore)
	}

	// Valid JSON of an unexpected shape is never replaced with an empty
	// list: the next Save would overwrite the file.
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.Error("store file has unexpected shape", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %v", op, storage.ErrMalformedStore, err)
	}

	if records == nil {
		records = []T{}
	}

	return records, nil
}

// Save overwrites the backing file with records. The data is written to a
// temporary file in the same directory and renamed over the target.
func (s *Store[T]) Save(ctx context.Context, records []T) error {
	const op = "jsonstore.Store.Save"

	if err := ctx.Err(); err != nil {
		return err
	}

	if records == nil {
		records = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := WriteFile(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Debug("store saved",
		slog.String("op", op),
		slog.String("path", s.path),
		slog.Int("records", len(records)),
	)

	return nil
}

// WriteFile replaces path with data via a temp file and rename.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directories: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace file: %w", err)
	}

	return nil
}
