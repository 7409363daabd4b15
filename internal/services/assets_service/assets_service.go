package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"content_admin/internal/lib/logger/sl"
	"content_admin/internal/storage/jsonstore"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

const (
	uploadsURLPrefix = "/uploads/"
	assetsURLPrefix  = "assets"
)

// rewrittenKeys are the string fields whose upload URLs are de-rooted.
var rewrittenKeys = []string{"main_image", "image"}

// AssetSync копирует загрузки в каталог статического сайта и переписывает пути в публичном projects.json
type AssetSync struct {
	log          *slog.Logger
	uploadsDir   string
	assetsDir    string
	projectsJSON string
}

type Report struct {
	Copied    int
	Rewritten bool
}

func NewAssetSync(log *slog.Logger, uploadsDir, assetsDir, projectsJSON string) *AssetSync {
	return &AssetSync{
		log:          log,
		uploadsDir:   uploadsDir,
		assetsDir:    assetsDir,
		projectsJSON: projectsJSON,
	}
}

func (s *AssetSync) Run(ctx context.Context) (Report, error) {
	const op = "assets_service.Run"

	var report Report

	if err := os.MkdirAll(s.assetsDir, 0755); err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}

	copied, err := s.CopyUploads(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}
	report.Copied = copied

	rewritten, err := s.RewriteProjectsJSON(ctx)
	if err != nil {
		return report, fmt.Errorf("%s: %w", op, err)
	}
	report.Rewritten = rewritten

	return report, nil
}

// CopyUploads mirrors uploadsDir into assetsDir, copying files that are
// missing at the destination or strictly newer than the destination copy.
func (s *AssetSync) CopyUploads(ctx context.Context) (int, error) {
	const op = "assets_service.CopyUploads"

	log := s.log.With(slog.String("op", op))

	if _, err := os.Stat(s.uploadsDir); errors.Is(err, fs.ErrNotExist) {
		log.Warn("no uploads directory", slog.String("path", s.uploadsDir))
		return 0, nil
	}

	copied := 0

	err := filepath.WalkDir(s.uploadsDir, func(src string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.uploadsDir, src)
		if err != nil {
			return err
		}
		dst := filepath.Join(s.assetsDir, rel)

		if d.IsDir() {
			return os.MkdirAll(dst, 0755)
		}

		if !d.Type().IsRegular() {
			return nil
		}

		srcInfo, err := d.Info()
		if err != nil {
			return err
		}

		dstInfo, err := os.Stat(dst)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return err
		case !srcInfo.ModTime().After(dstInfo.ModTime()):
			return nil
		}

		if err := copyFile(src, dst, srcInfo); err != nil {
			return err
		}

		copied++
		log.Info("copied", slog.String("src", src), slog.String("dst", dst))

		return nil
	})
	if err != nil {
		log.Error("copy failed", sl.Err(err))
		return copied, fmt.Errorf("%s: %w", op, err)
	}

	return copied, nil
}

// copyFile copies contents, permission bits and modification time.
func copyFile(src, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// RewriteProjectsJSON turns "/uploads/..." into "assets/uploads/..." in
// main_image, image and gallery_images. Values are patched in place, so key
// order and formatting of the file are kept. The file is written only if a value changed.
func (s *AssetSync) RewriteProjectsJSON(ctx context.Context) (bool, error) {
	const op = "assets_service.RewriteProjectsJSON"

	log := s.log.With(
		slog.String("op", op),
		slog.String("path", s.projectsJSON),
	)

	if err := ctx.Err(); err != nil {
		return false, err
	}

	raw, err := os.ReadFile(s.projectsJSON)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("no public projects file")
			return false, nil
		}

		return false, fmt.Errorf("%s: %w", op, err)
	}

	if !gjson.ValidBytes(raw) {
		return false, fmt.Errorf("%s: invalid JSON", op)
	}

	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return false, fmt.Errorf("%s: expected an array of projects", op)
	}

	var paths []string
	for i, project := range doc.Array() {
		for _, key := range rewrittenKeys {
			if isUploadURL(project.Get(key)) {
				paths = append(paths, fmt.Sprintf("%d.%s", i, key))
			}
		}

		if gallery := project.Get("gallery_images"); gallery.IsArray() {
			for j, u := range gallery.Array() {
				if isUploadURL(u) {
					paths = append(paths, fmt.Sprintf("%d.gallery_images.%d", i, j))
				}
			}
		}
	}

	if len(paths) == 0 {
		log.Info("no paths to rewrite")
		return false, nil
	}

	out := raw
	for _, p := range paths {
		value, err := jsonString(assetsURLPrefix + gjson.GetBytes(out, p).String())
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}

		if out, err = sjson.SetRawBytes(out, p, value); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := jsonstore.WriteFile(s.projectsJSON, out); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("rewrote upload paths", slog.Int("values", len(paths)))

	return true, nil
}

func isUploadURL(v gjson.Result) bool {
	return v.Type == gjson.String && strings.HasPrefix(v.Str, uploadsURLPrefix)
}

// jsonString quotes s without HTML escaping.
func jsonString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
