package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"content_admin/internal/domain/models"
	"content_admin/internal/lib/logger/sl"
	"content_admin/internal/metrics"
	"content_admin/internal/storage"
	filestorage "content_admin/internal/storage/filestorage"
	"content_admin/internal/transport/http/dto"

	"github.com/patrickmn/go-cache"
)

const (
	DefaultGalleryLimit = 15

	galleryCacheKey = "gallery"
)

var ErrProjectIDRequired = errors.New("project id is required")

type ProjectStore interface {
	Load(ctx context.Context) ([]models.Project, error)
	Save(ctx context.Context, projects []models.Project) error
}

type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (fileURL string, fileSize int64, err error)
	Delete(ctx context.Context, fileURL string) error
}

type MirrorPublisher interface {
	Regenerate(ctx context.Context, projects []models.Project) (int, error)
}

type ProjectService struct {
	log          *slog.Logger
	store        ProjectStore
	files        FileStorage
	publisher    MirrorPublisher
	cache        *cache.Cache
	galleryLimit int

	// generation растет после каждой записи; галерея, собранная до записи, в кеш не попадает
	generation atomic.Uint64
}

type galleryEntry struct {
	generation uint64
	items      []models.GalleryItem
}

// NewProjectService собирает сервис проектов. galleryTTL <= 0 отключает кеш галереи.
func NewProjectService(log *slog.Logger, store ProjectStore, files FileStorage, publisher MirrorPublisher, galleryLimit int, galleryTTL time.Duration) *ProjectService {
	if galleryLimit <= 0 {
		galleryLimit = DefaultGalleryLimit
	}

	var c *cache.Cache
	if galleryTTL > 0 {
		c = cache.New(galleryTTL, 2*galleryTTL)
	}

	return &ProjectService{
		log:          log,
		store:        store,
		files:        files,
		publisher:    publisher,
		cache:        c,
		galleryLimit: galleryLimit,
	}
}

func (s *ProjectService) ListProjects(ctx context.Context) ([]models.Project, error) {
	const op = "project_service.ListProjects"

	projects, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return projects, nil
}

// ListProjectsByIDDesc is the ordering used by the management page.
func (s *ProjectService) ListProjectsByIDDesc(ctx context.Context) ([]models.Project, error) {
	projects, err := s.ListProjects(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].ID > projects[j].ID
	})

	return projects, nil
}

func (s *ProjectService) GetProject(ctx context.Context, id string) (*models.Project, error) {
	const op = "project_service.GetProject"

	projects, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(projects, id)
	if i < 0 {
		return nil, storage.ErrProjectNotFound
	}

	return &projects[i], nil
}

// CreateProject валидирует id, сохраняет загруженные картинки и добавляет проект в хранилище
func (s *ProjectService) CreateProject(ctx context.Context, input dto.CreateProjectInput) (*models.Project, error) {
	const op = "project_service.CreateProject"

	id := strings.TrimSpace(input.ID)

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", id),
	)

	if id == "" {
		log.Warn("project id is required")
		return nil, ErrProjectIDRequired
	}

	projects, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if indexOf(projects, id) >= 0 {
		log.Warn("project already exists")
		return nil, fmt.Errorf("%w: %s", storage.ErrProjectExists, id)
	}

	uploadDir := path.Join("projects", filestorage.SecureFilename(id))

	var saved []string
	cleanup := func() {
		for _, url := range saved {
			_ = s.files.Delete(ctx, url)
		}
	}

	mainImage, err := s.saveUpload(ctx, log, input.Image, uploadDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if mainImage != "" {
		saved = append(saved, mainImage)
	} else {
		mainImage = strings.TrimSpace(input.ImageURL)
	}

	galleryFiles := input.GalleryImages
	if len(galleryFiles) > s.galleryLimit {
		log.Debug("gallery truncated", slog.Int("received", len(galleryFiles)), slog.Int("limit", s.galleryLimit))
		galleryFiles = galleryFiles[:s.galleryLimit]
	}

	gallery := make([]string, 0, len(galleryFiles))
	for _, file := range galleryFiles {
		url, err := s.saveUpload(ctx, log, file, uploadDir)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if url != "" {
			saved = append(saved, url)
			gallery = append(gallery, url)
		}
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	project := models.Project{
		ID:            id,
		Title:         input.Title,
		Summary:       input.Summary,
		Category:      input.Category,
		Status:        input.Status,
		Featured:      input.Featured,
		Priority:      input.Priority,
		MainImage:     mainImage,
		GalleryImages: gallery,
		Tags:          tags,
		Published:     input.PublishNow,
		Stat1:         input.Stat1,
		Stat2:         input.Stat2,
	}

	if !input.LongDescription.IsEmpty() {
		long := input.LongDescription
		project.LongDescription = &long
	}

	projects = append(projects, project)

	if err := s.persist(ctx, projects); err != nil {
		// Удаляем файлы, если не удалось сохранить проект
		cleanup()
		log.Error("failed to save projects", sl.Err(err))

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if input.PublishNow {
		s.regenerate(ctx, log, projects)
	}

	log.Info("project created",
		slog.Int("gallery_images", len(gallery)),
		slog.Bool("published", project.Published),
	)

	return &project, nil
}

// SetPublished toggles the published flag. The mirror is rebuilt whenever the
// project exists, even if the flag did not change. Returns false if id is unknown.
func (s *ProjectService) SetPublished(ctx context.Context, id string, published bool) (bool, error) {
	const op = "project_service.SetPublished"

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", id),
		slog.Bool("published", published),
	)

	projects, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(projects, id)
	if i < 0 {
		log.Warn("project not found")
		return false, nil
	}

	projects[i].Published = published

	if err := s.persist(ctx, projects); err != nil {
		log.Error("failed to save projects", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.regenerate(ctx, log, projects)

	log.Info("publish state updated")

	return true, nil
}

// UpdateOrdering overwrites featured and priority only.
func (s *ProjectService) UpdateOrdering(ctx context.Context, id string, input dto.UpdateOrderingInput) (bool, error) {
	const op = "project_service.UpdateOrdering"

	log := s.log.With(
		slog.String("op", op),
		slog.String("project_id", id),
	)

	projects, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(projects, id)
	if i < 0 {
		log.Warn("project not found")
		return false, nil
	}

	projects[i].Featured = input.Featured
	projects[i].Priority = input.Priority

	if err := s.persist(ctx, projects); err != nil {
		log.Error("failed to save projects", sl.Err(err))
		return false, fmt.Errorf("%s: %w", op, err)
	}

	s.regenerate(ctx, log, projects)

	log.Info("ordering updated", slog.Bool("featured", input.Featured), slog.Int("priority", input.Priority))

	return true, nil
}

// Republish rebuilds the public mirror from the current store.
func (s *ProjectService) Republish(ctx context.Context) (int, error) {
	const op = "project_service.Republish"

	projects, err := s.store.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	n, err := s.publisher.Regenerate(ctx, projects)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

// Gallery возвращает плоский список картинок всех проектов: сначала main_image, затем галерея
func (s *ProjectService) Gallery(ctx context.Context) ([]models.GalleryItem, error) {
	const op = "project_service.Gallery"

	generation := s.generation.Load()

	if s.cache != nil {
		if cached, ok := s.cache.Get(galleryCacheKey); ok {
			if entry := cached.(galleryEntry); entry.generation == generation {
				return entry.items, nil
			}
		}
	}

	projects, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]models.GalleryItem, 0)
	for _, project := range projects {
		tags := project.Tags
		if tags == nil {
			tags = []string{}
		}

		for _, url := range project.Images() {
			items = append(items, models.GalleryItem{
				URL:       url,
				Category:  project.Category,
				Tags:      tags,
				ProjectID: project.ID,
			})
		}
	}

	if s.cache != nil {
		s.cache.SetDefault(galleryCacheKey, galleryEntry{generation: generation, items: items})
	}

	return items, nil
}

func (s *ProjectService) persist(ctx context.Context, projects []models.Project) error {
	err := s.store.Save(ctx, projects)

	s.generation.Add(1)
	if s.cache != nil {
		s.cache.Delete(galleryCacheKey)
	}

	return err
}

// regenerate rebuilds the mirror; failures are logged and do not fail the caller.
func (s *ProjectService) regenerate(ctx context.Context, log *slog.Logger, projects []models.Project) {
	if _, err := s.publisher.Regenerate(ctx, projects); err != nil {
		log.Error("failed to regenerate public mirror", sl.Err(err))
	}
}

// saveUpload returns "" without error when there is no file or its type is rejected.
func (s *ProjectService) saveUpload(ctx context.Context, log *slog.Logger, file *multipart.FileHeader, dir string) (string, error) {
	if file == nil || file.Filename == "" {
		return "", nil
	}

	url, _, err := s.files.Save(ctx, file, dir)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFileType) || errors.Is(err, storage.ErrInvalidFileName) {
			metrics.UploadsTotal.WithLabelValues("projects", "rejected").Inc()
			log.Info("upload rejected", slog.String("filename", file.Filename))

			return "", nil
		}

		metrics.UploadsTotal.WithLabelValues("projects", "failed").Inc()
		log.Error("failed to save upload", slog.String("filename", file.Filename), sl.Err(err))

		return "", err
	}

	metrics.UploadsTotal.WithLabelValues("projects", "saved").Inc()

	return url, nil
}

func indexOf(projects []models.Project, id string) int {
	for i := range projects {
		if projects[i].ID == id {
			return i
		}
	}

	return -1
}
