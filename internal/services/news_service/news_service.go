package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"content_admin/internal/domain/models"
	"content_admin/internal/lib/logger/sl"
	"content_admin/internal/metrics"
	"content_admin/internal/storage"
	"content_admin/internal/transport/http/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const uploadDir = "news"

var ErrValidation = errors.New("validation failed")

type ArticleStore interface {
	Load(ctx context.Context) ([]models.Article, error)
	Save(ctx context.Context, articles []models.Article) error
}

type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (fileURL string, fileSize int64, err error)
	Delete(ctx context.Context, fileURL string) error
}

type NewsService struct {
	log      *slog.Logger
	store    ArticleStore
	files    FileStorage
	validate *validator.Validate
	now      func() time.Time
}

func NewNewsService(log *slog.Logger, store ArticleStore, files FileStorage) *NewsService {
	return &NewsService{
		log:      log,
		store:    store,
		files:    files,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *NewsService) ListArticles(ctx context.Context) ([]models.Article, error) {
	const op = "news_service.ListArticles"

	articles, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return articles, nil
}

func (s *NewsService) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	const op = "news_service.GetArticle"

	articles, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(articles, id)
	if i < 0 {
		return nil, storage.ErrArticleNotFound
	}

	return &articles[i], nil
}

// CreateArticle проверяет обязательные поля, сохраняет картинки и добавляет статью
func (s *NewsService) CreateArticle(ctx context.Context, input dto.CreateArticleInput) (*models.Article, error) {
	const op = "news_service.CreateArticle"

	log := s.log.With(
		slog.String("op", op),
	)

	if err := s.validate.Struct(input); err != nil {
		log.Warn("invalid article", sl.Err(err))
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	author := models.DefaultArticleAuthor
	if input.Author != nil {
		author = *input.Author
	}

	image, err := s.saveUpload(ctx, log, input.Image)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	images, err := s.saveUploads(ctx, log, input.AdditionalImages)
	if err != nil {
		s.discard(ctx, log, image)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	article := models.Article{
		ID:       uuid.NewString(),
		Title:    input.Title,
		Category: input.Category,
		Author:   author,
		Excerpt:  input.Excerpt,
		Content:  input.Content,
		Image:    image,
		Images:   images,
		Date:     s.now().Format(models.ArticleDateLayout),
	}

	articles, err := s.store.Load(ctx)
	if err != nil {
		s.discard(ctx, log, article.Files()...)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	articles = append(articles, article)

	if err := s.store.Save(ctx, articles); err != nil {
		s.discard(ctx, log, article.Files()...)
		log.Error("failed to save articles", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("article created",
		slog.String("article_id", article.ID),
		slog.Int("images", len(images)),
	)

	return &article, nil
}

// UpdateArticle overwrites only the fields that were sent. New additional
// images are appended; a new main image replaces the old URL but the old file stays on disk.
func (s *NewsService) UpdateArticle(ctx context.Context, id string, input dto.UpdateArticleInput) (*models.Article, error) {
	const op = "news_service.UpdateArticle"

	log := s.log.With(
		slog.String("op", op),
		slog.String("article_id", id),
	)

	articles, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(articles, id)
	if i < 0 {
		log.Warn("article not found")
		return nil, storage.ErrArticleNotFound
	}

	article := &articles[i]

	setIfPresent(&article.Title, input.Title)
	setIfPresent(&article.Category, input.Category)
	setIfPresent(&article.Author, input.Author)
	setIfPresent(&article.Excerpt, input.Excerpt)
	setIfPresent(&article.Content, input.Content)

	image, err := s.saveUpload(ctx, log, input.Image)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if image != "" {
		article.Image = image
	}

	images, err := s.saveUploads(ctx, log, input.AdditionalImages)
	if err != nil {
		s.discard(ctx, log, image)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if article.Images == nil {
		article.Images = []string{}
	}
	article.Images = append(article.Images, images...)

	if err := s.store.Save(ctx, articles); err != nil {
		s.discard(ctx, log, append([]string{image}, images...)...)
		log.Error("failed to save articles", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("article updated", slog.Int("new_images", len(images)))

	return article, nil
}

// DeleteArticle removes the article, then tries to remove its files.
// File removal errors are logged and ignored.
func (s *NewsService) DeleteArticle(ctx context.Context, id string) error {
	const op = "news_service.DeleteArticle"

	log := s.log.With(
		slog.String("op", op),
		slog.String("article_id", id),
	)

	articles, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	i := indexOf(articles, id)
	if i < 0 {
		log.Warn("article not found")
		return storage.ErrArticleNotFound
	}

	article := articles[i]

	remaining := make([]models.Article, 0, len(articles)-1)
	for _, a := range articles {
		if a.ID != id {
			remaining = append(remaining, a)
		}
	}

	if err := s.store.Save(ctx, remaining); err != nil {
		log.Error("failed to save articles", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, url := range article.Files() {
		if err := s.files.Delete(ctx, url); err != nil {
			log.Debug("file not removed", slog.String("url", url), sl.Err(err))
		}
	}

	log.Info("article deleted")

	return nil
}

func (s *NewsService) saveUploads(ctx context.Context, log *slog.Logger, files []*multipart.FileHeader) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.saveUpload(ctx, log, file)
		if err != nil {
			s.discard(ctx, log, urls...)
			return nil, err
		}
		if url != "" {
			urls = append(urls, url)
		}
	}

	return urls, nil
}

// saveUpload returns "" when there is no file or the file type is not accepted.
func (s *NewsService) saveUpload(ctx context.Context, log *slog.Logger, file *multipart.FileHeader) (string, error) {
	if file == nil || file.Filename == "" {
		return "", nil
	}

	url, _, err := s.files.Save(ctx, file, uploadDir)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidFileType) || errors.Is(err, storage.ErrInvalidFileName) {
			metrics.UploadsTotal.WithLabelValues("news", "rejected").Inc()
			log.Info("upload rejected", slog.String("filename", file.Filename))

			return "", nil
		}

		metrics.UploadsTotal.WithLabelValues("news", "failed").Inc()
		log.Error("failed to save upload", slog.String("filename", file.Filename), sl.Err(err))

		return "", err
	}

	metrics.UploadsTotal.WithLabelValues("news", "saved").Inc()

	return url, nil
}

// discard removes files saved by a request that failed afterwards.
func (s *NewsService) discard(ctx context.Context, log *slog.Logger, urls ...string) {
	for _, url := range urls {
		if url == "" {
			continue
		}

		if err := s.files.Delete(ctx, url); err != nil {
			log.Warn("failed to remove orphaned upload", slog.String("url", url), sl.Err(err))
		}
	}
}

func setIfPresent(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func indexOf(articles []models.Article, id string) int {
	for i := range articles {
		if articles[i].ID == id {
			return i
		}
	}

	return -1
}
