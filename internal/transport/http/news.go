package http

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"

	"content_admin/internal/lib/logger/sl"
	newsservice "content_admin/internal/services/news_service"
	"content_admin/internal/storage"
	"content_admin/internal/transport/http/dto"
	"content_admin/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

const (
	fieldImage            = "image"
	fieldAdditionalImages = "additional-images"
)

// ListNews godoc
// @Summary Список новостей
// @Tags news
// @Produce json
// @Success 200 {array} models.Article
// @Failure 500 {object} response.ErrorResponse
// @Router /api/news [get]
func (r *Routers) ListNews(c echo.Context) error {
	const op = "http.routers.ListNews"

	log := r.log.With(
		slog.String("op", op),
	)

	articles, err := r.NewsService.ListArticles(c.Request().Context())
	if err != nil {
		log.Error("failed to list articles", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, articles)
}

// GetNews godoc
// @Summary Новость по id
// @Tags news
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} models.Article
// @Failure 404 {object} response.ErrorResponse "Article not found"
// @Router /api/news/{id} [get]
func (r *Routers) GetNews(c echo.Context) error {
	const op = "http.routers.GetNews"

	log := r.log.With(
		slog.String("op", op),
		slog.String("article_id", c.Param("id")),
	)

	article, err := r.NewsService.GetArticle(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrArticleNotFound)
		}

		log.Error("failed to get article", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, article)
}

// CreateNews godoc
// @Summary Создание новости
// @Description title, category и content обязательны. author по умолчанию "SCCF Team".
// @Tags news
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Заголовок"
// @Param category formData string true "Категория"
// @Param content formData string true "Текст"
// @Param author formData string false "Автор"
// @Param excerpt formData string false "Анонс"
// @Param image formData file false "Главная картинка"
// @Param additional-images formData file false "Дополнительные картинки"
// @Success 201 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /api/news [post]
func (r *Routers) CreateNews(c echo.Context) error {
	const op = "http.routers.CreateNews"

	log := r.log.With(
		slog.String("op", op),
	)

	params := formParams(c)

	input := dto.CreateArticleInput{
		Title:    params.Get("title"),
		Category: params.Get("category"),
		Content:  params.Get("content"),
		Excerpt:  params.Get("excerpt"),
		Author:   optional(params, "author"),
	}
	input.Image, input.AdditionalImages = articleFiles(c)

	article, err := r.NewsService.CreateArticle(c.Request().Context(), input)
	if err != nil {
		if errors.Is(err, newsservice.ErrValidation) {
			return c.JSON(http.StatusBadRequest, response.ErrArticleRequiredFields)
		}

		log.Error("failed to create article", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusCreated, response.MessageResponse{
		Message: "Article created successfully",
		ID:      article.ID,
	})
}

// UpdateNews godoc
// @Summary Частичное обновление новости
// @Description Меняются только присланные поля. Новые additional-images дописываются к списку.
// @Tags news
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse "Article not found"
// @Failure 500 {object} response.ErrorResponse
// @Router /api/news/{id} [put]
func (r *Routers) UpdateNews(c echo.Context) error {
	const op = "http.routers.UpdateNews"

	id := c.Param("id")

	log := r.log.With(
		slog.String("op", op),
		slog.String("article_id", id),
	)

	params := formParams(c)

	input := dto.UpdateArticleInput{
		Title:    optional(params, "title"),
		Category: optional(params, "category"),
		Author:   optional(params, "author"),
		Excerpt:  optional(params, "excerpt"),
		Content:  optional(params, "content"),
	}
	input.Image, input.AdditionalImages = articleFiles(c)

	if _, err := r.NewsService.UpdateArticle(c.Request().Context(), id, input); err != nil {
		if errors.Is(err, storage.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrArticleNotFound)
		}

		log.Error("failed to update article", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, response.MessageResponse{Message: "Article updated successfully"})
}

// DeleteNews godoc
// @Summary Удаление новости
// @Description Файлы статьи удаляются по возможности, ошибки игнорируются
// @Tags news
// @Produce json
// @Param id path string true "ID статьи"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse "Article not found"
// @Router /api/news/{id} [delete]
func (r *Routers) DeleteNews(c echo.Context) error {
	const op = "http.routers.DeleteNews"

	id := c.Param("id")

	log := r.log.With(
		slog.String("op", op),
		slog.String("article_id", id),
	)

	if err := r.NewsService.DeleteArticle(c.Request().Context(), id); err != nil {
		if errors.Is(err, storage.ErrArticleNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrArticleNotFound)
		}

		log.Error("failed to delete article", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, response.MessageResponse{Message: "Article deleted successfully"})
}

// formParams returns the posted form values without the query string;
// a body that is not a form yields none.
func formParams(c echo.Context) url.Values {
	if _, err := c.FormParams(); err != nil || c.Request().PostForm == nil {
		return url.Values{}
	}

	return c.Request().PostForm
}

// optional distinguishes an absent field (nil) from an empty one.
func optional(params url.Values, name string) *string {
	if !params.Has(name) {
		return nil
	}

	v := params.Get(name)
	return &v
}

func articleFiles(c echo.Context) (*multipart.FileHeader, []*multipart.FileHeader) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}

	return firstFile(form, fieldImage), form.File[fieldAdditionalImages]
}
