package http

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"content_admin/internal/domain/models"
	"content_admin/internal/lib/logger/sl"
	projectservice "content_admin/internal/services/project_service"
	"content_admin/internal/storage"
	"content_admin/internal/transport/http/dto"
	"content_admin/internal/transport/http/dto/response"

	"github.com/labstack/echo/v4"
)

// ListProjects godoc
// @Summary Список проектов
// @Description Все проекты из хранилища, опубликованные и черновики
// @Tags projects
// @Produce json
// @Success 200 {array} models.Project
// @Failure 500 {object} response.ErrorResponse
// @Router /api/projects [get]
func (r *Routers) ListProjects(c echo.Context) error {
	const op = "http.routers.ListProjects"

	log := r.log.With(
		slog.String("op", op),
	)

	projects, err := r.ProjectService.ListProjects(c.Request().Context())
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, projects)
}

// GetProject godoc
// @Summary Проект по id
// @Tags projects
// @Produce json
// @Param id path string true "ID проекта"
// @Success 200 {object} models.Project
// @Failure 404 {object} response.ErrorResponse "Not found"
// @Router /api/projects/{id} [get]
func (r *Routers) GetProject(c echo.Context) error {
	const op = "http.routers.GetProject"

	log := r.log.With(
		slog.String("op", op),
		slog.String("project_id", c.Param("id")),
	)

	project, err := r.ProjectService.GetProject(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrProjectNotFound)
		}

		log.Error("failed to get project", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, project)
}

// Gallery godoc
// @Summary Галерея
// @Description Плоский список картинок всех проектов: main_image, затем gallery_images
// @Tags projects
// @Produce json
// @Success 200 {array} models.GalleryItem
// @Router /api/gallery [get]
func (r *Routers) Gallery(c echo.Context) error {
	const op = "http.routers.Gallery"

	log := r.log.With(
		slog.String("op", op),
	)

	items, err := r.ProjectService.Gallery(c.Request().Context())
	if err != nil {
		log.Error("failed to build gallery", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(http.StatusOK, items)
}

// UploadProject godoc
// @Summary Создание проекта
// @Description Multipart-форма админки. При успехе редирект на /admin.
// @Tags admin
// @Accept multipart/form-data
// @Produce plain
// @Param id formData string true "ID проекта (также proj_id или project_id)"
// @Param image formData file false "Главная картинка"
// @Param gallery_images formData file false "Картинки галереи, не больше 15"
// @Param image_url formData string false "Внешний URL главной картинки"
// @Param publish_now formData string false "Сразу опубликовать"
// @Success 302
// @Failure 400 {string} string "Missing project id (form field name: id)."
// @Router /admin/upload [post]
func (r *Routers) UploadProject(c echo.Context) error {
	const op = "http.routers.UploadProject"

	input := bindProjectForm(c)

	log := r.log.With(
		slog.String("op", op),
		slog.String("project_id", input.ID),
	)

	project, err := r.ProjectService.CreateProject(c.Request().Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, projectservice.ErrProjectIDRequired):
			return c.String(http.StatusBadRequest, "Missing project id (form field name: id).")
		case errors.Is(err, storage.ErrProjectExists):
			return c.String(http.StatusBadRequest, fmt.Sprintf("Project with id '%s' already exists.", input.ID))
		}

		log.Error("failed to create project", sl.Err(err))
		return c.String(http.StatusInternalServerError, "Failed to save project.")
	}

	r.addFlash(c, fmt.Sprintf("Project '%s' saved.", project.ID))

	return c.Redirect(http.StatusFound, "/admin")
}

// PublishProject godoc
// @Summary Опубликовать проект
// @Tags admin
// @Param id path string true "ID проекта"
// @Success 302
// @Router /admin/publish/{id} [post]
func (r *Routers) PublishProject(c echo.Context) error {
	return r.setPublished(c, true)
}

// UnpublishProject godoc
// @Summary Снять проект с публикации
// @Tags admin
// @Param id path string true "ID проекта"
// @Success 302
// @Router /admin/unpublish/{id} [post]
func (r *Routers) UnpublishProject(c echo.Context) error {
	return r.setPublished(c, false)
}

func (r *Routers) setPublished(c echo.Context, published bool) error {
	const op = "http.routers.setPublished"

	id := c.Param("id")

	log := r.log.With(
		slog.String("op", op),
		slog.String("project_id", id),
	)

	found, err := r.ProjectService.SetPublished(c.Request().Context(), id, published)
	if err != nil {
		log.Error("failed to change publish state", sl.Err(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save project")
	}

	switch {
	case !found:
		r.addFlash(c, fmt.Sprintf("Project '%s' not found.", id))
	case published:
		r.addFlash(c, fmt.Sprintf("Project '%s' published.", id))
	default:
		r.addFlash(c, fmt.Sprintf("Project '%s' unpublished.", id))
	}

	return c.Redirect(http.StatusFound, "/admin/manage")
}

// Republish godoc
// @Summary Пересобрать публичное зеркало
// @Tags admin
// @Success 302
// @Router /admin/republish [post]
func (r *Routers) Republish(c echo.Context) error {
	const op = "http.routers.Republish"

	log := r.log.With(
		slog.String("op", op),
	)

	n, err := r.ProjectService.Republish(c.Request().Context())
	if err != nil {
		log.Error("failed to republish", sl.Err(err))
		r.addFlash(c, "Failed to write public projects file.")
		return c.Redirect(http.StatusFound, "/admin/manage")
	}

	r.addFlash(c, fmt.Sprintf("Republished %d project(s).", n))

	return c.Redirect(http.StatusFound, "/admin/manage")
}

// UpdateProject godoc
// @Summary Порядок вывода проекта
// @Description Меняет только featured и priority. JSON-ответ при Accept: application/json или ?ajax=1, иначе редирект.
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "ID проекта"
// @Param featured formData string false "Чекбокс featured"
// @Param priority formData string false "Приоритет, нечисловое значение = 0"
// @Success 200 {object} response.OKResponse
// @Success 302
// @Router /admin/update/{id} [post]
func (r *Routers) UpdateProject(c echo.Context) error {
	const op = "http.routers.UpdateProject"

	id := c.Param("id")

	log := r.log.With(
		slog.String("op", op),
		slog.String("project_id", id),
	)

	input := dto.UpdateOrderingInput{
		Featured: dto.Truthy(c.FormValue("featured")),
		Priority: dto.ParsePriority(c.FormValue("priority")),
	}

	updated, err := r.ProjectService.UpdateOrdering(c.Request().Context(), id, input)
	if err != nil {
		log.Error("failed to update ordering", sl.Err(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save project")
	}

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, response.OKResponse{OK: updated})
	}

	return c.Redirect(http.StatusFound, "/admin/manage")
}

func bindProjectForm(c echo.Context) dto.CreateProjectInput {
	id := firstNonEmpty(c.FormValue("id"), c.FormValue("proj_id"), c.FormValue("project_id"))

	input := dto.CreateProjectInput{
		ID:              strings.TrimSpace(id),
		Title:           localized(c, "title"),
		Summary:         localized(c, "summary"),
		Category:        formTrim(c, "category"),
		Status:          formTrim(c, "status"),
		Featured:        dto.Truthy(c.FormValue("featured")),
		Priority:        dto.ParsePriority(c.FormValue("priority")),
		Tags:            dto.ParseTags(c.FormValue("tags")),
		PublishNow:      dto.Truthy(c.FormValue("publish_now")),
		Stat1:           stat(c, "stat1"),
		Stat2:           stat(c, "stat2"),
		LongDescription: localized(c, "long"),
		ImageURL:        formTrim(c, "image_url"),
	}

	form, err := c.MultipartForm()
	if err != nil {
		return input
	}

	input.Image = firstFile(form, "image")
	input.GalleryImages = form.File["gallery_images"]

	return input
}

func localized(c echo.Context, prefix string) models.LocalizedText {
	return models.LocalizedText{
		EN: formTrim(c, prefix+"_en"),
		SI: formTrim(c, prefix+"_si"),
		TA: formTrim(c, prefix+"_ta"),
	}
}

func stat(c echo.Context, prefix string) models.Stat {
	return models.Stat{
		Number: formTrim(c, prefix+"_number"),
		Label:  localized(c, prefix+"_label"),
	}
}

func formTrim(c echo.Context, name string) string {
	return strings.TrimSpace(c.FormValue(name))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}

func firstFile(form *multipart.Form, field string) *multipart.FileHeader {
	files := form.File[field]
	if len(files) == 0 {
		return nil
	}

	return files[0]
}
