package http

import (
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"content_admin/internal/domain/models"
	"content_admin/internal/lib/logger/sl"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates рендерит html-страницы админки через echo.Renderer
type Templates struct {
	templates *template.Template
}

func NewTemplates() *Templates {
	return &Templates{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

type uploadPage struct {
	Flashes []string
}

type managePage struct {
	Flashes  []string
	Projects []models.Project
}

// AdminIndex godoc
// @Summary Форма загрузки проекта
// @Tags admin
// @Produce html
// @Success 200
// @Router /admin [get]
func (r *Routers) AdminIndex(c echo.Context) error {
	return c.Render(http.StatusOK, "upload.html", uploadPage{
		Flashes: r.popFlashes(c),
	})
}

// AdminManage godoc
// @Summary Управление проектами
// @Description Проекты по убыванию id
// @Tags admin
// @Produce html
// @Success 200
// @Router /admin/manage [get]
func (r *Routers) AdminManage(c echo.Context) error {
	const op = "http.routers.AdminManage"

	log := r.log.With(
		slog.String("op", op),
	)

	projects, err := r.ProjectService.ListProjectsByIDDesc(c.Request().Context())
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load projects")
	}

	return c.Render(http.StatusOK, "manage.html", managePage{
		Flashes:  r.popFlashes(c),
		Projects: projects,
	})
}

func (r *Routers) NewsAdmin(c echo.Context) error {
	return c.Render(http.StatusOK, "news-admin.html", nil)
}
