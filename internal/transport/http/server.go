package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"content_admin/internal/domain/models"
	"content_admin/internal/lib/logger/sl"
	"content_admin/internal/transport/http/dto"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	_ "content_admin/docs"
)

const flashSession = "flash"

type ProjectService interface {
	ListProjects(ctx context.Context) ([]models.Project, error)
	ListProjectsByIDDesc(ctx context.Context) ([]models.Project, error)
	GetProject(ctx context.Context, id string) (*models.Project, error)
	CreateProject(ctx context.Context, input dto.CreateProjectInput) (*models.Project, error)
	SetPublished(ctx context.Context, id string, published bool) (bool, error)
	UpdateOrdering(ctx context.Context, id string, input dto.UpdateOrderingInput) (bool, error)
	Republish(ctx context.Context) (int, error)
	Gallery(ctx context.Context) ([]models.GalleryItem, error)
}

type NewsService interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	GetArticle(ctx context.Context, id string) (*models.Article, error)
	CreateArticle(ctx context.Context, input dto.CreateArticleInput) (*models.Article, error)
	UpdateArticle(ctx context.Context, id string, input dto.UpdateArticleInput) (*models.Article, error)
	DeleteArticle(ctx context.Context, id string) error
}

// Routers держит обработчики обоих сервисов. Бинарь проектов передает nil
// вместо NewsService и наоборот.
type Routers struct {
	log            *slog.Logger
	ProjectService ProjectService
	NewsService    NewsService
}

func NewRouter(log *slog.Logger, projectService ProjectService, newsService NewsService) *Routers {
	return &Routers{
		log:            log,
		ProjectService: projectService,
		NewsService:    newsService,
	}
}

// addFlash stores a one-shot message for the next rendered admin page.
// Without a session store the message is dropped.
func (r *Routers) addFlash(c echo.Context, msg string) {
	sess, err := session.Get(flashSession, c)
	if err != nil {
		r.log.Debug("flash skipped", sl.Err(err))
		return
	}

	sess.AddFlash(msg)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Warn("failed to save flash", sl.Err(err))
	}
}

func (r *Routers) popFlashes(c echo.Context) []string {
	sess, err := session.Get(flashSession, c)
	if err != nil {
		return nil
	}

	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}

	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Warn("failed to save session", sl.Err(err))
	}

	msgs := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			msgs = append(msgs, s)
		}
	}

	return msgs
}

// wantsJSON: Accept mentions application/json or ?ajax=1.
func wantsJSON(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON) ||
		c.QueryParam("ajax") == "1"
}

func Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/admin")
}
