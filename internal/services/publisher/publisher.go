package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"content_admin/internal/domain/models"
	"content_admin/internal/lib/logger/sl"
	"content_admin/internal/metrics"
	redisstorage "content_admin/internal/storage/redis"
)

// MirrorStore is the public projects.json consumed by the static site.
type MirrorStore interface {
	Save(ctx context.Context, records []models.Project) error
	Path() string
}

type Notifier interface {
	NotifyMirrorUpdated(ctx context.Context, ev redisstorage.MirrorEvent) error
}

// Publisher пересобирает публичное зеркало из опубликованных проектов
type Publisher struct {
	log      *slog.Logger
	store    MirrorStore
	notifier Notifier
}

// New returns a Publisher. notifier may be nil.
func New(log *slog.Logger, store MirrorStore, notifier Notifier) *Publisher {
	return &Publisher{
		log:      log,
		store:    store,
		notifier: notifier,
	}
}

// Regenerate overwrites the mirror with every project whose Published flag
// is set, keeping store order and full records. It returns how many were written.
func (p *Publisher) Regenerate(ctx context.Context, projects []models.Project) (int, error) {
	const op = "publisher.Publisher.Regenerate"

	log := p.log.With(
		slog.String("op", op),
		slog.String("path", p.store.Path()),
	)

	published := Published(projects)

	if err := p.store.Save(ctx, published); err != nil {
		metrics.MirrorRegenerations.WithLabelValues("failed").Inc()
		log.Error("failed to write public mirror", sl.Err(err))

		return 0, fmt.Errorf("%s: %w", op, err)
	}

	metrics.MirrorRegenerations.WithLabelValues("ok").Inc()
	log.Info("public mirror regenerated", slog.Int("published", len(published)))

	if p.notifier != nil {
		ev := redisstorage.MirrorEvent{
			Published:   len(published),
			Path:        p.store.Path(),
			GeneratedAt: time.Now().UTC(),
		}

		if err := p.notifier.NotifyMirrorUpdated(ctx, ev); err != nil {
			log.Warn("failed to notify mirror update", sl.Err(err))
		}
	}

	return len(published), nil
}

func Published(projects []models.Project) []models.Project {
	published := make([]models.Project, 0, len(projects))
	for _, project := range projects {
		if project.Published {
			published = append(published, project)
		}
	}

	return published
}
