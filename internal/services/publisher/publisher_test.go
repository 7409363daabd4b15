package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"content_admin/internal/domain/models"
	"content_admin/internal/storage/jsonstore"
	redisstorage "content_admin/internal/storage/redis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyMirrorUpdated(ctx context.Context, ev redisstorage.MirrorEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type failingStore struct{}

func (failingStore) Save(context.Context, []models.Project) error { return errors.New("disk full") }
func (failingStore) Path() string                                { return "/nowhere/projects.json" }

func testProjects() []models.Project {
	return []models.Project{
		{ID: "a", Published: true, Tags: []string{}, GalleryImages: []string{}},
		{ID: "b", Published: false, Tags: []string{}, GalleryImages: []string{}},
		{ID: "c", Published: true, Priority: 3, Tags: []string{"x"}, GalleryImages: []string{"/uploads/projects/c/1.png"}},
	}
}

func TestPublisher_Regenerate(t *testing.T) {
	ctx := context.Background()
	log := slog.Default()
	path := filepath.Join(t.TempDir(), "assets", "projects.json")
	mirror := jsonstore.New[models.Project](log, path, jsonstore.Strict)

	notifier := new(MockNotifier)
	notifier.On("NotifyMirrorUpdated", ctx, mock.MatchedBy(func(ev redisstorage.MirrorEvent) bool {
		return ev.Published == 2 && ev.Path == path
	})).Return(nil).Once()

	p := New(log, mirror, notifier)

	n, err := p.Regenerate(ctx, testProjects())
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := mirror.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	want, err := json.Marshal(testProjects()[2])
	require.NoError(t, err)
	stored, err := json.Marshal(got[1])
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(stored))

	notifier.AssertExpectations(t)
}

func TestPublisher_RegenerateOverwrites(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "projects.json")
	mirror := jsonstore.New[models.Project](slog.Default(), path, jsonstore.Strict)
	p := New(slog.Default(), mirror, nil)

	_, err := p.Regenerate(ctx, testProjects())
	require.NoError(t, err)

	n, err := p.Regenerate(ctx, []models.Project{{ID: "b"}})
	require.NoError(t, err)
	assert.Zero(t, n)

	got, err := mirror.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPublisher_NotifierErrorIsIgnored(t *testing.T) {
	ctx := context.Background()
	mirror := jsonstore.New[models.Project](slog.Default(), filepath.Join(t.TempDir(), "p.json"), jsonstore.Strict)

	notifier := new(MockNotifier)
	notifier.On("NotifyMirrorUpdated", ctx, mock.Anything).Return(errors.New("redis down")).Once()

	n, err := New(slog.Default(), mirror, notifier).Regenerate(ctx, testProjects())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	notifier.AssertExpectations(t)
}

func TestPublisher_StoreError(t *testing.T) {
	notifier := new(MockNotifier)

	_, err := New(slog.Default(), failingStore{}, notifier).Regenerate(context.Background(), testProjects())
	assert.ErrorContains(t, err, "disk full")
	notifier.AssertNotCalled(t, "NotifyMirrorUpdated", mock.Anything, mock.Anything)
}
