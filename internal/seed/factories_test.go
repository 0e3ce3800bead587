package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
	"github.com/goodnessaig1/gidolee-video-share/internal/validation"
)

func TestFactory_Reproducible(t *testing.T) {
	a, b := NewFactory(42), NewFactory(42)
	assert.Equal(t, a.RegisterRequest(), b.RegisterRequest())

	user, genre := uuid.New(), uuid.New()
	ca, cb := a.Content(user, genre), b.Content(user, genre)
	assert.Equal(t, ca.Title, cb.Title)
	assert.Equal(t, ca.MediaKey, cb.MediaKey)
}

func TestFactory_ProducesValidRecords(t *testing.T) {
	f := NewFactory(7)
	for i := 0; i < 25; i++ {
		req := f.RegisterRequest()
		require.NoError(t, validation.Struct(req))
		assert.NotEqual(t, model.RoleAdmin, req.Role)

		c := f.Content(uuid.New(), uuid.New())
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.MediaURL)
		assert.True(t, c.IsPublic)
		if c.MediaType == model.MediaTypeImage {
			assert.NotNil(t, c.Thumbnail)
		} else {
			assert.NotNil(t, c.Duration)
		}
	}
}

type fakeRegistrar struct{ n int }

func (f *fakeRegistrar) Register(ctx context.Context, req model.RegisterRequest, avatar *model.Upload) (*model.AuthResponse, error) {
	f.n++
	return &model.AuthResponse{User: &model.User{ID: uuid.New(), Email: req.Email}}, nil
}

type fakeGenres struct {
	repository.GenreRepository
	active []model.Genre
}

func (f fakeGenres) ListActive(ctx context.Context) ([]model.Genre, error) { return f.active, nil }

type fakeContents struct {
	repository.ContentRepository
	created []*model.Content
	failAt  int
}

func (f *fakeContents) Create(ctx context.Context, c *model.Content) error {
	if f.failAt > 0 && len(f.created)+1 == f.failAt {
		return errors.New("insert failed")
	}
	f.created = append(f.created, c)
	return nil
}

func TestDemo_Run(t *testing.T) {
	genres := []model.Genre{{ID: uuid.New()}, {ID: uuid.New()}}
	contents := &fakeContents{}
	users := &fakeRegistrar{}
	d := &Demo{Users: users, Contents: contents, Genres: fakeGenres{active: genres}, Factory: NewFactory(1), Logger: zap.NewNop()}

	u, c, err := d.Run(context.Background(), 3, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, u)
	assert.Equal(t, 6, c)
	assert.Equal(t, 3, users.n)

	perGenre := map[uuid.UUID]int{}
	for _, item := range contents.created {
		perGenre[item.GenreID]++
	}
	assert.Equal(t, 3, perGenre[genres[0].ID])
	assert.Equal(t, 3, perGenre[genres[1].ID])
}

func TestDemo_Run_Errors(t *testing.T) {
	d := &Demo{Users: &fakeRegistrar{}, Contents: &fakeContents{}, Genres: fakeGenres{}, Factory: NewFactory(1), Logger: zap.NewNop()}
	_, _, err := d.Run(context.Background(), 1, 1)
	assert.ErrorContains(t, err, "no active genres")

	contents := &fakeContents{failAt: 2}
	d = &Demo{Users: &fakeRegistrar{}, Contents: contents, Genres: fakeGenres{active: []model.Genre{{ID: uuid.New()}}}, Factory: NewFactory(1), Logger: zap.NewNop()}
	u, c, err := d.Run(context.Background(), 2, 2)
	assert.Error(t, err)
	assert.Equal(t, 1, u)
	assert.Equal(t, 1, c)
}
