// Package seed fills a development database with the default genre catalog
// and optional fake users and content.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
)

// DemoPassword is the password of every fake account.
const DemoPassword = "password123"

// Factory builds fake records from its own faker so runs can be reproduced.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory returns a factory seeded with seed; 0 picks a random seed.
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

func (f *Factory) RegisterRequest() model.RegisterRequest {
	role := model.RoleUser
	if f.faker.Bool() {
		role = model.RoleCreator
	}
	return model.RegisterRequest{
		FullName: f.faker.Name(),
		Email:    fmt.Sprintf("%s%d@example.com", strings.ToLower(f.faker.Username()), f.faker.Number(100, 999)),
		Password: DemoPassword,
		Role:     role,
	}
}

func (f *Factory) Content(userID, genreID uuid.UUID) *model.Content {
	isImage := f.faker.Number(0, 3) == 0
	key := "uploads/demo-" + f.faker.UUID()

	c := &model.Content{
		UserID:      userID,
		GenreID:     genreID,
		Title:       strings.TrimSuffix(f.faker.Sentence(f.faker.Number(2, 6)), "."),
		Description: f.faker.Paragraph(1, 2, 12, " "),
		MediaKey:    key,
		MediaType:   model.MediaTypeVideo,
		IsPublic:    true,
		Tags:        f.tags(),
	}
	if isImage {
		c.MediaType = model.MediaTypeImage
		c.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/1280/720", f.faker.UUID())
		thumb := fmt.Sprintf("https://picsum.photos/seed/%s/480/270", f.faker.UUID())
		c.Thumbnail = &thumb
	} else {
		c.MediaURL = "https://cdn.example.com/" + key + ".mp4"
		d := float64(f.faker.Number(5, 180))
		c.Duration = &d
	}
	if f.faker.Bool() {
		city := f.faker.City()
		c.Location = &city
	}
	return c
}

func (f *Factory) tags() []string {
	n := f.faker.Number(0, 4)
	tags := make([]string, 0, n)
	for i := 0; i < n; i++ {
		tags = append(tags, strings.ToLower(f.faker.Word()))
	}
	return tags
}

// Registrar creates accounts through the normal registration path.
type Registrar interface {
	Register(ctx context.Context, req model.RegisterRequest, avatar *model.Upload) (*model.AuthResponse, error)
}

// Demo creates users fake accounts each owning perUser content items spread
// over the active genres.
type Demo struct {
	Users    Registrar
	Contents repository.ContentRepository
	Genres   repository.GenreRepository
	Factory  *Factory
	Logger   *zap.Logger
}

// Run returns the number of accounts and content items created.
func (d *Demo) Run(ctx context.Context, users, perUser int) (int, int, error) {
	genres, err := d.Genres.ListActive(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list genres: %w", err)
	}
	if len(genres) == 0 {
		return 0, 0, fmt.Errorf("no active genres; seed the catalog first")
	}

	var createdUsers, createdContent int
	for i := 0; i < users; i++ {
		resp, err := d.Users.Register(ctx, d.Factory.RegisterRequest(), nil)
		if err != nil {
			return createdUsers, createdContent, fmt.Errorf("register demo user: %w", err)
		}
		createdUsers++

		for j := 0; j < perUser; j++ {
			genre := genres[(i*perUser+j)%len(genres)]
			if err := d.Contents.Create(ctx, d.Factory.Content(resp.User.ID, genre.ID)); err != nil {
				return createdUsers, createdContent, fmt.Errorf("create demo content: %w", err)
			}
			createdContent++
		}
		d.Logger.Debug("demo user seeded", zap.String("email", resp.User.Email))
	}
	return createdUsers, createdContent, nil
}
