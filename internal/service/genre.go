package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/cache"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
	"github.com/goodnessaig1/gidolee-video-share/internal/validation"
)

// Messages returned by the Genre Gate.
const (
	msgGenreRequired = "Genre is required"
	msgGenreInvalid  = "Invalid genre"
)

const DefaultPopularGenres = 10

// GenreService owns the genre catalog and is the Genre Gate used by content
// writes and searches.
type GenreService struct {
	repo   repository.GenreRepository
	cache  cache.GenreCache // nil disables caching
	logger *zap.Logger
}

func NewGenreService(repo repository.GenreRepository, genreCache cache.GenreCache, logger *zap.Logger) *GenreService {
	return &GenreService{repo: repo, cache: genreCache, logger: logger.Named("GenreService")}
}

// Exists reports whether a genre with the given id is stored. Malformed ids
// are simply absent.
func (s *GenreService) Exists(ctx context.Context, rawID string) (bool, error) {
	id, err := uuid.Parse(strings.TrimSpace(rawID))
	if err != nil {
		return false, nil
	}
	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check genre exists: %w", err)
	}
	return ok, nil
}

// Resolve runs the gate on a client-supplied genre id and returns the parsed
// id. Absent and unknown genres are validation errors.
func (s *GenreService) Resolve(ctx context.Context, rawID string) (uuid.UUID, error) {
	rawID = strings.TrimSpace(rawID)
	if rawID == "" {
		return uuid.Nil, model.NewValidationError(msgGenreRequired)
	}
	ok, err := s.Exists(ctx, rawID)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, model.NewValidationError(msgGenreInvalid)
	}
	return uuid.MustParse(rawID), nil
}

func (s *GenreService) Create(ctx context.Context, req model.CreateGenreRequest) (*model.Genre, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	slug := model.Slugify(req.Name)
	if slug == "" {
		return nil, model.NewValidationError("name must contain letters or digits")
	}

	genre := &model.Genre{
		Name:        req.Name,
		Slug:        slug,
		Description: req.Description,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, genre); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("genre created", zap.Stringer("id", genre.ID), zap.String("slug", genre.Slug))
	return genre, nil
}

func (s *GenreService) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySlug finds an active genre by slug.
func (s *GenreService) GetBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	return s.repo.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
}

// List returns genres sorted by name.
func (s *GenreService) List(ctx context.Context, page, limit int, activeOnly bool) (*model.GenreListResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultLimit)
	genres, total, err := s.repo.List(ctx, activeOnly, p)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return &model.GenreListResponse{Genres: nonNilGenres(genres), Pagination: model.NewPagination(p, total)}, nil
}

// Active returns every active genre, served from the cache when possible.
// Cache failures fall through to the store.
func (s *GenreService) Active(ctx context.Context) ([]model.Genre, error) {
	if s.cache != nil {
		genres, ok, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("genre cache read failed", zap.Error(err))
		} else if ok {
			return genres, nil
		}
	}

	genres, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active genres: %w", err)
	}
	genres = nonNilGenres(genres)

	if s.cache != nil {
		if err := s.cache.SetActive(ctx, genres); err != nil {
			s.logger.Warn("genre cache fill failed", zap.Error(err))
		}
	}
	return genres, nil
}

// Popular ranks active genres by how much content they hold.
func (s *GenreService) Popular(ctx context.Context, limit int) ([]model.Genre, error) {
	if limit <= 0 {
		limit = DefaultPopularGenres
	}
	if limit > model.MaxLimit {
		limit = model.MaxLimit
	}
	genres, err := s.repo.Popular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("popular genres: %w", err)
	}
	return nonNilGenres(genres), nil
}

func (s *GenreService) Search(ctx context.Context, query string, page, limit int) (*model.GenreListResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.NewValidationError("Search query is required")
	}
	p := model.NewPageRequest(page, limit, model.DefaultLimit)
	genres, total, err := s.repo.Search(ctx, query, p)
	if err != nil {
		return nil, fmt.Errorf("search genres: %w", err)
	}
	return &model.GenreListResponse{Genres: nonNilGenres(genres), Pagination: model.NewPagination(p, total)}, nil
}

// Update applies a partial update. The slug follows the name.
func (s *GenreService) Update(ctx context.Context, id uuid.UUID, req model.UpdateGenreRequest) (*model.Genre, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	genre, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		slug := model.Slugify(name)
		if slug == "" {
			return nil, model.NewValidationError("name must contain letters or digits")
		}
		genre.Name = name
		genre.Slug = slug
	}
	if req.Description != nil {
		genre.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		genre.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, genre); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return genre, nil
}

// SoftDelete deactivates a genre; content keeps referencing it.
func (s *GenreService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *GenreService) HardDelete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.HardDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("genre permanently deleted", zap.Stringer("id", id))
	return nil
}

// Seed inserts the default catalog, skipping names that already exist, and
// returns how many genres were created.
func (s *GenreService) Seed(ctx context.Context) (int, error) {
	created := 0
	for _, req := range model.DefaultGenres {
		exists, err := s.repo.ExistsByName(ctx, req.Name)
		if err != nil {
			return created, fmt.Errorf("check genre %q: %w", req.Name, err)
		}
		if exists {
			continue
		}
		if _, err := s.Create(ctx, req); err != nil {
			if errors.Is(err, model.ErrGenreExists) {
				continue
			}
			return created, fmt.Errorf("seed genre %q: %w", req.Name, err)
		}
		created++
	}
	return created, nil
}

func (s *GenreService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("genre cache invalidation failed", zap.Error(err))
	}
}

func nonNilGenres(g []model.Genre) []model.Genre {
	if g == nil {
		return []model.Genre{}
	}
	return g
}
