package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

const genreColumns = `id, name, slug, description, is_active, created_at, updated_at`

type genreRepository struct {
	db *sqlx.DB
}

func NewGenreRepository(db *sqlx.DB) GenreRepository {
	return &genreRepository{db: db}
}

// Create inserts a genre. Name and slug are both unique; either collision
// returns ErrGenreExists.
func (r *genreRepository) Create(ctx context.Context, g *model.Genre) error {
	query := `
		INSERT INTO genres (name, slug, description, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, g.Name, g.Slug, g.Description, g.IsActive).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
	if isUniqueViolation(err) {
		return model.ErrGenreExists
	}
	if err != nil {
		return fmt.Errorf("insert genre: %w", err)
	}
	return nil
}

func (r *genreRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	return r.getOne(ctx, `SELECT `+genreColumns+` FROM genres WHERE id = $1`, id)
}

func (r *genreRepository) GetBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	return r.getOne(ctx, `SELECT `+genreColumns+` FROM genres WHERE slug = $1 AND is_active`, slug)
}

func (r *genreRepository) getOne(ctx context.Context, query string, arg any) (*model.Genre, error) {
	var g model.Genre
	err := r.db.GetContext(ctx, &g, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrGenreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get genre: %w", err)
	}
	return &g, nil
}

func (r *genreRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error) {
	genres := []model.Genre{}
	if len(ids) == 0 {
		return genres, nil
	}
	query := `SELECT ` + genreColumns + ` FROM genres WHERE id = ANY($1::uuid[]) ORDER BY name`
	if err := r.db.SelectContext(ctx, &genres, query, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("get genres by ids: %w", err)
	}
	return genres, nil
}

func (r *genreRepository) List(ctx context.Context, activeOnly bool, page model.PageRequest) ([]model.Genre, int64, error) {
	where := ""
	if activeOnly {
		where = " WHERE is_active"
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM genres`+where); err != nil {
		return nil, 0, fmt.Errorf("count genres: %w", err)
	}

	genres := []model.Genre{}
	query := `SELECT ` + genreColumns + ` FROM genres` + where + ` ORDER BY name LIMIT $1 OFFSET $2`
	if err := r.db.SelectContext(ctx, &genres, query, page.Limit, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list genres: %w", err)
	}
	return genres, total, nil
}

func (r *genreRepository) ListActive(ctx context.Context) ([]model.Genre, error) {
	genres := []model.Genre{}
	query := `SELECT ` + genreColumns + ` FROM genres WHERE is_active ORDER BY name`
	if err := r.db.SelectContext(ctx, &genres, query); err != nil {
		return nil, fmt.Errorf("list active genres: %w", err)
	}
	return genres, nil
}

// Search matches active genres whose name or description contains query.
func (r *genreRepository) Search(ctx context.Context, query string, page model.PageRequest) ([]model.Genre, int64, error) {
	pattern := likePattern(query)
	where := ` WHERE is_active AND (name ILIKE $1 OR description ILIKE $1)`

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM genres`+where, pattern); err != nil {
		return nil, 0, fmt.Errorf("count genre search: %w", err)
	}

	genres := []model.Genre{}
	q := `SELECT ` + genreColumns + ` FROM genres` + where + ` ORDER BY name LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &genres, q, pattern, page.Limit, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("search genres: %w", err)
	}
	return genres, total, nil
}

func (r *genreRepository) Popular(ctx context.Context, limit int) ([]model.Genre, error) {
	query := `
		SELECT g.id, g.name, g.slug, g.description, g.is_active, g.created_at, g.updated_at
		FROM genres g
		LEFT JOIN contents c ON c.genre_id = g.id
		WHERE g.is_active
		GROUP BY g.id
		ORDER BY COUNT(c.id) DESC, g.name
		LIMIT $1
	`
	genres := []model.Genre{}
	if err := r.db.SelectContext(ctx, &genres, query, limit); err != nil {
		return nil, fmt.Errorf("popular genres: %w", err)
	}
	return genres, nil
}

func (r *genreRepository) Update(ctx context.Context, g *model.Genre) error {
	query := `
		UPDATE genres
		SET name = $1, slug = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query, g.Name, g.Slug, g.Description, g.IsActive, g.ID).Scan(&g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrGenreNotFound
	}
	if isUniqueViolation(err) {
		return model.ErrGenreExists
	}
	if err != nil {
		return fmt.Errorf("update genre: %w", err)
	}
	return nil
}

func (r *genreRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, `UPDATE genres SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
}

func (r *genreRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	return r.execOne(ctx, `DELETE FROM genres WHERE id = $1`, id)
}

func (r *genreRepository) execOne(ctx context.Context, query string, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("write genre: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrGenreNotFound
	}
	return nil
}

func (r *genreRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM genres WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check genre exists: %w", err)
	}
	return exists, nil
}

func (r *genreRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM genres WHERE name = $1)`, name); err != nil {
		return false, fmt.Errorf("check genre name: %w", err)
	}
	return exists, nil
}
