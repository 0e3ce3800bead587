package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

const contentSelect = `
	SELECT c.id, c.user_id, c.title, c.description, c.media_url, c.media_key, c.media_type,
	       c.thumbnail, c.duration, c.location, c.views, c.likes, c.shares, c.is_public,
	       c.tags, c.genre_id, c.created_at, c.updated_at,
	       u.id AS author_id, u.full_name AS author_full_name, u.profile_picture AS author_profile_picture,
	       g.id AS genre_ref_id, g.name AS genre_name, g.slug AS genre_slug
	FROM contents c
	LEFT JOIN users u ON u.id = c.user_id
	LEFT JOIN genres g ON g.id = c.genre_id
`

// contentRow is a content row with its LEFT JOINed author and genre.
type contentRow struct {
	ID          uuid.UUID       `db:"id"`
	UserID      uuid.UUID       `db:"user_id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	MediaURL    string          `db:"media_url"`
	MediaKey    string          `db:"media_key"`
	MediaType   model.MediaType `db:"media_type"`
	Thumbnail   *string         `db:"thumbnail"`
	Duration    *float64        `db:"duration"`
	Location    *string         `db:"location"`
	Views       int64           `db:"views"`
	Likes       int64           `db:"likes"`
	Shares      int64           `db:"shares"`
	IsPublic    bool            `db:"is_public"`
	Tags        pq.StringArray  `db:"tags"`
	GenreID     uuid.UUID       `db:"genre_id"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	AuthorID             uuid.NullUUID  `db:"author_id"`
	AuthorFullName       sql.NullString `db:"author_full_name"`
	AuthorProfilePicture sql.NullString `db:"author_profile_picture"`

	GenreRefID uuid.NullUUID  `db:"genre_ref_id"`
	GenreName  sql.NullString `db:"genre_name"`
	GenreSlug  sql.NullString `db:"genre_slug"`
}

func (r contentRow) toModel() model.Content {
	c := model.Content{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		MediaURL:    r.MediaURL,
		MediaKey:    r.MediaKey,
		MediaType:   r.MediaType,
		Thumbnail:   r.Thumbnail,
		Duration:    r.Duration,
		Location:    r.Location,
		Views:       r.Views,
		Likes:       r.Likes,
		Shares:      r.Shares,
		IsPublic:    r.IsPublic,
		Tags:        []string(r.Tags),
		GenreID:     r.GenreID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.AuthorID.Valid {
		c.Author = &model.UserSummary{
			ID:             r.AuthorID.UUID,
			FullName:       r.AuthorFullName.String,
			ProfilePicture: r.AuthorProfilePicture.String,
		}
	}
	if r.GenreRefID.Valid {
		c.Genre = &model.GenreSummary{
			ID:   r.GenreRefID.UUID,
			Name: r.GenreName.String,
			Slug: r.GenreSlug.String,
		}
	}
	c.ApplyDefaults()
	return c
}

type contentRepository struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &contentRepository{db: db}
}

func tagsArray(tags []string) pq.StringArray {
	if tags == nil {
		return pq.StringArray{}
	}
	return pq.StringArray(tags)
}

// Create inserts content with zeroed counters.
func (r *contentRepository) Create(ctx context.Context, c *model.Content) error {
	query := `
		INSERT INTO contents (user_id, title, description, media_url, media_key, media_type,
		                      thumbnail, thumbnail_key, duration, location, is_public, tags, genre_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, views, likes, shares, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		c.UserID, c.Title, c.Description, c.MediaURL, c.MediaKey, c.MediaType,
		c.Thumbnail, c.ThumbnailKey, c.Duration, c.Location, c.IsPublic, tagsArray(c.Tags), c.GenreID,
	).Scan(&c.ID, &c.Views, &c.Likes, &c.Shares, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert content: %w", err)
	}
	return nil
}

func (r *contentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Content, error) {
	var row contentRow
	err := r.db.GetContext(ctx, &row, contentSelect+` WHERE c.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content: %w", err)
	}
	c := row.toModel()
	return &c, nil
}

// buildContentWhere renders the filter as a WHERE clause with positional args.
func buildContentWhere(f model.ContentFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.GenreID != nil {
		args = append(args, *f.GenreID)
		clauses = append(clauses, fmt.Sprintf("c.genre_id = $%d", len(args)))
	}
	if f.UserID != nil {
		args = append(args, *f.UserID)
		clauses = append(clauses, fmt.Sprintf("c.user_id = $%d", len(args)))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		args = append(args, likePattern(q))
		n := len(args)
		clauses = append(clauses, fmt.Sprintf(
			"(c.title ILIKE $%d OR c.description ILIKE $%d OR EXISTS (SELECT 1 FROM unnest(c.tags) AS t(tag) WHERE t.tag ILIKE $%d))",
			n, n, n))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *contentRepository) List(ctx context.Context, f model.ContentFilter, page model.PageRequest) ([]model.Content, int64, error) {
	where, args := buildContentWhere(f)

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contents c`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count contents: %w", err)
	}

	n := len(args)
	query := contentSelect + where + fmt.Sprintf(` ORDER BY c.created_at DESC, c.id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, page.Limit, page.Offset())

	var rows []contentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list contents: %w", err)
	}

	contents := make([]model.Content, len(rows))
	for i, row := range rows {
		contents[i] = row.toModel()
	}
	return contents, total, nil
}

func (r *contentRepository) Update(ctx context.Context, c *model.Content) error {
	query := `
		UPDATE contents
		SET title = $1, description = $2, tags = $3, location = $4, is_public = $5, genre_id = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		c.Title, c.Description, tagsArray(c.Tags), c.Location, c.IsPublic, c.GenreID, c.ID, c.UserID,
	).Scan(&c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrContentNotFound
	}
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	return nil
}

// Delete does not cascade: comments, likes and shares of the content remain.
func (r *contentRepository) Delete(ctx context.Context, id, userID uuid.UUID) ([]string, error) {
	var keys struct {
		Media     string `db:"media_key"`
		Thumbnail string `db:"thumbnail_key"`
	}
	err := r.db.GetContext(ctx, &keys, `
		DELETE FROM contents WHERE id = $1 AND user_id = $2
		RETURNING media_key, thumbnail_key
	`, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrContentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("delete content: %w", err)
	}
	return nonEmpty(keys.Media, keys.Thumbnail), nil
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r *contentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM contents WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check content exists: %w", err)
	}
	return exists, nil
}

func (r *contentRepository) IncrementViews(ctx context.Context, id uuid.UUID) error {
	return r.adjust(ctx, r.db, `UPDATE contents SET views = views + $1 WHERE id = $2`, id, 1)
}

func (r *contentRepository) AdjustLikes(ctx context.Context, q Querier, id uuid.UUID, delta int) error {
	return r.adjust(ctx, q, `UPDATE contents SET likes = likes + $1 WHERE id = $2`, id, delta)
}

func (r *contentRepository) AdjustShares(ctx context.Context, q Querier, id uuid.UUID, delta int) error {
	return r.adjust(ctx, q, `UPDATE contents SET shares = shares + $1 WHERE id = $2`, id, delta)
}

func (r *contentRepository) adjust(ctx context.Context, q Querier, query string, id uuid.UUID, delta int) error {
	res, err := q.ExecContext(ctx, query, delta, id)
	if err != nil {
		return fmt.Errorf("adjust content counter: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrContentNotFound
	}
	return nil
}
