package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

const shareSelect = `
	SELECT s.id, s.user_id, s.content_id, s.platform, s.share_url, s.created_at,
	       u.id AS author_id, u.full_name AS author_full_name, u.profile_picture AS author_profile_picture
	FROM shares s
	LEFT JOIN users u ON u.id = s.user_id
`

type shareRow struct {
	ID        uuid.UUID `db:"id"`
	UserID    uuid.UUID `db:"user_id"`
	ContentID uuid.UUID `db:"content_id"`
	Platform  *string   `db:"platform"`
	ShareURL  *string   `db:"share_url"`
	CreatedAt time.Time `db:"created_at"`

	AuthorID             uuid.NullUUID  `db:"author_id"`
	AuthorFullName       sql.NullString `db:"author_full_name"`
	AuthorProfilePicture sql.NullString `db:"author_profile_picture"`
}

func (r shareRow) toModel() model.Share {
	s := model.Share{
		ID:        r.ID,
		UserID:    r.UserID,
		ContentID: r.ContentID,
		Platform:  r.Platform,
		ShareURL:  r.ShareURL,
		CreatedAt: r.CreatedAt,
	}
	if r.AuthorID.Valid {
		s.Author = &model.UserSummary{
			ID:             r.AuthorID.UUID,
			FullName:       r.AuthorFullName.String,
			ProfilePicture: r.AuthorProfilePicture.String,
		}
	}
	return s
}

type shareRepository struct {
	db *sqlx.DB
}

func NewShareRepository(db *sqlx.DB) ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, q Querier, s *model.Share) error {
	query := `
		INSERT INTO shares (user_id, content_id, platform, share_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := q.QueryRowxContext(ctx, query, s.UserID, s.ContentID, s.Platform, s.ShareURL).Scan(&s.ID, &s.CreatedAt); err != nil {
		return fmt.Errorf("insert share: %w", err)
	}
	return nil
}

func (r *shareRepository) ListByContent(ctx context.Context, contentID uuid.UUID, page model.PageRequest) ([]model.Share, int64, error) {
	return r.list(ctx, `s.content_id = $1`, contentID, page)
}

func (r *shareRepository) ListByUser(ctx context.Context, userID uuid.UUID, page model.PageRequest) ([]model.Share, int64, error) {
	return r.list(ctx, `s.user_id = $1`, userID, page)
}

func (r *shareRepository) ListByPlatform(ctx context.Context, platform string, page model.PageRequest) ([]model.Share, int64, error) {
	return r.list(ctx, `s.platform = $1`, platform, page)
}

func (r *shareRepository) list(ctx context.Context, cond string, arg any, page model.PageRequest) ([]model.Share, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM shares s WHERE `+cond, arg); err != nil {
		return nil, 0, fmt.Errorf("count shares: %w", err)
	}

	var rows []shareRow
	query := shareSelect + ` WHERE ` + cond + ` ORDER BY s.created_at DESC, s.id DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, arg, page.Limit, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list shares: %w", err)
	}

	shares := make([]model.Share, len(rows))
	for i, row := range rows {
		shares[i] = row.toModel()
	}
	return shares, total, nil
}

func (r *shareRepository) Count(ctx context.Context, contentID uuid.UUID) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM shares WHERE content_id = $1`, contentID); err != nil {
		return 0, fmt.Errorf("count shares: %w", err)
	}
	return n, nil
}

func (r *shareRepository) CountByContents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	var rows []countRow
	query := `SELECT content_id AS id, COUNT(*) AS count FROM shares WHERE content_id = ANY($1::uuid[]) GROUP BY content_id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("count shares by content: %w", err)
	}
	return countMap(ids, rows), nil
}

func (r *shareRepository) Stats(ctx context.Context, contentID uuid.UUID) ([]model.PlatformStat, error) {
	stats := []model.PlatformStat{}
	query := `
		SELECT platform, COUNT(*) AS count
		FROM shares
		WHERE content_id = $1
		GROUP BY platform
		ORDER BY count DESC, platform
	`
	if err := r.db.SelectContext(ctx, &stats, query, contentID); err != nil {
		return nil, fmt.Errorf("share stats: %w", err)
	}
	return stats, nil
}
