package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

const commentSelect = `
	SELECT c.id, c.content_id, c.user_id, c.text, c.parent_comment_id, c.likes,
	       c.replies::text[] AS replies, c.is_edited, c.created_at, c.updated_at,
	       u.id AS author_id, u.full_name AS author_full_name, u.profile_picture AS author_profile_picture
	FROM comments c
	LEFT JOIN users u ON u.id = c.user_id
`

type commentRow struct {
	ID              uuid.UUID      `db:"id"`
	ContentID       uuid.UUID      `db:"content_id"`
	UserID          uuid.UUID      `db:"user_id"`
	Text            string         `db:"text"`
	ParentCommentID uuid.NullUUID  `db:"parent_comment_id"`
	Likes           int64          `db:"likes"`
	Replies         pq.StringArray `db:"replies"`
	IsEdited        bool           `db:"is_edited"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`

	AuthorID             uuid.NullUUID  `db:"author_id"`
	AuthorFullName       sql.NullString `db:"author_full_name"`
	AuthorProfilePicture sql.NullString `db:"author_profile_picture"`
}

func (r commentRow) toModel() (model.Comment, error) {
	replies, err := parseUUIDs(r.Replies)
	if err != nil {
		return model.Comment{}, err
	}
	c := model.Comment{
		ID:        r.ID,
		ContentID: r.ContentID,
		UserID:    r.UserID,
		Text:      r.Text,
		Likes:     r.Likes,
		ReplyIDs:  replies,
		IsEdited:  r.IsEdited,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.ParentCommentID.Valid {
		parent := r.ParentCommentID.UUID
		c.ParentComment = &parent
	}
	if r.AuthorID.Valid {
		c.Author = &model.UserSummary{
			ID:             r.AuthorID.UUID,
			FullName:       r.AuthorFullName.String,
			ProfilePicture: r.AuthorProfilePicture.String,
		}
	}
	return c, nil
}

func commentsFromRows(rows []commentRow) ([]model.Comment, error) {
	comments := make([]model.Comment, 0, len(rows))
	for _, row := range rows {
		c, err := row.toModel()
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, nil
}

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, q Querier, c *model.Comment) error {
	query := `
		INSERT INTO comments (content_id, user_id, text, parent_comment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, likes, is_edited, created_at, updated_at
	`
	err := q.QueryRowxContext(ctx, query, c.ContentID, c.UserID, c.Text, c.ParentComment).
		Scan(&c.ID, &c.Likes, &c.IsEdited, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	c.ReplyIDs = []uuid.UUID{}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var row commentRow
	err := r.db.GetContext(ctx, &row, commentSelect+` WHERE c.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get comment: %w", err)
	}
	c, err := row.toModel()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *commentRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Comment, error) {
	if len(ids) == 0 {
		return []model.Comment{}, nil
	}
	var rows []commentRow
	query := commentSelect + ` WHERE c.id = ANY($1::uuid[]) ORDER BY c.created_at DESC`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("get comments by ids: %w", err)
	}
	return commentsFromRows(rows)
}

// ListByContent includes replies alongside top-level comments.
func (r *commentRepository) ListByContent(ctx context.Context, contentID uuid.UUID, page model.PageRequest) ([]model.Comment, int64, error) {
	return r.list(ctx, `c.content_id = $1`, contentID, page)
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID uuid.UUID, page model.PageRequest) ([]model.Comment, int64, error) {
	return r.list(ctx, `c.parent_comment_id = $1`, parentID, page)
}

func (r *commentRepository) ListByUser(ctx context.Context, userID uuid.UUID, page model.PageRequest) ([]model.Comment, int64, error) {
	return r.list(ctx, `c.user_id = $1`, userID, page)
}

func (r *commentRepository) list(ctx context.Context, cond string, arg uuid.UUID, page model.PageRequest) ([]model.Comment, int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM comments c WHERE `+cond, arg); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	var rows []commentRow
	query := commentSelect + ` WHERE ` + cond + ` ORDER BY c.created_at DESC, c.id DESC LIMIT $2 OFFSET $3`
	if err := r.db.SelectContext(ctx, &rows, query, arg, page.Limit, page.Offset()); err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}

	comments, err := commentsFromRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) UpdateText(ctx context.Context, id, userID uuid.UUID, text string) (*model.Comment, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE comments SET text = $1, is_edited = TRUE, updated_at = NOW()
		WHERE id = $2 AND user_id = $3
	`, text, id, userID)
	if err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, model.ErrCommentNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *commentRepository) AppendReply(ctx context.Context, q Querier, parentID, replyID uuid.UUID) error {
	return r.execOne(ctx, q, `UPDATE comments SET replies = array_append(replies, $2::uuid) WHERE id = $1`, parentID, replyID)
}

func (r *commentRepository) RemoveReply(ctx context.Context, q Querier, parentID, replyID uuid.UUID) error {
	return r.execOne(ctx, q, `UPDATE comments SET replies = array_remove(replies, $2::uuid) WHERE id = $1`, parentID, replyID)
}

func (r *commentRepository) Tombstone(ctx context.Context, q Querier, id uuid.UUID) error {
	return r.execOne(ctx, q, `UPDATE comments SET text = $2, is_edited = TRUE, updated_at = NOW() WHERE id = $1`, id, model.DeletedCommentText)
}

func (r *commentRepository) Delete(ctx context.Context, q Querier, id uuid.UUID) error {
	return r.execOne(ctx, q, `DELETE FROM comments WHERE id = $1`, id)
}

func (r *commentRepository) AdjustLikes(ctx context.Context, q Querier, id uuid.UUID, delta int) error {
	return r.execOne(ctx, q, `UPDATE comments SET likes = likes + $2 WHERE id = $1`, id, delta)
}

// execOne runs a single-row write and maps "no row" to ErrCommentNotFound.
func (r *commentRepository) execOne(ctx context.Context, q Querier, query string, args ...any) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("write comment: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *commentRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id); err != nil {
		return false, fmt.Errorf("check comment exists: %w", err)
	}
	return exists, nil
}

func (r *commentRepository) CountByContents(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	var rows []countRow
	query := `SELECT content_id AS id, COUNT(*) AS count FROM comments WHERE content_id = ANY($1::uuid[]) GROUP BY content_id`
	if err := r.db.SelectContext(ctx, &rows, query, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("count comments by content: %w", err)
	}
	return countMap(ids, rows), nil
}
