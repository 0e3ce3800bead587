package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

type likeRepository struct {
	db *sqlx.DB
}

func NewLikeRepository(db *sqlx.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Insert relies on the (user_id, target_type, target_id) unique constraint.
// A conflicting row means a concurrent toggle already recorded the like.
func (r *likeRepository) Insert(ctx context.Context, q Querier, userID uuid.UUID, t model.Target) error {
	query := `
		INSERT INTO likes (user_id, target_type, target_id)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT likes_user_target_unique DO NOTHING
	`
	res, err := q.ExecContext(ctx, query, userID, t.Type, t.ID)
	if isUniqueViolation(err) {
		return model.ErrAlreadyLiked
	}
	if err != nil {
		return fmt.Errorf("insert like: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrAlreadyLiked
	}
	return nil
}

func (r *likeRepository) Delete(ctx context.Context, q Querier, userID uuid.UUID, t model.Target) (bool, error) {
	res, err := q.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3`,
		userID, t.Type, t.ID)
	if err != nil {
		return false, fmt.Errorf("delete like: %w", err)
	}
	n, err := rowsAffected(res)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, userID uuid.UUID, t model.Target) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = $3)`,
		userID, t.Type, t.ID)
	if err != nil {
		return false, fmt.Errorf("check like exists: %w", err)
	}
	return exists, nil
}

func (r *likeRepository) Count(ctx context.Context, t model.Target) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM likes WHERE target_type = $1 AND target_id = $2`, t.Type, t.ID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return n, nil
}

func (r *likeRepository) CountByTargets(ctx context.Context, typ model.TargetType, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]int64{}, nil
	}
	var rows []countRow
	query := `
		SELECT target_id AS id, COUNT(*) AS count
		FROM likes
		WHERE target_type = $1 AND target_id = ANY($2::uuid[])
		GROUP BY target_id
	`
	if err := r.db.SelectContext(ctx, &rows, query, typ, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("count likes by targets: %w", err)
	}
	return countMap(ids, rows), nil
}

func (r *likeRepository) LikedTargets(ctx context.Context, userID uuid.UUID, typ model.TargetType, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var liked []uuid.UUID
	query := `SELECT target_id FROM likes WHERE user_id = $1 AND target_type = $2 AND target_id = ANY($3::uuid[])`
	if err := r.db.SelectContext(ctx, &liked, query, userID, typ, pq.Array(uuidStrings(ids))); err != nil {
		return nil, fmt.Errorf("check likes: %w", err)
	}

	for _, id := range ids {
		result[id] = false
	}
	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}

func (r *likeRepository) ListUsers(ctx context.Context, t model.Target, page model.PageRequest) ([]model.LikedUser, int64, error) {
	var total int64
	err := r.db.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM likes l JOIN users u ON u.id = l.user_id
		WHERE l.target_type = $1 AND l.target_id = $2
	`, t.Type, t.ID)
	if err != nil {
		return nil, 0, fmt.Errorf("count likers: %w", err)
	}

	users := []model.LikedUser{}
	err = r.db.SelectContext(ctx, &users, `
		SELECT u.id, u.full_name, u.profile_picture, l.created_at AS liked_at
		FROM likes l
		JOIN users u ON u.id = l.user_id
		WHERE l.target_type = $1 AND l.target_id = $2
		ORDER BY l.created_at DESC, l.id DESC
		LIMIT $3 OFFSET $4
	`, t.Type, t.ID, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list likers: %w", err)
	}
	return users, total, nil
}

func (r *likeRepository) ListByUser(ctx context.Context, userID uuid.UUID, typ *model.TargetType, page model.PageRequest) ([]model.Like, int64, error) {
	where := ` WHERE user_id = $1`
	args := []any{userID}
	if typ != nil {
		where += ` AND target_type = $2`
		args = append(args, *typ)
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM likes`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count user likes: %w", err)
	}

	n := len(args)
	query := `SELECT id, user_id, target_type, target_id, created_at FROM likes` + where +
		fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, page.Limit, page.Offset())

	likes := []model.Like{}
	if err := r.db.SelectContext(ctx, &likes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list user likes: %w", err)
	}
	return likes, total, nil
}
