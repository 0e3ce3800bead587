package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/metrics"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
)

// LikeService is the toggle engine and the read side of the like ledger.
type LikeService struct {
	likes    repository.LikeRepository
	contents repository.ContentRepository
	comments repository.CommentRepository
	tx       repository.Transactor
	logger   *zap.Logger
}

func NewLikeService(
	likes repository.LikeRepository,
	contents repository.ContentRepository,
	comments repository.CommentRepository,
	tx repository.Transactor,
	logger *zap.Logger,
) *LikeService {
	return &LikeService{
		likes:    likes,
		contents: contents,
		comments: comments,
		tx:       tx,
		logger:   logger.Named("LikeService"),
	}
}

// Toggle flips the (user, target) like state. The current state is read
// first; the unique constraint settles concurrent likes, and the loser is
// reported as liked without touching the counter. The returned count is
// re-read from the ledger.
func (s *LikeService) Toggle(ctx context.Context, userID uuid.UUID, target model.Target) (*model.ToggleResult, error) {
	liked, err := s.likes.Exists(ctx, userID, target)
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}

	var outcome string
	if liked {
		outcome, err = s.unlike(ctx, userID, target)
	} else {
		outcome, err = s.like(ctx, userID, target)
	}
	if err != nil {
		return nil, err
	}
	metrics.RecordToggle(string(target.Type), outcome)

	count, err := s.likes.Count(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}

	result := &model.ToggleResult{
		Liked:     outcome == metrics.OutcomeLiked || outcome == metrics.OutcomeAlreadyLiked,
		LikeCount: count,
	}
	s.logger.Debug("like toggled",
		zap.Stringer("user_id", userID),
		zap.String("type", string(target.Type)),
		zap.Stringer("target_id", target.ID),
		zap.String("outcome", outcome))
	return result, nil
}

// Remove only performs the liked to not-liked transition. ErrLikeNotFound
// is returned when there is nothing to remove.
func (s *LikeService) Remove(ctx context.Context, userID uuid.UUID, target model.Target) error {
	err := s.tx.WithinTx(ctx, func(q repository.Querier) error {
		removed, err := s.likes.Delete(ctx, q, userID, target)
		if err != nil {
			return err
		}
		if !removed {
			return model.ErrLikeNotFound
		}
		return s.decrement(ctx, q, target)
	})
	if err != nil {
		return err
	}
	metrics.RecordToggle(string(target.Type), metrics.OutcomeUnliked)
	return nil
}

func (s *LikeService) like(ctx context.Context, userID uuid.UUID, target model.Target) (string, error) {
	exists, err := s.targetExists(ctx, target)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", model.ErrTargetNotFound
	}

	err = s.tx.WithinTx(ctx, func(q repository.Querier) error {
		if err := s.likes.Insert(ctx, q, userID, target); err != nil {
			return err
		}
		return s.adjust(ctx, q, target, 1)
	})
	switch {
	case err == nil:
		return metrics.OutcomeLiked, nil
	case errors.Is(err, model.ErrAlreadyLiked):
		return metrics.OutcomeAlreadyLiked, nil
	case errors.Is(err, model.ErrContentNotFound), errors.Is(err, model.ErrCommentNotFound):
		return "", model.ErrTargetNotFound
	default:
		return "", fmt.Errorf("insert like: %w", err)
	}
}

func (s *LikeService) unlike(ctx context.Context, userID uuid.UUID, target model.Target) (string, error) {
	outcome := metrics.OutcomeUnliked
	err := s.tx.WithinTx(ctx, func(q repository.Querier) error {
		removed, err := s.likes.Delete(ctx, q, userID, target)
		if err != nil {
			return err
		}
		if !removed {
			outcome = metrics.OutcomeAlreadyUnliked
			return nil
		}
		return s.decrement(ctx, q, target)
	})
	if err != nil {
		return "", fmt.Errorf("delete like: %w", err)
	}
	return outcome, nil
}

// decrement lowers the counter; a target that has since been deleted is fine.
func (s *LikeService) decrement(ctx context.Context, q repository.Querier, target model.Target) error {
	err := s.adjust(ctx, q, target, -1)
	if errors.Is(err, model.ErrContentNotFound) || errors.Is(err, model.ErrCommentNotFound) {
		return nil
	}
	return err
}

func (s *LikeService) adjust(ctx context.Context, q repository.Querier, target model.Target, delta int) error {
	if target.Type == model.TargetComment {
		return s.comments.AdjustLikes(ctx, q, target.ID, delta)
	}
	return s.contents.AdjustLikes(ctx, q, target.ID, delta)
}

func (s *LikeService) targetExists(ctx context.Context, target model.Target) (bool, error) {
	var (
		ok  bool
		err error
	)
	if target.Type == model.TargetComment {
		ok, err = s.comments.Exists(ctx, target.ID)
	} else {
		ok, err = s.contents.Exists(ctx, target.ID)
	}
	if err != nil {
		return false, fmt.Errorf("check like target: %w", err)
	}
	return ok, nil
}

func (s *LikeService) IsLiked(ctx context.Context, userID uuid.UUID, target model.Target) (bool, error) {
	return s.likes.Exists(ctx, userID, target)
}

func (s *LikeService) Count(ctx context.Context, target model.Target) (int64, error) {
	return s.likes.Count(ctx, target)
}

// LikedUsers lists the users who liked target, newest like first.
func (s *LikeService) LikedUsers(ctx context.Context, target model.Target, page, limit int) (*model.LikedUsersResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultLikedUsersLimit)
	users, total, err := s.likes.ListUsers(ctx, target, p)
	if err != nil {
		return nil, fmt.Errorf("list liked users: %w", err)
	}
	if users == nil {
		users = []model.LikedUser{}
	}
	return &model.LikedUsersResponse{Users: users, Pagination: model.NewPagination(p, total)}, nil
}

// LikesByUser lists a user's likes, optionally restricted to one target type.
func (s *LikeService) LikesByUser(ctx context.Context, userID uuid.UUID, targetType *model.TargetType, page, limit int) (*model.LikeListResponse, error) {
	if targetType != nil && !targetType.Valid() {
		return nil, model.ErrInvalidTargetType
	}
	p := model.NewPageRequest(page, limit, model.DefaultLikedUsersLimit)
	likes, total, err := s.likes.ListByUser(ctx, userID, targetType, p)
	if err != nil {
		return nil, fmt.Errorf("list user likes: %w", err)
	}
	if likes == nil {
		likes = []model.Like{}
	}
	return &model.LikeListResponse{Likes: likes, Pagination: model.NewPagination(p, total)}, nil
}
