package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
)

// CommentService manages the two-level comment tree of each content item.
type CommentService struct {
	comments repository.CommentRepository
	contents repository.ContentRepository
	likes    repository.LikeRepository
	tx       repository.Transactor
	logger   *zap.Logger
}

func NewCommentService(
	comments repository.CommentRepository,
	contents repository.ContentRepository,
	likes repository.LikeRepository,
	tx repository.Transactor,
	logger *zap.Logger,
) *CommentService {
	return &CommentService{
		comments: comments,
		contents: contents,
		likes:    likes,
		tx:       tx,
		logger:   logger.Named("CommentService"),
	}
}

// Create adds a comment, or a reply when ParentComment is set. The insert and
// the parent's reply list append commit together.
func (s *CommentService) Create(ctx context.Context, userID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error) {
	text, err := validateCommentText(req.Text)
	if err != nil {
		return nil, err
	}

	contentID, err := uuid.Parse(strings.TrimSpace(req.ContentID))
	if err != nil {
		return nil, model.NewValidationError("Invalid content id")
	}
	exists, err := s.contents.Exists(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("check content exists: %w", err)
	}
	if !exists {
		return nil, model.ErrContentNotFound
	}

	comment := &model.Comment{ContentID: contentID, UserID: userID, Text: text}

	if req.ParentComment != nil && strings.TrimSpace(*req.ParentComment) != "" {
		parentID, err := uuid.Parse(strings.TrimSpace(*req.ParentComment))
		if err != nil {
			return nil, model.NewValidationError("Invalid parent comment id")
		}
		parent, err := s.comments.GetByID(ctx, parentID)
		if errors.Is(err, model.ErrCommentNotFound) {
			return nil, model.ErrParentCommentNotFound
		}
		if err != nil {
			return nil, err
		}
		if parent.ContentID != contentID {
			return nil, model.NewValidationError("Parent comment belongs to different content")
		}
		comment.ParentComment = &parentID
	}

	err = s.tx.WithinTx(ctx, func(q repository.Querier) error {
		if err := s.comments.Create(ctx, q, comment); err != nil {
			return err
		}
		if comment.ParentComment != nil {
			if err := s.comments.AppendReply(ctx, q, *comment.ParentComment, comment.ID); err != nil {
				if errors.Is(err, model.ErrCommentNotFound) {
					return model.ErrParentCommentNotFound
				}
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("comment created",
		zap.Stringer("comment_id", comment.ID),
		zap.Stringer("content_id", contentID),
		zap.Bool("reply", comment.IsReply()))

	created, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		s.logger.Warn("reload created comment failed", zap.Stringer("comment_id", comment.ID), zap.Error(err))
		return comment, nil
	}
	return created, nil
}

// Delete removes an owned comment. A comment with replies is tombstoned
// so the replies keep a resolvable parent; a reply is first pulled out of its
// parent's reply list.
func (s *CommentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return model.ErrCommentNotFound
	}

	err = s.tx.WithinTx(ctx, func(q repository.Querier) error {
		switch {
		case comment.HasReplies():
			return s.comments.Tombstone(ctx, q, id)
		case comment.IsReply():
			err := s.comments.RemoveReply(ctx, q, *comment.ParentComment, id)
			if err != nil && !errors.Is(err, model.ErrCommentNotFound) {
				return err
			}
			return s.comments.Delete(ctx, q, id)
		default:
			return s.comments.Delete(ctx, q, id)
		}
	})
	if err != nil {
		return err
	}

	s.logger.Info("comment deleted",
		zap.Stringer("comment_id", id),
		zap.Bool("tombstoned", comment.HasReplies()))
	return nil
}

// Update changes the text of an owned comment and marks it edited.
func (s *CommentService) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error) {
	text, err := validateCommentText(req.Text)
	if err != nil {
		return nil, err
	}
	return s.comments.UpdateText(ctx, id, userID, text)
}

// GetByID returns a comment with its replies and their authors.
func (s *CommentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	replies, err := s.comments.GetByIDs(ctx, comment.ReplyIDs)
	if err != nil {
		return nil, fmt.Errorf("load replies: %w", err)
	}
	comment.Replies = replies
	return comment, nil
}

// ListByContent returns top-level comments and replies in one newest-first
// listing, each with its like count from the ledger.
func (s *CommentService) ListByContent(ctx context.Context, contentID uuid.UUID, page, limit int) (*model.CommentListResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultCommentLimit)
	comments, total, err := s.comments.ListByContent(ctx, contentID, p)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if err := s.attachLikeCounts(ctx, comments); err != nil {
		return nil, err
	}
	return newCommentList(comments, p, total), nil
}

func (s *CommentService) ListReplies(ctx context.Context, parentID uuid.UUID, page, limit int) (*model.CommentListResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultReplyLimit)
	comments, total, err := s.comments.ListReplies(ctx, parentID, p)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	return newCommentList(comments, p, total), nil
}

func (s *CommentService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (*model.CommentListResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultCommentLimit)
	comments, total, err := s.comments.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("list user comments: %w", err)
	}
	return newCommentList(comments, p, total), nil
}

func (s *CommentService) attachLikeCounts(ctx context.Context, comments []model.Comment) error {
	if len(comments) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(comments))
	for i := range comments {
		ids[i] = comments[i].ID
	}
	counts, err := s.likes.CountByTargets(ctx, model.TargetComment, ids)
	if err != nil {
		return fmt.Errorf("count comment likes: %w", err)
	}
	for i := range comments {
		n := counts[comments[i].ID]
		comments[i].LikeCount = &n
	}
	return nil
}

func newCommentList(comments []model.Comment, p model.PageRequest, total int64) *model.CommentListResponse {
	if comments == nil {
		comments = []model.Comment{}
	}
	return &model.CommentListResponse{Comments: comments, Pagination: model.NewPagination(p, total)}
}

func validateCommentText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", model.ErrCommentTextRequired
	}
	if utf8.RuneCountInString(text) > model.MaxCommentLength {
		return "", model.ErrCommentTooLong
	}
	return text, nil
}
