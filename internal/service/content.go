package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/queue"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
	"github.com/goodnessaig1/gidolee-video-share/internal/validation"
)

// GenreGate checks genre references before content is written or searched.
type GenreGate interface {
	Exists(ctx context.Context, rawID string) (bool, error)
	Resolve(ctx context.Context, rawID string) (uuid.UUID, error)
}

// ContentUploader stores content media.
type ContentUploader interface {
	UploadContent(ctx context.Context, up model.Upload) (*ContentMedia, error)
	DeleteObject(ctx context.Context, key string) error
}

// ContentService is the feed aggregator and the owner of content writes.
type ContentService struct {
	contents  repository.ContentRepository
	comments  repository.CommentRepository
	likes     repository.LikeRepository
	shares    repository.ShareRepository
	genres    GenreGate
	media     ContentUploader // nil when storage is not configured
	publisher queue.Publisher // nil runs side effects inline
	logger    *zap.Logger
}

func NewContentService(
	contents repository.ContentRepository,
	comments repository.CommentRepository,
	likes repository.LikeRepository,
	shares repository.ShareRepository,
	genres GenreGate,
	media ContentUploader,
	publisher queue.Publisher,
	logger *zap.Logger,
) *ContentService {
	return &ContentService{
		contents:  contents,
		comments:  comments,
		likes:     likes,
		shares:    shares,
		genres:    genres,
		media:     media,
		publisher: publisher,
		logger:    logger.Named("ContentService"),
	}
}

// List returns one feed page, newest first. A genre filter that is not a
// well-formed id is ignored.
func (s *ContentService) List(ctx context.Context, params model.ListContentParams) (*model.ContentListResponse, error) {
	var filter model.ContentFilter
	if id, err := uuid.Parse(strings.TrimSpace(params.Genre)); err == nil {
		filter.GenreID = &id
	}
	return s.list(ctx, filter, model.NewPageRequest(params.Page, params.Limit, model.DefaultLimit), params.ViewerID)
}

// GetByID returns one enriched content item.
func (s *ContentService) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Content, error) {
	content, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	items := []model.Content{*content}
	if err := s.hydrate(ctx, items, viewerID); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// RecordView counts a view without blocking the reader. Errors are logged.
func (s *ContentService) RecordView(ctx context.Context, id uuid.UUID) {
	if s.publisher != nil {
		if _, err := s.publisher.Publish(ctx, queue.StreamContent, queue.NewContentViewedEvent(id)); err != nil {
			s.logger.Warn("publish content_viewed failed", zap.Stringer("content_id", id), zap.Error(err))
		}
		return
	}
	if err := s.contents.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("increment views failed", zap.Stringer("content_id", id), zap.Error(err))
	}
}

// Search matches q case-insensitively against title, description and tags.
func (s *ContentService) Search(ctx context.Context, params model.SearchContentParams) (*model.ContentListResponse, error) {
	q := strings.TrimSpace(params.Query)
	if q == "" {
		return nil, model.NewValidationError("Search query is required")
	}

	filter := model.ContentFilter{Query: q}
	if strings.TrimSpace(params.Genre) != "" {
		id, err := s.genres.Resolve(ctx, params.Genre)
		if err != nil {
			return nil, err
		}
		filter.GenreID = &id
	}
	return s.list(ctx, filter, model.NewPageRequest(params.Page, params.Limit, model.DefaultLimit), params.ViewerID)
}

func (s *ContentService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int, viewerID *uuid.UUID) (*model.ContentListResponse, error) {
	filter := model.ContentFilter{UserID: &userID}
	return s.list(ctx, filter, model.NewPageRequest(page, limit, model.DefaultLimit), viewerID)
}

// ListByGenre returns ErrGenreNotFound for unknown genres.
func (s *ContentService) ListByGenre(ctx context.Context, genreID uuid.UUID, page, limit int, viewerID *uuid.UUID) (*model.ContentListResponse, error) {
	ok, err := s.genres.Exists(ctx, genreID.String())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrGenreNotFound
	}
	filter := model.ContentFilter{GenreID: &genreID}
	return s.list(ctx, filter, model.NewPageRequest(page, limit, model.DefaultLimit), viewerID)
}

// Create checks the genre, uploads the media and stores the content. Nothing
// is uploaded or stored when the genre is rejected.
func (s *ContentService) Create(ctx context.Context, userID uuid.UUID, req model.CreateContentRequest, up *model.Upload) (*model.Content, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	genreID, err := s.genres.Resolve(ctx, req.Genre)
	if err != nil {
		return nil, err
	}
	if up == nil || up.Body == nil {
		return nil, model.ErrMediaRequired
	}
	if s.media == nil {
		return nil, model.ErrStorageDisabled
	}

	stored, err := s.media.UploadContent(ctx, *up)
	if err != nil {
		return nil, fmt.Errorf("upload media: %w", err)
	}

	content := &model.Content{
		UserID:      userID,
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		MediaURL:    stored.Media.URL,
		MediaKey:    stored.Media.Key,
		MediaType:   stored.MediaType,
		Duration:    req.Duration,
		Location:    req.Location,
		IsPublic:    true,
		Tags:        normalizeTags(req.Tags),
		GenreID:     genreID,
	}
	if req.MediaType != "" {
		content.MediaType = req.MediaType
	}
	if req.IsPublic != nil {
		content.IsPublic = *req.IsPublic
	}
	if stored.Thumbnail != nil {
		content.Thumbnail = &stored.Thumbnail.URL
		content.ThumbnailKey = stored.Thumbnail.Key
	}

	if err := s.contents.Create(ctx, content); err != nil {
		s.discardMedia(ctx, stored)
		return nil, fmt.Errorf("create content: %w", err)
	}

	s.logger.Info("content created",
		zap.Stringer("content_id", content.ID),
		zap.Stringer("user_id", userID),
		zap.String("media_key", content.MediaKey))
	return s.GetByID(ctx, content.ID, &userID)
}

// Update applies an owner-scoped partial update. Missing and foreign content
// both yield ErrContentNotFound.
func (s *ContentService) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdateContentRequest) (*model.Content, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	content, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if content.UserID != userID {
		return nil, model.ErrContentNotFound
	}

	if req.Genre != nil {
		genreID, err := s.genres.Resolve(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		content.GenreID = genreID
	}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, model.NewValidationError("title is required")
		}
		content.Title = title
	}
	if req.Description != nil {
		content.Description = strings.TrimSpace(*req.Description)
	}
	if req.Tags != nil {
		content.Tags = normalizeTags(*req.Tags)
	}
	if req.Location != nil {
		content.Location = req.Location
	}
	if req.IsPublic != nil {
		content.IsPublic = *req.IsPublic
	}

	if err := s.contents.Update(ctx, content); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id, &userID)
}

// Delete removes owned content. Likes, comments and shares are left in place.
// The media and thumbnail objects are removed by a worker.
func (s *ContentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	keys, err := s.contents.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	s.logger.Info("content deleted", zap.Stringer("content_id", id), zap.Stringer("user_id", userID))

	if s.publisher != nil {
		if _, err := s.publisher.Publish(ctx, queue.StreamContent, queue.NewContentDeletedEvent(id, userID, keys...)); err != nil {
			s.logger.Warn("publish content_deleted failed", zap.Stringer("content_id", id), zap.Error(err))
		}
		return nil
	}
	if s.media == nil {
		return nil
	}
	for _, key := range keys {
		if err := s.media.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("delete media failed", zap.String("key", key), zap.Error(err))
		}
	}
	return nil
}

func (s *ContentService) list(ctx context.Context, filter model.ContentFilter, p model.PageRequest, viewerID *uuid.UUID) (*model.ContentListResponse, error) {
	contents, total, err := s.contents.List(ctx, filter, p)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	if contents == nil {
		contents = []model.Content{}
	}
	if err := s.hydrate(ctx, contents, viewerID); err != nil {
		return nil, err
	}
	return &model.ContentListResponse{Contents: contents, Pagination: model.NewPagination(p, total)}, nil
}

// hydrate fills live engagement from the ledger with one batch query per
// kind. The denormalized counters on the row are not consulted.
func (s *ContentService) hydrate(ctx context.Context, contents []model.Content, viewerID *uuid.UUID) error {
	if len(contents) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(contents))
	for i := range contents {
		ids[i] = contents[i].ID
	}

	likeCounts, err := s.likes.CountByTargets(ctx, model.TargetContent, ids)
	if err != nil {
		return fmt.Errorf("count likes: %w", err)
	}
	commentCounts, err := s.comments.CountByContents(ctx, ids)
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}
	shareCounts, err := s.shares.CountByContents(ctx, ids)
	if err != nil {
		return fmt.Errorf("count shares: %w", err)
	}

	liked := map[uuid.UUID]bool{}
	if viewerID != nil && *viewerID != uuid.Nil {
		liked, err = s.likes.LikedTargets(ctx, *viewerID, model.TargetContent, ids)
		if err != nil {
			return fmt.Errorf("check liked: %w", err)
		}
	}

	for i := range contents {
		c := &contents[i]
		c.ApplyDefaults()
		c.LikeCount = likeCounts[c.ID]
		c.CommentCount = commentCounts[c.ID]
		c.ShareCount = shareCounts[c.ID]
		c.IsLiked = liked[c.ID]
	}
	return nil
}

func (s *ContentService) discardMedia(ctx context.Context, stored *ContentMedia) {
	keys := []string{stored.Media.Key}
	if stored.Thumbnail != nil {
		keys = append(keys, stored.Thumbnail.Key)
	}
	for _, key := range keys {
		if err := s.media.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("discard uploaded media failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// normalizeTags trims, drops empties and removes duplicates, keeping order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
