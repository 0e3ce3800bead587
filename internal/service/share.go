package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
	"github.com/goodnessaig1/gidolee-video-share/internal/validation"
)

// ShareService records shares and reads the share side of the ledger.
type ShareService struct {
	shares   repository.ShareRepository
	contents repository.ContentRepository
	tx       repository.Transactor
	logger   *zap.Logger
}

func NewShareService(
	shares repository.ShareRepository,
	contents repository.ContentRepository,
	tx repository.Transactor,
	logger *zap.Logger,
) *ShareService {
	return &ShareService{shares: shares, contents: contents, tx: tx, logger: logger.Named("ShareService")}
}

// Create records a share and bumps the content's share counter in one
// transaction.
func (s *ShareService) Create(ctx context.Context, userID uuid.UUID, req model.CreateShareRequest) (*model.Share, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	contentID := uuid.MustParse(req.ContentID)

	exists, err := s.contents.Exists(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("check content exists: %w", err)
	}
	if !exists {
		return nil, model.ErrContentNotFound
	}

	share := &model.Share{
		UserID:    userID,
		ContentID: contentID,
		Platform:  normalizePlatform(req.Platform),
		ShareURL:  req.ShareURL,
	}
	err = s.tx.WithinTx(ctx, func(q repository.Querier) error {
		if err := s.shares.Create(ctx, q, share); err != nil {
			return err
		}
		return s.contents.AdjustShares(ctx, q, contentID, 1)
	})
	if errors.Is(err, model.ErrContentNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("create share: %w", err)
	}

	s.logger.Info("content shared", zap.Stringer("content_id", contentID), zap.Stringer("user_id", userID))
	return share, nil
}

func (s *ShareService) ListByContent(ctx context.Context, contentID uuid.UUID, page, limit int) (*model.ShareListResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultShareLimit)
	shares, total, err := s.shares.ListByContent(ctx, contentID, p)
	if err != nil {
		return nil, fmt.Errorf("list content shares: %w", err)
	}
	return newShareList(shares, p, total), nil
}

func (s *ShareService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (*model.ShareListResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultShareLimit)
	shares, total, err := s.shares.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, fmt.Errorf("list user shares: %w", err)
	}
	return newShareList(shares, p, total), nil
}

func (s *ShareService) ListByPlatform(ctx context.Context, platform string, page, limit int) (*model.ShareListResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultShareLimit)
	shares, total, err := s.shares.ListByPlatform(ctx, strings.ToLower(strings.TrimSpace(platform)), p)
	if err != nil {
		return nil, fmt.Errorf("list platform shares: %w", err)
	}
	return newShareList(shares, p, total), nil
}

func (s *ShareService) Count(ctx context.Context, contentID uuid.UUID) (int64, error) {
	return s.shares.Count(ctx, contentID)
}

// Stats returns per-platform share counts, largest first.
func (s *ShareService) Stats(ctx context.Context, contentID uuid.UUID) ([]model.PlatformStat, error) {
	stats, err := s.shares.Stats(ctx, contentID)
	if err != nil {
		return nil, fmt.Errorf("share stats: %w", err)
	}
	if stats == nil {
		stats = []model.PlatformStat{}
	}
	return stats, nil
}

func newShareList(shares []model.Share, p model.PageRequest, total int64) *model.ShareListResponse {
	if shares == nil {
		shares = []model.Share{}
	}
	return &model.ShareListResponse{Shares: shares, Pagination: model.NewPagination(p, total)}
}

func normalizePlatform(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*p))
	if v == "" {
		return nil
	}
	return &v
}
