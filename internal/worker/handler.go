package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/metrics"
	"github.com/goodnessaig1/gidolee-video-share/internal/queue"
)

// ViewRecorder applies a deferred view to the store.
type ViewRecorder interface {
	IncrementViews(ctx context.Context, id uuid.UUID) error
}

// MediaRemover deletes stored media objects.
type MediaRemover interface {
	DeleteObject(ctx context.Context, key string) error
}

// Handler processes content events from the queue.
type Handler struct {
	views  ViewRecorder
	media  MediaRemover // nil when object storage is not configured
	logger *zap.Logger
}

func NewHandler(views ViewRecorder, media MediaRemover, logger *zap.Logger) *Handler {
	return &Handler{views: views, media: media, logger: logger.Named("Worker")}
}

// HandleEvent routes an event by type.
func (h *Handler) HandleEvent(ctx context.Context, event queue.ContentEvent) error {
	start := time.Now()
	var err error

	switch event.Type {
	case queue.EventContentViewed:
		err = h.handleContentViewed(ctx, event)
	case queue.EventContentDeleted:
		err = h.handleContentDeleted(ctx, event)
	default:
		err = fmt.Errorf("unknown event type: %s", event.Type)
	}
	metrics.RecordWorkerEvent(event.Type, err)

	if err != nil {
		h.logger.Warn("handle event failed",
			zap.String("type", event.Type),
			zap.Stringer("content_id", event.ContentID),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
		return err
	}

	h.logger.Debug("handled event",
		zap.String("type", event.Type),
		zap.Stringer("content_id", event.ContentID),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (h *Handler) handleContentViewed(ctx context.Context, event queue.ContentEvent) error {
	if err := h.views.IncrementViews(ctx, event.ContentID); err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// handleContentDeleted removes the media objects of a deleted content row.
// Every key is attempted even if an earlier one fails.
func (h *Handler) handleContentDeleted(ctx context.Context, event queue.ContentEvent) error {
	if len(event.MediaKeys) == 0 {
		return nil
	}
	if h.media == nil {
		h.logger.Info("storage disabled, leaving media objects", zap.Strings("keys", event.MediaKeys))
		return nil
	}
	var errs []error
	for _, key := range event.MediaKeys {
		if err := h.media.DeleteObject(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("delete media object %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}
