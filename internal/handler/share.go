package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

type ShareHandler struct {
	shares ShareService
	logger *zap.Logger
}

func NewShareHandler(shares ShareService, logger *zap.Logger) *ShareHandler {
	return &ShareHandler{
		shares: shares,
		logger: logger.Named("share_handler"),
	}
}

// Create handles POST /shares
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.CreateShareRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	share, err := h.shares.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error sharing content")
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, share, "Content shared successfully")
}

// ListByContent handles GET /shares/content/:contentId
func (h *ShareHandler) ListByContent(w http.ResponseWriter, r *http.Request) {
	contentID, ok := pathID(w, r, "contentId", "content")
	if !ok {
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.shares.ListByContent(r.Context(), contentID, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching shares")
		return
	}
	httputil.WriteOK(w, resp)
}

// Count handles GET /shares/content/:contentId/count
func (h *ShareHandler) Count(w http.ResponseWriter, r *http.Request) {
	contentID, ok := pathID(w, r, "contentId", "content")
	if !ok {
		return
	}

	count, err := h.shares.Count(r.Context(), contentID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error counting shares")
		return
	}
	httputil.WriteOK(w, map[string]int64{"count": count})
}

// Stats handles GET /shares/content/:contentId/stats
// Per-platform counts, most shared first.
func (h *ShareHandler) Stats(w http.ResponseWriter, r *http.Request) {
	contentID, ok := pathID(w, r, "contentId", "content")
	if !ok {
		return
	}

	stats, err := h.shares.Stats(r.Context(), contentID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching share stats")
		return
	}
	httputil.WriteOK(w, stats)
}

// ListByUser handles GET /shares/user/:userId
func (h *ShareHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", "user")
	if !ok {
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.shares.ListByUser(r.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching user shares")
		return
	}
	httputil.WriteOK(w, resp)
}

// ListByPlatform handles GET /shares/platform/:platform
func (h *ShareHandler) ListByPlatform(w http.ResponseWriter, r *http.Request) {
	platform := strings.TrimSpace(chi.URLParam(r, "platform"))
	page, limit := httputil.Page(r)

	resp, err := h.shares.ListByPlatform(r.Context(), platform, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching platform shares")
		return
	}
	httputil.WriteOK(w, resp)
}
