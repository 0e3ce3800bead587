package handler

import (
	"net/http"
	"strings"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/transport/http/middleware"
)

// List handles GET /content
//
// Query params:
//   - page: 1-based page number (default 1)
//   - limit: items per page (default 10, max 100)
//   - genre: optional genre id; ignored if malformed
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := httputil.Page(r)
	resp, err := h.contents.List(r.Context(), model.ListContentParams{
		Page:     page,
		Limit:    limit,
		ViewerID: middleware.ViewerID(r.Context()),
		Genre:    strings.TrimSpace(r.URL.Query().Get("genre")),
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching contents")
		return
	}
	httputil.WriteOK(w, resp)
}

// Search handles GET /content/search?q=&genre=
func (h *ContentHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, limit := httputil.Page(r)
	q := r.URL.Query()
	resp, err := h.contents.Search(r.Context(), model.SearchContentParams{
		Query:    q.Get("q"),
		Genre:    strings.TrimSpace(q.Get("genre")),
		Page:     page,
		Limit:    limit,
		ViewerID: middleware.ViewerID(r.Context()),
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Error searching contents")
		return
	}
	httputil.WriteOK(w, resp)
}

// GetByID handles GET /content/:id
// Counts a view for every successful read.
func (h *ContentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "content")
	if !ok {
		return
	}

	content, err := h.contents.GetByID(r.Context(), id, middleware.ViewerID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching content")
		return
	}
	h.contents.RecordView(r.Context(), id)

	httputil.WriteOK(w, content)
}

// ListByUser handles GET /content/user/:userId
func (h *ContentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", "user")
	if !ok {
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.contents.ListByUser(r.Context(), userID, page, limit, middleware.ViewerID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching user contents")
		return
	}
	httputil.WriteOK(w, resp)
}

// ListByGenre handles GET /content/genre/:genreId
func (h *ContentHandler) ListByGenre(w http.ResponseWriter, r *http.Request) {
	genreID, ok := pathID(w, r, "genreId", "genre")
	if !ok {
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.contents.ListByGenre(r.Context(), genreID, page, limit, middleware.ViewerID(r.Context()))
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching genre contents")
		return
	}
	httputil.WriteOK(w, resp)
}
