package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

const defaultPopularGenres = 10

type GenreHandler struct {
	genres GenreService
	logger *zap.Logger
}

func NewGenreHandler(genres GenreService, logger *zap.Logger) *GenreHandler {
	return &GenreHandler{
		genres: genres,
		logger: logger.Named("genre_handler"),
	}
}

// List handles GET /genres?page=&limit=&active=
func (h *GenreHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := httputil.Page(r)
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	resp, err := h.genres.List(r.Context(), page, limit, activeOnly)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching genres")
		return
	}
	httputil.WriteOK(w, resp)
}

// Active handles GET /genres/active
func (h *GenreHandler) Active(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genres.Active(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching active genres")
		return
	}
	httputil.WriteOK(w, genres)
}

// Popular handles GET /genres/popular?limit=
func (h *GenreHandler) Popular(w http.ResponseWriter, r *http.Request) {
	limit := httputil.QueryInt(r, "limit")
	if limit <= 0 {
		limit = defaultPopularGenres
	}

	genres, err := h.genres.Popular(r.Context(), limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching popular genres")
		return
	}
	httputil.WriteOK(w, genres)
}

// Search handles GET /genres/search?q=
func (h *GenreHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.WriteBadRequest(w, "Search query is required")
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.genres.Search(r.Context(), query, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error searching genres")
		return
	}
	httputil.WriteOK(w, resp)
}

// GetByID handles GET /genres/:id
func (h *GenreHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "genre")
	if !ok {
		return
	}

	genre, err := h.genres.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching genre")
		return
	}
	httputil.WriteOK(w, genre)
}

// GetBySlug handles GET /genres/slug/:slug
func (h *GenreHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	genre, err := h.genres.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching genre")
		return
	}
	httputil.WriteOK(w, genre)
}

// Create handles POST /genres (admin)
func (h *GenreHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateGenreRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	genre, err := h.genres.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error creating genre")
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, genre, "Genre created successfully")
}

// Update handles PUT /genres/:id (admin)
func (h *GenreHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "genre")
	if !ok {
		return
	}

	var req model.UpdateGenreRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	genre, err := h.genres.Update(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error updating genre")
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, genre, "Genre updated successfully")
}

// Delete handles DELETE /genres/:id (admin)
// Deactivates the genre; content keeps its reference.
func (h *GenreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "genre")
	if !ok {
		return
	}

	if err := h.genres.SoftDelete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "Error deleting genre")
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nil, "Genre deleted successfully")
}

// HardDelete handles DELETE /genres/:id/hard (admin)
func (h *GenreHandler) HardDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "genre")
	if !ok {
		return
	}

	if err := h.genres.HardDelete(r.Context(), id); err != nil {
		writeServiceError(w, h.logger, err, "Error deleting genre")
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nil, "Genre permanently deleted")
}
