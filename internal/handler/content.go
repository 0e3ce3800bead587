package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

// maxContentBody leaves room for the form fields next to the media file.
const maxContentBody = model.MaxMediaSizeBytes + 1<<20

type ContentHandler struct {
	contents ContentService
	logger   *zap.Logger
}

func NewContentHandler(contents ContentService, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		contents: contents,
		logger:   logger.Named("content_handler"),
	}
}

// Create handles POST /content
// Multipart form: title, description, genre, tags, mediaType, duration,
// location, isPublic, plus the media file under "mediaUrl".
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if !isMultipart(r) {
		httputil.WriteBadRequest(w, "Request must be multipart/form-data")
		return
	}
	if err := parseMultipart(w, r, maxContentBody); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httputil.WriteBadRequest(w, "File too large")
			return
		}
		httputil.WriteBadRequest(w, "Invalid multipart form")
		return
	}

	req, err := contentRequestFromForm(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error creating content")
		return
	}

	up, closeUpload, err := formUpload(r, "mediaUrl", "file")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid media file")
		return
	}
	defer closeUpload()

	content, err := h.contents.Create(r.Context(), userID, req, up)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error creating content")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, content, "Content created successfully")
}

func contentRequestFromForm(r *http.Request) (model.CreateContentRequest, error) {
	req := model.CreateContentRequest{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Genre:       strings.TrimSpace(r.FormValue("genre")),
		Tags:        formTags(r),
		MediaType:   model.MediaType(strings.TrimSpace(r.FormValue("mediaType"))),
		Location:    formOptionalString(r, "location"),
	}

	var err error
	if req.Duration, err = formOptionalFloat(r, "duration"); err != nil {
		return req, err
	}
	if req.IsPublic, err = formOptionalBool(r, "isPublic"); err != nil {
		return req, err
	}
	return req, nil
}

// Update handles PUT /content/:id
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "content")
	if !ok {
		return
	}

	var req model.UpdateContentRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	content, err := h.contents.Update(r.Context(), id, userID, req)
	if err != nil {
		if errors.Is(err, model.ErrContentNotFound) {
			httputil.WriteNotFound(w, "Content not found or unauthorized")
			return
		}
		writeServiceError(w, h.logger, err, "Error updating content")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, content, "Content updated successfully")
}

// Delete handles DELETE /content/:id
// Only the owner can delete. Object storage cleanup happens out of band.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "content")
	if !ok {
		return
	}

	if err := h.contents.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, model.ErrContentNotFound) {
			httputil.WriteNotFound(w, "Content not found or unauthorized")
			return
		}
		writeServiceError(w, h.logger, err, "Error deleting content")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Content deleted successfully")
}
