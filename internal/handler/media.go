package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

// MediaHandler exposes raw uploads to object storage.
type MediaHandler struct {
	uploader Uploader // nil when storage is not configured
	logger   *zap.Logger
}

func NewMediaHandler(uploader Uploader, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		uploader: uploader,
		logger:   logger.Named("media_handler"),
	}
}

// Upload handles POST /upload with the file under "file".
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}
	if h.uploader == nil {
		writeServiceError(w, h.logger, model.ErrStorageDisabled, "Error uploading file")
		return
	}
	if !isMultipart(r) {
		httputil.WriteBadRequest(w, "No file uploaded")
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

	up, closeUpload, err := formUpload(r, "file")
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid file")
		return
	}
	defer closeUpload()
	if up == nil {
		httputil.WriteBadRequest(w, "No file uploaded")
		return
	}

	res, err := h.uploader.Upload(r.Context(), *up)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error uploading file")
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, res, "File uploaded successfully")
}
