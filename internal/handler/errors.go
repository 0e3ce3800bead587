package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/transport/http/middleware"
)

// writeServiceError maps a service error onto the response taxonomy.
// Anything unrecognised is logged and reported as fallback with a 500.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallback string) {
	if msg, ok := model.ValidationMessage(err); ok {
		httputil.WriteBadRequest(w, msg)
		return
	}

	switch {
	case errors.Is(err, model.ErrMediaRequired):
		httputil.WriteBadRequest(w, "No file uploaded")
	case errors.Is(err, model.ErrFileTooLarge):
		httputil.WriteBadRequest(w, "File too large")
	case errors.Is(err, model.ErrInvalidImageType):
		httputil.WriteBadRequest(w, "Image must be JPEG, PNG, GIF or WebP")
	case errors.Is(err, model.ErrCommentTextRequired):
		httputil.WriteBadRequest(w, "Comment text is required")
	case errors.Is(err, model.ErrCommentTooLong):
		httputil.WriteBadRequest(w, fmt.Sprintf("Comment text too long (max %d characters)", model.MaxCommentLength))
	case errors.Is(err, model.ErrInvalidCredentials):
		httputil.WriteUnauthorized(w, "Invalid email or password")
	case errors.Is(err, model.ErrForbidden):
		httputil.WriteForbidden(w, "You are not authorized")
	case errors.Is(err, model.ErrEmailExists):
		httputil.WriteConflict(w, "Email already registered")
	case errors.Is(err, model.ErrGenreExists):
		httputil.WriteConflict(w, "Genre with this name already exists")
	case errors.Is(err, model.ErrContentNotFound):
		httputil.WriteNotFound(w, "Content not found")
	case errors.Is(err, model.ErrCommentNotFound):
		httputil.WriteNotFound(w, "Comment not found")
	case errors.Is(err, model.ErrParentCommentNotFound):
		httputil.WriteNotFound(w, "Parent comment not found")
	case errors.Is(err, model.ErrGenreNotFound):
		httputil.WriteNotFound(w, "Genre not found")
	case errors.Is(err, model.ErrUserNotFound):
		httputil.WriteNotFound(w, "User not found")
	case errors.Is(err, model.ErrLikeNotFound):
		httputil.WriteNotFound(w, "Like not found")
	case errors.Is(err, model.ErrTargetNotFound):
		httputil.WriteNotFound(w, "Like target not found")
	case errors.Is(err, model.ErrStorageDisabled):
		httputil.WriteServiceUnavailable(w, "File storage is not configured")
	default:
		logger.Error(fallback, zap.Error(err))
		httputil.WriteInternalError(w, fallback)
	}
}

// requireUser returns the caller's id or writes a 401.
func requireUser(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the chi URL parameter name as a uuid or writes a 400.
func pathID(w http.ResponseWriter, r *http.Request, name, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(chi.URLParam(r, name)))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}
