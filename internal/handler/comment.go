package handler

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

type CommentHandler struct {
	comments CommentService
	logger   *zap.Logger
}

func NewCommentHandler(comments CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		comments: comments,
		logger:   logger.Named("comment_handler"),
	}
}

// Create handles POST /comments
// A parentComment in the body makes the new comment a reply.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.CreateCommentRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.comments.Create(r.Context(), userID, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error creating comment")
		return
	}

	httputil.WriteSuccess(w, http.StatusCreated, comment, "Comment created successfully")
}

// GetByID handles GET /comments/:id
// The response embeds the direct replies.
func (h *CommentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}

	comment, err := h.comments.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching comment")
		return
	}
	httputil.WriteOK(w, comment)
}

// ListByContent handles GET /comments/content/:contentId
func (h *CommentHandler) ListByContent(w http.ResponseWriter, r *http.Request) {
	contentID, ok := pathID(w, r, "contentId", "content")
	if !ok {
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.comments.ListByContent(r.Context(), contentID, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching comments")
		return
	}
	httputil.WriteOK(w, resp)
}

// ListReplies handles GET /comments/:id/replies
func (h *CommentHandler) ListReplies(w http.ResponseWriter, r *http.Request) {
	parentID, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.comments.ListReplies(r.Context(), parentID, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching replies")
		return
	}
	httputil.WriteOK(w, resp)
}

// ListByUser handles GET /comments/user/:userId
func (h *CommentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", "user")
	if !ok {
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.comments.ListByUser(r.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching user comments")
		return
	}
	httputil.WriteOK(w, resp)
}

// Update handles PUT /comments/:id
// Only the author can edit; the comment is marked as edited.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}

	var req model.UpdateCommentRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.comments.Update(r.Context(), id, userID, req)
	if err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found or unauthorized")
			return
		}
		writeServiceError(w, h.logger, err, "Error updating comment")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, comment, "Comment updated successfully")
}

// Delete handles DELETE /comments/:id
// A comment that still has replies is replaced by a placeholder instead of
// being removed.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "comment")
	if !ok {
		return
	}

	if err := h.comments.Delete(r.Context(), id, userID); err != nil {
		if errors.Is(err, model.ErrCommentNotFound) {
			httputil.WriteNotFound(w, "Comment not found or unauthorized")
			return
		}
		writeServiceError(w, h.logger, err, "Error deleting comment")
		return
	}

	httputil.WriteSuccess(w, http.StatusOK, nil, "Comment deleted successfully")
}
