package handler

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

type LikeHandler struct {
	likes  LikeService
	logger *zap.Logger
}

func NewLikeHandler(likes LikeService, logger *zap.Logger) *LikeHandler {
	return &LikeHandler{
		likes:  likes,
		logger: logger.Named("like_handler"),
	}
}

// parseLikeTarget reports the missing id for the declared type before the
// generic exactly-one check.
func parseLikeTarget(typ, contentID, commentID string) (model.Target, error) {
	typ, contentID, commentID = strings.TrimSpace(typ), strings.TrimSpace(contentID), strings.TrimSpace(commentID)
	switch model.TargetType(typ) {
	case model.TargetContent:
		if contentID == "" {
			return model.Target{}, model.NewValidationError("Content ID is required for content likes")
		}
	case model.TargetComment:
		if commentID == "" {
			return model.Target{}, model.NewValidationError("Comment ID is required for comment likes")
		}
	}
	return model.ParseTarget(typ, contentID, commentID)
}

func queryTarget(r *http.Request) (model.Target, error) {
	q := r.URL.Query()
	return parseLikeTarget(q.Get("type"), q.Get("contentId"), q.Get("commentId"))
}

// Toggle handles POST /likes/toggle
// Flips the caller's like on a content item or comment.
func (h *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.ToggleLikeRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	target, err := parseLikeTarget(req.Type, req.ContentID, req.CommentID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error toggling like")
		return
	}

	result, err := h.likes.Toggle(r.Context(), userID, target)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error toggling like")
		return
	}

	message := "Unliked successfully"
	if result.Liked {
		message = "Liked successfully"
	}
	httputil.WriteSuccess(w, http.StatusOK, result, message)
}

// Remove handles DELETE /likes
func (h *LikeHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req model.ToggleLikeRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	target, err := parseLikeTarget(req.Type, req.ContentID, req.CommentID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error removing like")
		return
	}

	if err := h.likes.Remove(r.Context(), userID, target); err != nil {
		writeServiceError(w, h.logger, err, "Error removing like")
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nil, "Like removed successfully")
}

// Check handles GET /likes/check?type=&contentId=|commentId=
func (h *LikeHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	target, err := queryTarget(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error checking like")
		return
	}

	liked, err := h.likes.IsLiked(r.Context(), userID, target)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error checking like")
		return
	}
	httputil.WriteOK(w, map[string]bool{"isLiked": liked})
}

// Count handles GET /likes/count?type=&contentId=|commentId=
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	target, err := queryTarget(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error counting likes")
		return
	}

	count, err := h.likes.Count(r.Context(), target)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error counting likes")
		return
	}
	httputil.WriteOK(w, map[string]int64{"count": count})
}

// LikedUsers handles GET /likes/users?type=&contentId=|commentId=
func (h *LikeHandler) LikedUsers(w http.ResponseWriter, r *http.Request) {
	target, err := queryTarget(r)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching liked users")
		return
	}
	page, limit := httputil.Page(r)

	resp, err := h.likes.LikedUsers(r.Context(), target, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching liked users")
		return
	}
	httputil.WriteOK(w, resp)
}

// ByUser handles GET /likes/user/:userId?type=
func (h *LikeHandler) ByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId", "user")
	if !ok {
		return
	}

	var targetType *model.TargetType
	if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
		t := model.TargetType(raw)
		targetType = &t
	}
	page, limit := httputil.Page(r)

	resp, err := h.likes.LikesByUser(r.Context(), userID, targetType, page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching user likes")
		return
	}
	httputil.WriteOK(w, resp)
}
