package handler

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/goodnessaig1/gidolee-video-share/internal/httputil"
	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/transport/http/middleware"
)

const maxAvatarBody = model.MaxAvatarSizeBytes + 1<<20

// CookieOptions controls the access token cookie set on login.
type CookieOptions struct {
	MaxAge int // seconds
	Secure bool
}

// AuthHandler groups account endpoints: sign-up, login and user management.
type AuthHandler struct {
	users  UserService
	cookie CookieOptions
	logger *zap.Logger
}

func NewAuthHandler(users UserService, cookie CookieOptions, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:  users,
		cookie: cookie,
		logger: logger.Named("auth_handler"),
	}
}

// Register handles POST /auth/register
// Accepts multipart (with an optional "profilePicture" file) or JSON.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var (
		req    model.RegisterRequest
		avatar *model.Upload
	)

	if isMultipart(r) {
		if err := parseMultipart(w, r, maxAvatarBody); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				httputil.WriteBadRequest(w, "Profile picture exceeds 5MB limit")
				return
			}
			httputil.WriteBadRequest(w, "Invalid form data")
			return
		}
		req = model.RegisterRequest{
			FullName: r.FormValue("fullName"),
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
			Role:     model.Role(strings.TrimSpace(r.FormValue("role"))),
		}
		up, closeUpload, err := formUpload(r, "profilePicture")
		if err != nil {
			httputil.WriteBadRequest(w, "Invalid profile picture")
			return
		}
		defer closeUpload()
		avatar = up
	} else if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.users.Register(r.Context(), req, avatar)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error registering user")
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login
// The token is returned in the body and as an HttpOnly cookie.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	resp, err := h.users.Login(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error logging in")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   h.cookie.MaxAge,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// Logout handles POST /auth/logout by expiring the token cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	httputil.WriteSuccess(w, http.StatusOK, nil, "Logged out successfully")
}

// List handles GET /auth
func (h *AuthHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := httputil.Page(r)
	resp, err := h.users.List(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching users")
		return
	}
	httputil.WriteOK(w, resp)
}

// GetByID handles GET /auth/:id
func (h *AuthHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user")
	if !ok {
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error fetching user")
		return
	}
	httputil.WriteOK(w, user)
}

// Update handles PATCH /auth/:id
// Multipart requests may carry a new "profilePicture".
func (h *AuthHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}
	id, ok := pathID(w, r, "id", "user")
	if !ok {
		return
	}

	var (
		req    model.UpdateUserRequest
		avatar *model.Upload
	)
	if isMultipart(r) {
		if err := parseMultipart(w, r, maxAvatarBody); err != nil {
			httputil.WriteBadRequest(w, "Invalid form data")
			return
		}
		req.FullName = formOptionalString(r, "fullName")
		req.Email = formOptionalString(r, "email")
		req.Password = formOptionalString(r, "password")
		if role := formOptionalString(r, "role"); role != nil {
			rl := model.Role(*role)
			req.Role = &rl
		}
		up, closeUpload, err := formUpload(r, "profilePicture")
		if err != nil {
			httputil.WriteBadRequest(w, "Invalid profile picture")
			return
		}
		defer closeUpload()
		avatar = up
	} else if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	user, err := h.users.Update(r.Context(), actor, id, req)
	if err != nil {
		writeServiceError(w, h.logger, err, "Error updating user")
		return
	}
	if avatar != nil {
		if user, err = h.users.UpdateAvatar(r.Context(), actor, id, *avatar); err != nil {
			writeServiceError(w, h.logger, err, "Error updating user")
			return
		}
	}

	httputil.WriteSuccess(w, http.StatusOK, user, "User updated successfully")
}

// Delete handles DELETE /auth/:id
func (h *AuthHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Unauthorized")
		return
	}
	id, ok := pathID(w, r, "id", "user")
	if !ok {
		return
	}

	if err := h.users.Delete(r.Context(), actor, id); err != nil {
		writeServiceError(w, h.logger, err, "Error deleting user")
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, nil, "User deleted successfully")
}
