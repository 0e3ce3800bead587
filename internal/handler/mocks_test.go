package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/transport/http/middleware"
)

var errNotStubbed = errors.New("not stubbed")

// =============================================================================
// MOCK SERVICES
// =============================================================================

type mockContentService struct {
	listFn        func(ctx context.Context, params model.ListContentParams) (*model.ContentListResponse, error)
	getByIDFn     func(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Content, error)
	searchFn      func(ctx context.Context, params model.SearchContentParams) (*model.ContentListResponse, error)
	listByGenreFn func(ctx context.Context, genreID uuid.UUID, page, limit int, viewerID *uuid.UUID) (*model.ContentListResponse, error)
	createFn      func(ctx context.Context, userID uuid.UUID, req model.CreateContentRequest, up *model.Upload) (*model.Content, error)
	updateFn      func(ctx context.Context, id, userID uuid.UUID, req model.UpdateContentRequest) (*model.Content, error)
	deleteFn      func(ctx context.Context, id, userID uuid.UUID) error

	views []uuid.UUID
}

func (m *mockContentService) List(ctx context.Context, params model.ListContentParams) (*model.ContentListResponse, error) {
	if m.listFn == nil {
		return nil, errNotStubbed
	}
	return m.listFn(ctx, params)
}

func (m *mockContentService) GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Content, error) {
	if m.getByIDFn == nil {
		return nil, errNotStubbed
	}
	return m.getByIDFn(ctx, id, viewerID)
}

func (m *mockContentService) RecordView(ctx context.Context, id uuid.UUID) {
	m.views = append(m.views, id)
}

func (m *mockContentService) Search(ctx context.Context, params model.SearchContentParams) (*model.ContentListResponse, error) {
	if m.searchFn == nil {
		return nil, errNotStubbed
	}
	return m.searchFn(ctx, params)
}

func (m *mockContentService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int, viewerID *uuid.UUID) (*model.ContentListResponse, error) {
	return nil, errNotStubbed
}

func (m *mockContentService) ListByGenre(ctx context.Context, genreID uuid.UUID, page, limit int, viewerID *uuid.UUID) (*model.ContentListResponse, error) {
	if m.listByGenreFn == nil {
		return nil, errNotStubbed
	}
	return m.listByGenreFn(ctx, genreID, page, limit, viewerID)
}

func (m *mockContentService) Create(ctx context.Context, userID uuid.UUID, req model.CreateContentRequest, up *model.Upload) (*model.Content, error) {
	if m.createFn == nil {
		return nil, errNotStubbed
	}
	return m.createFn(ctx, userID, req, up)
}

func (m *mockContentService) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdateContentRequest) (*model.Content, error) {
	if m.updateFn == nil {
		return nil, errNotStubbed
	}
	return m.updateFn(ctx, id, userID, req)
}

func (m *mockContentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.deleteFn == nil {
		return errNotStubbed
	}
	return m.deleteFn(ctx, id, userID)
}

type mockLikeService struct {
	toggleFn  func(ctx context.Context, userID uuid.UUID, target model.Target) (*model.ToggleResult, error)
	removeFn  func(ctx context.Context, userID uuid.UUID, target model.Target) error
	isLikedFn func(ctx context.Context, userID uuid.UUID, target model.Target) (bool, error)
	countFn   func(ctx context.Context, target model.Target) (int64, error)
	byUserFn  func(ctx context.Context, userID uuid.UUID, targetType *model.TargetType, page, limit int) (*model.LikeListResponse, error)
}

func (m *mockLikeService) Toggle(ctx context.Context, userID uuid.UUID, target model.Target) (*model.ToggleResult, error) {
	if m.toggleFn == nil {
		return nil, errNotStubbed
	}
	return m.toggleFn(ctx, userID, target)
}

func (m *mockLikeService) Remove(ctx context.Context, userID uuid.UUID, target model.Target) error {
	if m.removeFn == nil {
		return errNotStubbed
	}
	return m.removeFn(ctx, userID, target)
}

func (m *mockLikeService) IsLiked(ctx context.Context, userID uuid.UUID, target model.Target) (bool, error) {
	if m.isLikedFn == nil {
		return false, errNotStubbed
	}
	return m.isLikedFn(ctx, userID, target)
}

func (m *mockLikeService) Count(ctx context.Context, target model.Target) (int64, error) {
	if m.countFn == nil {
		return 0, errNotStubbed
	}
	return m.countFn(ctx, target)
}

func (m *mockLikeService) LikedUsers(ctx context.Context, target model.Target, page, limit int) (*model.LikedUsersResponse, error) {
	return nil, errNotStubbed
}

func (m *mockLikeService) LikesByUser(ctx context.Context, userID uuid.UUID, targetType *model.TargetType, page, limit int) (*model.LikeListResponse, error) {
	if m.byUserFn == nil {
		return nil, errNotStubbed
	}
	return m.byUserFn(ctx, userID, targetType, page, limit)
}

type mockCommentService struct {
	createFn func(ctx context.Context, userID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error)
	deleteFn func(ctx context.Context, id, userID uuid.UUID) error
	updateFn func(ctx context.Context, id, userID uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error)
}

func (m *mockCommentService) Create(ctx context.Context, userID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error) {
	if m.createFn == nil {
		return nil, errNotStubbed
	}
	return m.createFn(ctx, userID, req)
}

func (m *mockCommentService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.deleteFn == nil {
		return errNotStubbed
	}
	return m.deleteFn(ctx, id, userID)
}

func (m *mockCommentService) Update(ctx context.Context, id, userID uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error) {
	if m.updateFn == nil {
		return nil, errNotStubbed
	}
	return m.updateFn(ctx, id, userID, req)
}

func (m *mockCommentService) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	return nil, errNotStubbed
}

func (m *mockCommentService) ListByContent(ctx context.Context, contentID uuid.UUID, page, limit int) (*model.CommentListResponse, error) {
	return nil, errNotStubbed
}

func (m *mockCommentService) ListReplies(ctx context.Context, parentID uuid.UUID, page, limit int) (*model.CommentListResponse, error) {
	return nil, errNotStubbed
}

func (m *mockCommentService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (*model.CommentListResponse, error) {
	return nil, errNotStubbed
}

type mockGenreService struct {
	createFn  func(ctx context.Context, req model.CreateGenreRequest) (*model.Genre, error)
	popularFn func(ctx context.Context, limit int) ([]model.Genre, error)
	searchFn  func(ctx context.Context, query string, page, limit int) (*model.GenreListResponse, error)
}

func (m *mockGenreService) Create(ctx context.Context, req model.CreateGenreRequest) (*model.Genre, error) {
	if m.createFn == nil {
		return nil, errNotStubbed
	}
	return m.createFn(ctx, req)
}

func (m *mockGenreService) GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error) {
	return nil, model.ErrGenreNotFound
}

func (m *mockGenreService) GetBySlug(ctx context.Context, slug string) (*model.Genre, error) {
	return nil, model.ErrGenreNotFound
}

func (m *mockGenreService) List(ctx context.Context, page, limit int, activeOnly bool) (*model.GenreListResponse, error) {
	return nil, errNotStubbed
}

func (m *mockGenreService) Active(ctx context.Context) ([]model.Genre, error) {
	return nil, errNotStubbed
}

func (m *mockGenreService) Popular(ctx context.Context, limit int) ([]model.Genre, error) {
	if m.popularFn == nil {
		return nil, errNotStubbed
	}
	return m.popularFn(ctx, limit)
}

func (m *mockGenreService) Search(ctx context.Context, query string, page, limit int) (*model.GenreListResponse, error) {
	if m.searchFn == nil {
		return nil, errNotStubbed
	}
	return m.searchFn(ctx, query, page, limit)
}

func (m *mockGenreService) Update(ctx context.Context, id uuid.UUID, req model.UpdateGenreRequest) (*model.Genre, error) {
	return nil, errNotStubbed
}

func (m *mockGenreService) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *mockGenreService) HardDelete(ctx context.Context, id uuid.UUID) error {
	return model.ErrGenreNotFound
}

type mockUserService struct {
	registerFn     func(ctx context.Context, req model.RegisterRequest, avatar *model.Upload) (*model.AuthResponse, error)
	loginFn        func(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*model.User, error)
	updateFn       func(ctx context.Context, actor model.Actor, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)
	updateAvatarFn func(ctx context.Context, actor model.Actor, id uuid.UUID, avatar model.Upload) (*model.User, error)
	deleteFn       func(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

func (m *mockUserService) Register(ctx context.Context, req model.RegisterRequest, avatar *model.Upload) (*model.AuthResponse, error) {
	if m.registerFn == nil {
		return nil, errNotStubbed
	}
	return m.registerFn(ctx, req, avatar)
}

func (m *mockUserService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if m.loginFn == nil {
		return nil, errNotStubbed
	}
	return m.loginFn(ctx, req)
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.getByIDFn == nil {
		return nil, errNotStubbed
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserService) List(ctx context.Context, page, limit int) (*model.UserListResponse, error) {
	return nil, errNotStubbed
}

func (m *mockUserService) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	if m.updateFn == nil {
		return nil, errNotStubbed
	}
	return m.updateFn(ctx, actor, id, req)
}

func (m *mockUserService) UpdateAvatar(ctx context.Context, actor model.Actor, id uuid.UUID, avatar model.Upload) (*model.User, error) {
	if m.updateAvatarFn == nil {
		return nil, errNotStubbed
	}
	return m.updateAvatarFn(ctx, actor, id, avatar)
}

func (m *mockUserService) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if m.deleteFn == nil {
		return errNotStubbed
	}
	return m.deleteFn(ctx, actor, id)
}

type mockShareService struct {
	createFn func(ctx context.Context, userID uuid.UUID, req model.CreateShareRequest) (*model.Share, error)
	statsFn  func(ctx context.Context, contentID uuid.UUID) ([]model.PlatformStat, error)
}

func (m *mockShareService) Create(ctx context.Context, userID uuid.UUID, req model.CreateShareRequest) (*model.Share, error) {
	if m.createFn == nil {
		return nil, errNotStubbed
	}
	return m.createFn(ctx, userID, req)
}

func (m *mockShareService) ListByContent(ctx context.Context, contentID uuid.UUID, page, limit int) (*model.ShareListResponse, error) {
	return nil, errNotStubbed
}

func (m *mockShareService) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (*model.ShareListResponse, error) {
	return nil, errNotStubbed
}

func (m *mockShareService) ListByPlatform(ctx context.Context, platform string, page, limit int) (*model.ShareListResponse, error) {
	return nil, errNotStubbed
}

func (m *mockShareService) Count(ctx context.Context, contentID uuid.UUID) (int64, error) {
	return 0, errNotStubbed
}

func (m *mockShareService) Stats(ctx context.Context, contentID uuid.UUID) ([]model.PlatformStat, error) {
	if m.statsFn == nil {
		return nil, errNotStubbed
	}
	return m.statsFn(ctx, contentID)
}

type mockUploader struct {
	uploadFn func(ctx context.Context, up model.Upload) (*model.UploadResult, error)
}

func (m *mockUploader) Upload(ctx context.Context, up model.Upload) (*model.UploadResult, error) {
	return m.uploadFn(ctx, up)
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

// asUser attaches an authenticated actor to r.
func asUser(r *http.Request, id uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithActor(r.Context(), model.Actor{ID: id, Role: model.RoleUser}))
}

// withParams sets chi URL parameters given as key, value pairs.
func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type formFile struct {
	field, filename, contentType string
	body                         []byte
}

// multipartRequest builds a multipart/form-data request from fields and files.
func multipartRequest(t *testing.T, method, target string, fields map[string][]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.body)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
