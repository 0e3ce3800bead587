package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

// The interfaces below are the slices of the service layer each handler
// calls. The concrete services in internal/service satisfy them.

type ContentService interface {
	List(ctx context.Context, params model.ListContentParams) (*model.ContentListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*model.Content, error)
	RecordView(ctx context.Context, id uuid.UUID)
	Search(ctx context.Context, params model.SearchContentParams) (*model.ContentListResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int, viewerID *uuid.UUID) (*model.ContentListResponse, error)
	ListByGenre(ctx context.Context, genreID uuid.UUID, page, limit int, viewerID *uuid.UUID) (*model.ContentListResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req model.CreateContentRequest, up *model.Upload) (*model.Content, error)
	Update(ctx context.Context, id, userID uuid.UUID, req model.UpdateContentRequest) (*model.Content, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type LikeService interface {
	Toggle(ctx context.Context, userID uuid.UUID, target model.Target) (*model.ToggleResult, error)
	Remove(ctx context.Context, userID uuid.UUID, target model.Target) error
	IsLiked(ctx context.Context, userID uuid.UUID, target model.Target) (bool, error)
	Count(ctx context.Context, target model.Target) (int64, error)
	LikedUsers(ctx context.Context, target model.Target, page, limit int) (*model.LikedUsersResponse, error)
	LikesByUser(ctx context.Context, userID uuid.UUID, targetType *model.TargetType, page, limit int) (*model.LikeListResponse, error)
}

type CommentService interface {
	Create(ctx context.Context, userID uuid.UUID, req model.CreateCommentRequest) (*model.Comment, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	Update(ctx context.Context, id, userID uuid.UUID, req model.UpdateCommentRequest) (*model.Comment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByContent(ctx context.Context, contentID uuid.UUID, page, limit int) (*model.CommentListResponse, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, page, limit int) (*model.CommentListResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (*model.CommentListResponse, error)
}

type ShareService interface {
	Create(ctx context.Context, userID uuid.UUID, req model.CreateShareRequest) (*model.Share, error)
	ListByContent(ctx context.Context, contentID uuid.UUID, page, limit int) (*model.ShareListResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) (*model.ShareListResponse, error)
	ListByPlatform(ctx context.Context, platform string, page, limit int) (*model.ShareListResponse, error)
	Count(ctx context.Context, contentID uuid.UUID) (int64, error)
	Stats(ctx context.Context, contentID uuid.UUID) ([]model.PlatformStat, error)
}

type GenreService interface {
	Create(ctx context.Context, req model.CreateGenreRequest) (*model.Genre, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	GetBySlug(ctx context.Context, slug string) (*model.Genre, error)
	List(ctx context.Context, page, limit int, activeOnly bool) (*model.GenreListResponse, error)
	Active(ctx context.Context) ([]model.Genre, error)
	Popular(ctx context.Context, limit int) ([]model.Genre, error)
	Search(ctx context.Context, query string, page, limit int) (*model.GenreListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateGenreRequest) (*model.Genre, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
}

type UserService interface {
	Register(ctx context.Context, req model.RegisterRequest, avatar *model.Upload) (*model.AuthResponse, error)
	Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, page, limit int) (*model.UserListResponse, error)
	Update(ctx context.Context, actor model.Actor, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)
	UpdateAvatar(ctx context.Context, actor model.Actor, id uuid.UUID, avatar model.Upload) (*model.User, error)
	Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error
}

type Uploader interface {
	Upload(ctx context.Context, up model.Upload) (*model.UploadResult, error)
}
