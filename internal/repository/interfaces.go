package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

// Querier is satisfied by both *sqlx.DB and *sqlx.Tx, so write methods can
// take part in a caller's transaction.
type Querier = sqlx.ExtContext

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, page model.PageRequest) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, email string, role model.Role) error
}

type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Genre, error)
	// GetBySlug only returns active genres.
	GetBySlug(ctx context.Context, slug string) (*model.Genre, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Genre, error)
	List(ctx context.Context, activeOnly bool, page model.PageRequest) ([]model.Genre, int64, error)
	ListActive(ctx context.Context) ([]model.Genre, error)
	Search(ctx context.Context, query string, page model.PageRequest) ([]model.Genre, int64, error)
	// Popular ranks active genres by the number of content items in them.
	Popular(ctx context.Context, limit int) ([]model.Genre, error)
	Update(ctx context.Context, genre *model.Genre) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type ContentRepository interface {
	Create(ctx context.Context, content *model.Content) error
	// GetByID returns the content joined with author and genre.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Content, error)
	// List returns one page ordered newest first plus the total match count.
	List(ctx context.Context, filter model.ContentFilter, page model.PageRequest) ([]model.Content, int64, error)
	// Update writes the mutable fields; it only matches rows owned by content.UserID.
	Update(ctx context.Context, content *model.Content) error
	// Delete removes an owned row and returns the keys of its stored objects
	// (media and thumbnail).
	Delete(ctx context.Context, id, userID uuid.UUID) (objectKeys []string, err error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	AdjustLikes(ctx context.Context, q Querier, id uuid.UUID, delta int) error
	AdjustShares(ctx context.Context, q Querier, id uuid.UUID, delta int) error
}

type CommentRepository interface {
	Create(ctx context.Context, q Querier, comment *model.Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	// GetByIDs returns comments with authors, newest first.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Comment, error)
	ListByContent(ctx context.Context, contentID uuid.UUID, page model.PageRequest) ([]model.Comment, int64, error)
	ListReplies(ctx context.Context, parentID uuid.UUID, page model.PageRequest) ([]model.Comment, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page model.PageRequest) ([]model.Comment, int64, error)
	// UpdateText changes an owned comment's text and marks it edited.
	UpdateText(ctx context.Context, id, userID uuid.UUID, text string) (*model.Comment, error)
	AppendReply(ctx context.Context, q Querier, parentID, replyID uuid.UUID) error
	RemoveReply(ctx context.Context, q Querier, parentID, replyID uuid.UUID) error
	// Tombstone replaces the text with the deletion placeholder and marks it edited.
	Tombstone(ctx context.Context, q Querier, id uuid.UUID) error
	Delete(ctx context.Context, q Querier, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	CountByContents(ctx context.Context, contentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	AdjustLikes(ctx context.Context, q Querier, id uuid.UUID, delta int) error
}

type LikeRepository interface {
	// Insert returns model.ErrAlreadyLiked when the (user, target) pair exists.
	Insert(ctx context.Context, q Querier, userID uuid.UUID, target model.Target) error
	// Delete reports whether a like was removed.
	Delete(ctx context.Context, q Querier, userID uuid.UUID, target model.Target) (bool, error)
	Exists(ctx context.Context, userID uuid.UUID, target model.Target) (bool, error)
	Count(ctx context.Context, target model.Target) (int64, error)
	CountByTargets(ctx context.Context, targetType model.TargetType, ids []uuid.UUID) (map[uuid.UUID]int64, error)
	// LikedTargets returns the subset of ids the user has liked.
	LikedTargets(ctx context.Context, userID uuid.UUID, targetType model.TargetType, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	ListUsers(ctx context.Context, target model.Target, page model.PageRequest) ([]model.LikedUser, int64, error)
	// ListByUser spans both target types when targetType is nil.
	ListByUser(ctx context.Context, userID uuid.UUID, targetType *model.TargetType, page model.PageRequest) ([]model.Like, int64, error)
}

type ShareRepository interface {
	Create(ctx context.Context, q Querier, share *model.Share) error
	ListByContent(ctx context.Context, contentID uuid.UUID, page model.PageRequest) ([]model.Share, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page model.PageRequest) ([]model.Share, int64, error)
	ListByPlatform(ctx context.Context, platform string, page model.PageRequest) ([]model.Share, int64, error)
	Count(ctx context.Context, contentID uuid.UUID) (int64, error)
	CountByContents(ctx context.Context, contentIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	// Stats groups a content item's shares by platform, largest first.
	Stats(ctx context.Context, contentID uuid.UUID) ([]model.PlatformStat, error)
}
