package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TargetType names the kind of entity a like points at.
type TargetType string

const (
	TargetContent TargetType = "content"
	TargetComment TargetType = "comment"
)

func (t TargetType) Valid() bool {
	return t == TargetContent || t == TargetComment
}

// Target identifies exactly one likeable entity.
type Target struct {
	Type TargetType
	ID   uuid.UUID
}

func ContentTarget(id uuid.UUID) Target { return Target{Type: TargetContent, ID: id} }

func CommentTarget(id uuid.UUID) Target { return Target{Type: TargetComment, ID: id} }

// ParseTarget builds a Target from a type and the two optional id fields
// clients send. Exactly one id must be present and it must match typ.
func ParseTarget(typ, contentID, commentID string) (Target, error) {
	t := TargetType(typ)
	if !t.Valid() {
		return Target{}, ErrInvalidTargetType
	}
	if (contentID == "") == (commentID == "") {
		return Target{}, ErrAmbiguousTarget
	}

	raw := contentID
	if t == TargetComment {
		raw = commentID
	}
	if raw == "" {
		return Target{}, ErrAmbiguousTarget
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return Target{}, ErrInvalidTargetID
	}
	return Target{Type: t, ID: id}, nil
}

// Like is one (user, target) membership record.
type Like struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	UserID     uuid.UUID  `db:"user_id" json:"userId"`
	TargetType TargetType `db:"target_type" json:"type"`
	TargetID   uuid.UUID  `db:"target_id" json:"targetId"`
	CreatedAt  time.Time  `db:"created_at" json:"createdAt"`
}

// ToggleLikeRequest is the body of toggle and remove requests.
type ToggleLikeRequest struct {
	Type      string `json:"type"`
	ContentID string `json:"contentId"`
	CommentID string `json:"commentId"`
}

// ToggleResult is the state after a toggle and the ledger count for the target.
type ToggleResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// LikedUser is a liker with the time the like was recorded.
type LikedUser struct {
	UserSummary
	LikedAt time.Time `db:"liked_at" json:"likedAt"`
}

type LikedUsersResponse struct {
	Users      []LikedUser `json:"users"`
	Pagination Pagination  `json:"pagination"`
}

type LikeListResponse struct {
	Likes      []Like     `json:"likes"`
	Pagination Pagination `json:"pagination"`
}

const DefaultLikedUsersLimit = 20

var (
	ErrLikeNotFound      = errors.New("like not found")
	ErrAlreadyLiked      = errors.New("already liked")
	ErrInvalidTargetType = NewValidationError("Type must be either content or comment")
	ErrAmbiguousTarget   = NewValidationError("Provide exactly one of contentId or commentId matching type")
	ErrInvalidTargetID   = NewValidationError("Invalid target id")
	ErrTargetNotFound    = errors.New("like target not found")
)
