package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Comment belongs to one content item and optionally replies to a parent comment.
type Comment struct {
	ID            uuid.UUID   `db:"id" json:"id"`
	ContentID     uuid.UUID   `db:"content_id" json:"contentId"`
	UserID        uuid.UUID   `db:"user_id" json:"-"`
	Text          string      `db:"text" json:"text"`
	ParentComment *uuid.UUID  `db:"parent_comment_id" json:"parentComment"`
	Likes         int64       `db:"likes" json:"likes"`
	ReplyIDs      []uuid.UUID `db:"-" json:"replyIds"`
	IsEdited      bool        `db:"is_edited" json:"isEdited"`
	CreatedAt     time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time   `db:"updated_at" json:"updatedAt"`

	// Joined fields
	Author    *UserSummary `json:"user,omitempty"`
	Replies   []Comment    `json:"replies,omitempty"`
	LikeCount *int64       `json:"likeCount,omitempty"`
}

// HasReplies reports whether any comment references c as its parent.
func (c *Comment) HasReplies() bool {
	return len(c.ReplyIDs) > 0
}

// IsReply reports whether c has a parent comment.
func (c *Comment) IsReply() bool {
	return c.ParentComment != nil
}

// CreateCommentRequest is the request body for creating a comment.
type CreateCommentRequest struct {
	ContentID     string  `json:"contentId" validate:"required"`
	Text          string  `json:"text" validate:"required"`
	ParentComment *string `json:"parentComment,omitempty"`
}

// UpdateCommentRequest is the request body for updating a comment.
type UpdateCommentRequest struct {
	Text string `json:"text" validate:"required"`
}

// CommentListResponse is the paginated comment list response.
type CommentListResponse struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

const (
	MaxCommentLength = 2200

	// DeletedCommentText replaces the text of a deleted comment that still has replies.
	DeletedCommentText = "[Comment deleted]"

	DefaultCommentLimit = 20
	DefaultReplyLimit   = 10
)

var (
	ErrCommentNotFound       = errors.New("comment not found")
	ErrParentCommentNotFound = errors.New("parent comment not found")
	ErrCommentTextRequired   = errors.New("comment text is required")
	ErrCommentTooLong        = errors.New("comment text too long")
)
