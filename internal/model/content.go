package model

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypeImage MediaType = "image"
)

// Content is a unit of shared media.
//
// Likes and Shares are denormalized counters kept for display. They are
// best-effort; LikeCount, CommentCount and ShareCount are computed from the
// engagement tables at read time and are authoritative.
type Content struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      uuid.UUID `db:"user_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description string    `db:"description" json:"description"`
	MediaURL    string    `db:"media_url" json:"mediaUrl"`
	MediaKey    string    `db:"media_key" json:"-"`
	MediaType   MediaType `db:"media_type" json:"mediaType"`
	Thumbnail   *string   `db:"thumbnail" json:"thumbnail"`
	Duration    *float64  `db:"duration" json:"duration"`
	Location    *string   `db:"location" json:"location"`
	Views       int64     `db:"views" json:"views"`
	Likes       int64     `db:"likes" json:"likes"`
	Shares      int64     `db:"shares" json:"shares"`
	IsPublic    bool      `db:"is_public" json:"isPublic"`
	Tags        []string  `db:"-" json:"tags"`
	GenreID     uuid.UUID `db:"genre_id" json:"-"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`

	// ThumbnailKey is empty for uploads without a generated thumbnail.
	ThumbnailKey string `db:"thumbnail_key" json:"-"`

	// Joined fields
	Author *UserSummary  `json:"user"`
	Genre  *GenreSummary `json:"genre"`

	// Live engagement
	LikeCount    int64 `json:"likeCount"`
	CommentCount int64 `json:"commentCount"`
	ShareCount   int64 `json:"shareCount"`
	IsLiked      bool  `json:"isLiked"`
}

// ApplyDefaults fills the optional fields a client expects to be present.
func (c *Content) ApplyDefaults() {
	if c.MediaType == "" {
		c.MediaType = MediaTypeVideo
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
}

// ContentFilter narrows a content listing. Zero fields are ignored.
type ContentFilter struct {
	GenreID *uuid.UUID
	UserID  *uuid.UUID
	Query   string
}

// ListContentParams are the inputs of a feed listing.
type ListContentParams struct {
	Page     int
	Limit    int
	ViewerID *uuid.UUID
	// Genre is the raw filter value; it is ignored unless it is a valid id.
	Genre string
}

type SearchContentParams struct {
	Query    string
	Genre    string
	Page     int
	Limit    int
	ViewerID *uuid.UUID
}

type ContentListResponse struct {
	Contents   []Content  `json:"contents"`
	Pagination Pagination `json:"pagination"`
}

// CreateContentRequest carries the form fields of a content upload.
type CreateContentRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	Genre       string    `json:"genre"`
	Tags        []string  `json:"tags" validate:"max=30,dive,max=50"`
	MediaType   MediaType `json:"mediaType" validate:"omitempty,oneof=video image"`
	Duration    *float64  `json:"duration" validate:"omitempty,gte=0"`
	Location    *string   `json:"location" validate:"omitempty,max=200"`
	IsPublic    *bool     `json:"isPublic"`
}

// UpdateContentRequest is a partial update. Nil fields are left unchanged.
type UpdateContentRequest struct {
	Title       *string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string   `json:"description" validate:"omitempty,max=2000"`
	Genre       *string   `json:"genre"`
	Tags        *[]string `json:"tags"`
	Location    *string   `json:"location" validate:"omitempty,max=200"`
	IsPublic    *bool     `json:"isPublic"`
}

// Upload is a file received from a client, before it is stored.
type Upload struct {
	Body        io.Reader
	Filename    string
	ContentType string
	Size        int64
}

var (
	ErrContentNotFound = errors.New("content not found")
	ErrMediaRequired   = errors.New("media file is required")
)
