package model

import (
	"time"

	"github.com/google/uuid"
)

// Share is an append-only record of a user sharing content.
type Share struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"-"`
	ContentID uuid.UUID `db:"content_id" json:"contentId"`
	Platform  *string   `db:"platform" json:"platform"`
	ShareURL  *string   `db:"share_url" json:"shareUrl"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`

	Author *UserSummary `json:"user,omitempty"`
}

type CreateShareRequest struct {
	ContentID string  `json:"contentId" validate:"required,uuid"`
	Platform  *string `json:"platform" validate:"omitempty,max=50"`
	ShareURL  *string `json:"shareUrl" validate:"omitempty,url"`
}

// PlatformStat is the share count for one platform. Platform is nil for
// shares recorded without one.
type PlatformStat struct {
	Platform *string `db:"platform" json:"platform"`
	Count    int64   `db:"count" json:"count"`
}

type ShareListResponse struct {
	Shares     []Share    `json:"shares"`
	Pagination Pagination `json:"pagination"`
}

const DefaultShareLimit = 20
