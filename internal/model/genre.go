package model

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Genre is a named content category.
type Genre struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Description string    `db:"description" json:"description"`
	IsActive    bool      `db:"is_active" json:"isActive"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// GenreSummary is the genre projection joined into content.
type GenreSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type CreateGenreRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=500"`
}

// UpdateGenreRequest is a partial update. Nil fields are left unchanged.
type UpdateGenreRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	IsActive    *bool   `json:"isActive"`
}

type GenreListResponse struct {
	Genres     []Genre    `json:"genres"`
	Pagination Pagination `json:"pagination"`
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases name, collapses every run of characters outside
// [a-z0-9] into a single hyphen and trims hyphens from both ends.
func Slugify(name string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}

// DefaultGenres is the catalog installed by the seed command.
var DefaultGenres = []CreateGenreRequest{
	{Name: "Comedy", Description: "Funny and entertaining content"},
	{Name: "Drama", Description: "Dramatic and emotional stories"},
	{Name: "Action", Description: "High-energy action content"},
	{Name: "Romance", Description: "Love stories and romantic content"},
	{Name: "Horror", Description: "Scary and thrilling content"},
	{Name: "Sci-Fi", Description: "Science fiction and futuristic content"},
	{Name: "Documentary", Description: "Educational and factual content"},
	{Name: "Music", Description: "Music videos and performances"},
	{Name: "Sports", Description: "Sports highlights and athletic content"},
	{Name: "Travel", Description: "Travel vlogs and destination guides"},
	{Name: "Food", Description: "Cooking, recipes and food reviews"},
	{Name: "Technology", Description: "Tech reviews, tutorials and news"},
	{Name: "Fashion", Description: "Style, fashion and beauty content"},
	{Name: "Gaming", Description: "Gameplay, reviews and esports"},
	{Name: "Education", Description: "Lessons, tutorials and learning content"},
}

var (
	ErrGenreNotFound = errors.New("genre not found")
	ErrGenreExists   = errors.New("genre with this name already exists")
)
