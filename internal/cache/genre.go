package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
)

const (
	// ActiveGenresKey holds the JSON-encoded active genre catalog.
	ActiveGenresKey = "genres:active"

	// GenreCacheTTL bounds staleness if an invalidation is lost.
	GenreCacheTTL = 10 * time.Minute
)

// GenreCache stores the active genre list that every content form loads.
type GenreCache interface {
	// GetActive returns (genres, true, nil) on a hit and (nil, false, nil) on a miss.
	GetActive(ctx context.Context) ([]model.Genre, bool, error)
	SetActive(ctx context.Context, genres []model.Genre) error
	// Invalidate drops the cached list after any genre write.
	Invalidate(ctx context.Context) error
}

type redisGenreCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewGenreCache(client *redis.Client) GenreCache {
	return &redisGenreCache{client: client, ttl: GenreCacheTTL}
}

func (c *redisGenreCache) GetActive(ctx context.Context) ([]model.Genre, bool, error) {
	data, err := c.client.Get(ctx, ActiveGenresKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get active genres: %w", err)
	}

	var genres []model.Genre
	if err := json.Unmarshal(data, &genres); err != nil {
		// A corrupt entry is treated as a miss and overwritten on the next fill.
		return nil, false, nil
	}
	return genres, true, nil
}

func (c *redisGenreCache) SetActive(ctx context.Context, genres []model.Genre) error {
	if genres == nil {
		genres = []model.Genre{}
	}
	data, err := json.Marshal(genres)
	if err != nil {
		return fmt.Errorf("marshal active genres: %w", err)
	}
	if err := c.client.Set(ctx, ActiveGenresKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set active genres: %w", err)
	}
	return nil
}

func (c *redisGenreCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, ActiveGenresKey).Err(); err != nil {
		return fmt.Errorf("invalidate active genres: %w", err)
	}
	return nil
}
