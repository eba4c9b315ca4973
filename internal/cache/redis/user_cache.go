package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"lll-backend/internal/common/logger"
	"lll-backend/internal/features/user/models"
	"lll-backend/internal/features/user/repository"
)

// Commands is the Redis command surface the cache issues.
type Commands interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Get(ctx context.Context, key string) *goredis.StringCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// UserCache provides Redis-based caching for user records, keyed by the
// internal id and the Telegram id.
type UserCache struct {
	client Commands
	ttl    time.Duration
}

func NewUserCache(client Commands, ttl time.Duration) *UserCache {
	return &UserCache{client: client, ttl: ttl}
}

func (c *UserCache) keyByID(id string) string { return fmt.Sprintf("user:id:%s", id) }
func (c *UserCache) keyByTelegramID(telegramID string) string {
	return fmt.Sprintf("user:tg:%s", telegramID)
}

// Set stores the user under both keys.
func (c *UserCache) Set(ctx context.Context, u *models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.keyByID(u.ID), b, c.ttl).Err(); err != nil {
		return err
	}
	return c.client.Set(ctx, c.keyByTelegramID(u.TelegramID), b, c.ttl).Err()
}

// GetByID returns the cached user by internal id.
func (c *UserCache) GetByID(ctx context.Context, id string) (*models.User, error) {
	return c.get(ctx, c.keyByID(id))
}

// GetByTelegramID returns the cached user by Telegram id.
func (c *UserCache) GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	return c.get(ctx, c.keyByTelegramID(telegramID))
}

func (c *UserCache) get(ctx context.Context, key string) (*models.User, error) {
	v, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal(v, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Invalidate removes cached entries for the user.
func (c *UserCache) Invalidate(ctx context.Context, u *models.User) error {
	if err := c.client.Del(ctx, c.keyByID(u.ID)).Err(); err != nil {
		return err
	}
	return c.client.Del(ctx, c.keyByTelegramID(u.TelegramID)).Err()
}

// Directory resolves users by Telegram id through the cache before the
// repository, priming the cache on a miss. It backs the notification
// dispatcher's chat-endpoint lookups. cache may be nil, in which case every
// lookup goes to the repository.
type Directory struct {
	repo  repository.UserRepository
	cache *UserCache
}

func NewDirectory(repo repository.UserRepository, cache *UserCache) *Directory {
	return &Directory{repo: repo, cache: cache}
}

func (d *Directory) GetByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	if d.cache != nil {
		if u, err := d.cache.GetByTelegramID(ctx, telegramID); err == nil {
			return u, nil
		}
	}

	u, err := d.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	if d.cache != nil {
		if err := d.cache.Set(ctx, u); err != nil {
			logger.Warn().Err(err).Str("telegram_id", telegramID).Msg("failed to cache user")
		}
	}
	return u, nil
}
