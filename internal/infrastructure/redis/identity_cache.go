package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/wellbot/wellbot-backend/internal/application/auth"
	"github.com/wellbot/wellbot-backend/internal/domain"
	"github.com/wellbot/wellbot-backend/internal/logger"
)

// CachedIdentityReader decorates an auth.IdentityReader with a Redis cache.
// - Read path: Redis -> store fallback -> Redis set
// - Misses and Redis errors never fail authentication
// - Not-found results are not cached
// Identities are immutable once registered, so entries only expire by TTL.
// A user row removed from the store keeps authenticating for up to ttl; any
// future delete path must also remove the identity:<email> key.
type CachedIdentityReader struct {
	inner   auth.IdentityReader
	rdb     *goredis.Client
	ttl     time.Duration
	keyPref string
}

func NewCachedIdentityReader(inner auth.IdentityReader, client *Client, ttl time.Duration) *CachedIdentityReader {
	var rdb *goredis.Client
	if client != nil {
		rdb = client.rdb
	}
	return &CachedIdentityReader{
		inner:   inner,
		rdb:     rdb,
		ttl:     ttl,
		keyPref: "identity:",
	}
}

func (c *CachedIdentityReader) key(email string) string {
	return c.keyPref + email
}

func (c *CachedIdentityReader) GetIdentityByEmail(ctx context.Context, email string) (domain.Identity, error) {
	// 1) Try Redis
	if c.rdb != nil {
		raw, err := c.rdb.Get(ctx, c.key(email)).Bytes()
		switch {
		case err == nil:
			var id domain.Identity
			if jerr := json.Unmarshal(raw, &id); jerr == nil && id.UserID != "" {
				return id, nil
			}
			// corrupt entry -> fall back to store
		case !errors.Is(err, goredis.Nil):
			logger.WithCtx(ctx).Debug().Err(domain.ErrRedisUnavailable(err)).Msg("identity cache read failed")
		}
	}

	// 2) Store is the source of truth
	id, err := c.inner.GetIdentityByEmail(ctx, email)
	if err != nil {
		return domain.Identity{}, err
	}

	// 3) Best-effort cache fill
	if c.rdb != nil {
		if b, jerr := json.Marshal(id); jerr == nil {
			_ = c.rdb.Set(ctx, c.key(email), b, c.ttl).Err()
		}
	}

	return id, nil
}
