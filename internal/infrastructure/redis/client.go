package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Cache lookups sit on the authentication path and fall back to the store on timeout.
const (
	dialTimeout = 2 * time.Second
	ioTimeout   = 300 * time.Millisecond
	pingTimeout = 2 * time.Second
)

// Client owns the go-redis connection pool shared by the cache adapters.
type Client struct {
	rdb  *goredis.Client
	addr string
}

func New(addr, password string, db int) *Client {
	return &Client{
		addr: addr,
		rdb: goredis.NewClient(&goredis.Options{
			Addr:         addr,
			Password:     password,
			DB:           db,
			DialTimeout:  dialTimeout,
			ReadTimeout:  ioTimeout,
			WriteTimeout: ioTimeout,
			MaxRetries:   1,
		}),
	}
}

func (c *Client) Addr() string { return c.addr }

// Ping checks connectivity, bounded by pingTimeout.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	return nil
}

func (c *Client) Close() error {
	return c.rdb.Close()
}
