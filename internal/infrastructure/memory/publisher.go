package memory

import (
	"context"
	"sync/atomic"

	"github.com/wellbot/wellbot-backend/internal/application/auth"
	"github.com/wellbot/wellbot-backend/internal/logger"
)

// NoopPublisher stands in for the broker when RabbitMQ is not configured.
// Events are logged at debug level and counted.
type NoopPublisher struct {
	published atomic.Int64
}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (p *NoopPublisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	n := p.published.Add(1)
	logger.WithCtx(ctx).Debug().
		Str("event", "account.user.registered").
		Str("user_id", evt.UserID).
		Time("registered_at", evt.RegisteredAt).
		Int64("seq", n).
		Msg("event dropped: no broker configured")
	return nil
}

// Published reports how many events were handed to this publisher.
func (p *NoopPublisher) Published() int64 { return p.published.Load() }

func (p *NoopPublisher) Close() error { return nil }
