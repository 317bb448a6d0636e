package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/wellbot/wellbot-backend/internal/application/auth"
)

const (
	DefaultExchange = "wellbot.events"

	RoutingKeyUserRegistered = "account.user.registered"

	appID = "wellbot-backend"

	// Upper bound on dialing plus waiting for the broker to confirm one message.
	confirmTimeout = 2 * time.Second

	redialBackoff = 5 * time.Second
)

var (
	errNotConfirming = errors.New("rabbitmq channel is not in confirm mode")
	errBrokerDown    = errors.New("rabbitmq unavailable")
)

// confirmation is satisfied by *amqp.DeferredConfirmation.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type channel interface {
	publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
	IsClosed() bool
	Close() error
}

type amqpChannel struct{ *amqp.Channel }

func (c amqpChannel) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errNotConfirming
	}
	return dc, nil
}

// open dials the broker, declares the exchange and enables confirms.
// Replaced in tests.
var open = dialBroker

func dialBroker(ctx context.Context, url, exchange string) (io.Closer, channel, error) {
	conn, err := amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      contextDialer(ctx),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	fail := func(step string, err error) (io.Closer, channel, error) {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq %s: %w", step, err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fail("exchange declare", err)
	}
	if err := ch.Confirm(false); err != nil {
		return fail("confirm mode", err)
	}
	return conn, amqpChannel{ch}, nil
}

// contextDialer bounds the TCP connect and the AMQP handshake by ctx.
// amqp091 clears the deadline once the connection is open.
func contextDialer(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		deadline, ok := ctx.Deadline()
		if !ok {
			deadline = time.Now().Add(confirmTimeout)
		}
		d := net.Dialer{Deadline: deadline}
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

// Publisher sends account events to a durable topic exchange and waits for
// the broker's confirm. One channel is shared and guarded by mu; a broken
// channel is dropped and reopened on the next publish.
type Publisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn io.Closer
	ch   channel

	// After a failed dial, publishes fail fast until this time.
	redialAt time.Time
}

// NewPublisher connects eagerly so misconfiguration surfaces at startup.
func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	p := &Publisher{url: url, exchange: exchange}

	ctx, cancel := context.WithTimeout(context.Background(), confirmTimeout)
	defer cancel()
	if err := p.reopen(ctx); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Publisher) Exchange() string { return p.exchange }

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.drop()
	return nil
}

func (p *Publisher) PublishUserRegistered(ctx context.Context, evt auth.UserRegisteredEvent) error {
	return p.send(ctx, RoutingKeyUserRegistered, evt)
}

func (p *Publisher) send(ctx context.Context, key string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         key,
		AppId:        appID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	ctx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		if err := p.reopen(ctx); err != nil {
			return err
		}
	}

	conf, err := p.ch.publish(ctx, p.exchange, key, msg)
	if err != nil {
		p.drop()
		return fmt.Errorf("rabbitmq publish %s: %w", key, err)
	}

	acked, err := conf.WaitContext(ctx)
	switch {
	case err != nil:
		return fmt.Errorf("rabbitmq confirm %s: %w", key, err)
	case !acked:
		return fmt.Errorf("rabbitmq nack: key=%s id=%s", key, msg.MessageId)
	}
	return nil
}

// reopen must be called with mu held.
func (p *Publisher) reopen(ctx context.Context) error {
	p.drop()
	if now := time.Now(); now.Before(p.redialAt) {
		return fmt.Errorf("%w: retry in %s", errBrokerDown, p.redialAt.Sub(now).Round(time.Millisecond))
	}
	conn, ch, err := open(ctx, p.url, p.exchange)
	if err != nil {
		p.redialAt = time.Now().Add(redialBackoff)
		return err
	}
	p.conn, p.ch = conn, ch
	p.redialAt = time.Time{}
	return nil
}

func (p *Publisher) drop() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
