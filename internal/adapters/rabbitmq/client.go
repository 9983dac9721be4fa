// Package rabbitmq connects the order pipeline to the message bus.
// It provides a resilient client with automatic reconnect, the durable
// queue topology, a publisher for fulfillment envelopes and the consumer
// that drives fulfillment processing.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology of the fulfillment pipeline. Declarations are idempotent and
// re-run on every (re)connect, so either process may start first.
const (
	Exchange   = "orders"
	RoutingKey = "order.created"
	Queue      = "order-created"

	DLXExchange = "orders.dlx"
	DLQQueue    = "order-created.dlq"
)

const (
	dialTimeout    = 10 * time.Second
	heartbeat      = 10 * time.Second
	publishTimeout = 5 * time.Second
	maxBackoff     = 30 * time.Second
)

// Client is a resilient RabbitMQ connector with auto-reconnect and topology
// setup. Create it with Connect and release it with Close.
type Client struct {
	url    string
	logger *slog.Logger

	mu      sync.RWMutex
	conn    *amqp.Connection
	pubChan *amqp.Channel

	closed    chan struct{}
	reconnect chan struct{}
}

// Connect establishes the broker connection, declares the topology and
// starts a background watcher that reconnects on failures.
func Connect(ctx context.Context, url string, logger *slog.Logger) (*Client, error) {
	client := &Client{
		url:       url,
		logger:    logger.With(slog.String("component", "rabbitmq")),
		closed:    make(chan struct{}),
		reconnect: make(chan struct{}, 1),
	}

	// Initial connect is a single attempt; retries happen in the watcher.
	if err := client.connectOnce(ctx); err != nil {
		return nil, err
	}

	go client.watch()

	return client, nil
}

// NewConsumerChannel returns a fresh channel with prefetch (QoS) applied.
func (client *Client) NewConsumerChannel(prefetch int) (*amqp.Channel, error) {
	client.mu.RLock()
	conn := client.conn
	client.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return nil, errors.New("rabbitmq: connection is not ready")
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	if prefetch > 0 {
		if err = ch.Qos(prefetch, 0, false); err != nil {
			_ = ch.Close()
			return nil, err
		}
	}

	return ch, nil
}

// PublishPersistent publishes a persistent JSON message and waits for the
// broker's publisher confirm, so a nil return means the broker owns the
// message.
func (client *Client) PublishPersistent(ctx context.Context, routingKey string, body []byte) error {
	client.mu.RLock()
	conn := client.conn
	ch := client.pubChan
	client.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return errors.New("rabbitmq: connection is not open")
	}
	if ch == nil || ch.IsClosed() {
		return errors.New("rabbitmq: publish channel is not open")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	confirmation, err := ch.PublishWithDeferredConfirmWithContext(ctx,
		Exchange, routingKey, false, false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Timestamp:    time.Now().UTC(),
			Body:         body,
		})
	if err != nil {
		return err
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return errors.New("rabbitmq: broker nacked publish")
	}

	return nil
}

// Ping checks connectivity by dialing TCP to the broker host.
func (client *Client) Ping(timeout time.Duration) error {
	client.mu.RLock()
	conn := client.conn
	url := client.url
	client.mu.RUnlock()

	if conn == nil || conn.IsClosed() {
		return errors.New("rabbitmq: no connection")
	}

	u, err := amqp.ParseURI(url)
	if err != nil {
		return fmt.Errorf("rabbitmq: bad url: %w", err)
	}
	addr := net.JoinHostPort(u.Host, fmt.Sprintf("%d", u.Port))

	d := net.Dialer{Timeout: timeout}
	c, err := d.Dial("tcp", addr)
	if err != nil {
		return err
	}

	_ = c.Close()
	return nil
}

// Close stops the watcher and closes AMQP resources.
func (client *Client) Close() {
	select {
	case <-client.closed:
	default:
		close(client.closed)
	}

	client.mu.Lock()
	if client.pubChan != nil {
		_ = client.pubChan.Close()
		client.pubChan = nil
	}
	if client.conn != nil {
		_ = client.conn.Close()
		client.conn = nil
	}
	client.mu.Unlock()
}

// connectOnce tries to connect and set up topology once.
func (client *Client) connectOnce(ctx context.Context) error {
	start := time.Now().UTC()

	conn, err := amqp.DialConfig(client.url, amqp.Config{
		Heartbeat: heartbeat,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(dialTimeout),
	})
	if err != nil {
		return err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}

	if err = ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	if err = declareTopology(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return err
	}

	client.mu.Lock()
	client.conn = conn
	if client.pubChan != nil {
		_ = client.pubChan.Close()
	}
	client.pubChan = ch
	client.mu.Unlock()

	// Either the connection or the publish channel closing triggers reconnect.
	go func() {
		connClosed := conn.NotifyClose(make(chan *amqp.Error, 1))
		chClosed := ch.NotifyClose(make(chan *amqp.Error, 1))
		select {
		case <-client.closed:
			return
		case <-connClosed:
		case <-chClosed:
		}

		select {
		case client.reconnect <- struct{}{}:
		default:
		}
	}()

	client.logger.InfoContext(ctx, "connected to rabbitmq",
		slog.String("exchange", Exchange),
		slog.String("queue", Queue),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}

// watch runs in background and attempts reconnects with exponential backoff.
func (client *Client) watch() {
	backoff := time.Second
	for {
		select {
		case <-client.closed:
			return
		case <-client.reconnect:
			for {
				select {
				case <-client.closed:
					return
				default:
				}

				ctx, cancel := context.WithTimeout(context.Background(), maxBackoff)
				err := client.connectOnce(ctx)
				cancel()

				if err == nil {
					backoff = time.Second
					client.logger.Info("reconnected to rabbitmq")
					break
				}

				client.logger.Error("rabbitmq reconnect failed",
					slog.Any("error", err),
					slog.Duration("retry_in", backoff),
				)

				time.Sleep(backoff)
				if backoff < maxBackoff {
					backoff *= 2
					if backoff > maxBackoff {
						backoff = maxBackoff
					}
				}
			}
		}
	}
}

// declareTopology declares the exchange, the fulfillment queue and its
// dead-letter pair. Malformed deliveries rejected without requeue land on
// the DLQ instead of looping forever.
func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(Exchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := ch.QueueDeclare(Queue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": DLXExchange,
	}); err != nil {
		return err
	}
	if err := ch.QueueBind(Queue, RoutingKey, Exchange, false, nil); err != nil {
		return err
	}

	if err := ch.ExchangeDeclare(DLXExchange, "direct", true, false, false, false, nil); err != nil {
		return err
	}
	if _, err := ch.QueueDeclare(DLQQueue, true, false, false, false, nil); err != nil {
		return err
	}
	if err := ch.QueueBind(DLQQueue, RoutingKey, DLXExchange, false, nil); err != nil {
		return err
	}

	return nil
}
