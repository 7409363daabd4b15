package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
	channel string
}

func NewClient(addr, password string, db int, channel string) *Client {
	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		channel: channel,
	}
}

// Wrap builds a Client around an existing redis connection (used with redismock).
func Wrap(rdb *redis.Client, channel string) *Client {
	return &Client{Client: rdb, channel: channel}
}

// MirrorEvent сообщение о том, что публичный JSON был пересобран
type MirrorEvent struct {
	Published   int       `json:"published"`
	Path        string    `json:"path"`
	GeneratedAt time.Time `json:"generated_at"`
}

// NotifyMirrorUpdated publishes ev on the configured channel so a static site
// builder can pick up the new projects.json.
func (c *Client) NotifyMirrorUpdated(ctx context.Context, ev MirrorEvent) error {
	const op = "storage.redis.NotifyMirrorUpdated"

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := c.Publish(ctx, c.channel, payload).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (c *Client) Channel() string {
	return c.channel
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
