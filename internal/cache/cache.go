// Package cache はRedisクライアントの薄いラッパーです。
// 端末スコープの下書きスロットとクイズセッションの置き場に使う。
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache はRedisクライアントを保持します
type Cache struct {
	Client *redis.Client
}

// New はRedisへ接続し、疎通確認まで行います
func New(ctx context.Context, url string) (*Cache, error) {
	if url == "" {
		return nil, fmt.Errorf("cache URL is empty")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}

	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("pinging cache: %w", err)
	}

	return &Cache{Client: client}, nil
}

// Close はクライアントを閉じます
func (c *Cache) Close() error {
	return c.Client.Close()
}

// HealthCheck は接続が生きているか確認します
func (c *Cache) HealthCheck(ctx context.Context) error {
	return c.Client.Ping(ctx).Err()
}
