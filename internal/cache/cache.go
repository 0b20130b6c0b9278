// Package cache 包裝選用的 Redis 連線，只供健康檢查使用
package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Cache 定義健康檢查需要的 Redis 操作
// 方便測試時替換 FakeCache 實作
type Cache interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type FakeCache struct {
	PingFn  func(ctx context.Context) *redis.StatusCmd
	CloseFn func() error
}

// Ping 執行 Fake 設定或 panic
func (f *FakeCache) Ping(ctx context.Context) *redis.StatusCmd {
	if f.PingFn != nil {
		return f.PingFn(ctx)
	}
	panic("unexpected Ping")
}

// Close 執行 Fake 設定或 no-op
func (f *FakeCache) Close() error {
	if f.CloseFn != nil {
		return f.CloseFn()
	}
	return nil
}
