package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "session:revoked:"

// SessionRevoker はログアウト済みセッションの失効リストです。
// jtiクレーム単位で失効を記録し、トークンの残存期間が過ぎたら
// エントリを破棄してよい。
type SessionRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// memoryRevoker は単一プロセス用のインメモリ失効リストです
type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewMemoryRevoker() SessionRevoker {
	return &memoryRevoker{revoked: make(map[string]time.Time)}
}

func (r *memoryRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = time.Now().Add(ttl)
	return nil
}

func (r *memoryRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	expiresAt, ok := r.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiresAt) {
		delete(r.revoked, jti)
		return false, nil
	}
	return true, nil
}

// redisRevoker は複数インスタンス間で共有できる失効リストです
type redisRevoker struct {
	rdb *redis.Client
}

func NewRedisRevoker(rdb *redis.Client) SessionRevoker {
	return &redisRevoker{rdb: rdb}
}

func (r *redisRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redisRevoker.Revoke: %w", err)
	}
	return nil
}

func (r *redisRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.rdb.Exists(ctx, revokedKeyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("redisRevoker.IsRevoked: %w", err)
	}
	return n > 0, nil
}
