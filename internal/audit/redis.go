// internal/audit/redis.go
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRecorder keeps audit records in a capped Redis list, newest first.
type RedisRecorder struct {
	client *redis.Client
	key    string
	maxLen int64
}

func NewRedisRecorder(client *redis.Client, key string, maxLen int64) *RedisRecorder {
	return &RedisRecorder{
		client: client,
		key:    key,
		maxLen: maxLen,
	}
}

func (r *RedisRecorder) Write(ctx context.Context, rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal audit record: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, data)
	pipe.LTrim(ctx, r.key, 0, r.maxLen-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to push audit record: %w", err)
	}
	return nil
}

func (r *RedisRecorder) Backend() string {
	return "redis"
}

var _ Recorder = (*RedisRecorder)(nil)
