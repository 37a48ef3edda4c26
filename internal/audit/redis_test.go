package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisRecorder(t *testing.T, maxLen int64) (*RedisRecorder, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisRecorder(client, "faq:audit", maxLen), mr
}

func TestRedisRecorderWrite(t *testing.T) {
	recorder, mr := newTestRedisRecorder(t, 100)

	rec := Record{
		ID:        "q-1",
		Question:  "How do I reset my password?",
		Found:     true,
		MatchedOn: "exact match: How do I reset my password?",
		Timestamp: time.Now().UTC(),
	}
	require.NoError(t, recorder.Write(context.Background(), rec))

	items, err := mr.List("faq:audit")
	require.NoError(t, err)
	require.Len(t, items, 1)

	var stored Record
	require.NoError(t, json.Unmarshal([]byte(items[0]), &stored))
	assert.Equal(t, rec.ID, stored.ID)
	assert.Equal(t, rec.Question, stored.Question)
	assert.True(t, stored.Found)
}

func TestRedisRecorderWriteNewestFirstAndCapped(t *testing.T) {
	recorder, mr := newTestRedisRecorder(t, 3)

	for i := 1; i <= 5; i++ {
		require.NoError(t, recorder.Write(context.Background(), Record{
			ID:       fmt.Sprintf("q-%d", i),
			Question: fmt.Sprintf("question %d", i),
		}))
	}

	items, err := mr.List("faq:audit")
	require.NoError(t, err)
	require.Len(t, items, 3, "list is trimmed to the configured cap")

	var newest Record
	require.NoError(t, json.Unmarshal([]byte(items[0]), &newest))
	assert.Equal(t, "q-5", newest.ID)
}

func TestRedisRecorderWriteConnectionError(t *testing.T) {
	recorder, mr := newTestRedisRecorder(t, 100)
	mr.Close()

	err := recorder.Write(context.Background(), Record{ID: "q-1"})
	require.Error(t, err)
}

func TestRedisRecorderBackend(t *testing.T) {
	recorder, _ := newTestRedisRecorder(t, 100)
	assert.Equal(t, "redis", recorder.Backend())
}
