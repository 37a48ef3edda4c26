package knowledge

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faq-service/internal/common/logger"
	"faq-service/internal/models"
)

type fakeSource struct {
	mu      sync.Mutex
	pages   []Page
	err     error
	fetches int
}

func (f *fakeSource) FetchPage(ctx context.Context, cursor string) (Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.err != nil {
		return Page{}, f.err
	}
	idx := 0
	if cursor != "" {
		for i, p := range f.pages {
			if p.NextCursor == cursor {
				idx = i + 1
				break
			}
		}
	}
	if idx >= len(f.pages) {
		return Page{}, nil
	}
	return f.pages[idx], nil
}

func (f *fakeSource) fetchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches
}

type fakeAlerts struct {
	mu     sync.Mutex
	causes []error
}

func (f *fakeAlerts) NotifyRefreshFailure(ctx context.Context, cause error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.causes = append(f.causes, cause)
}

func singlePageSource(entries ...models.QAEntry) *fakeSource {
	return &fakeSource{pages: []Page{{Entries: entries}}}
}

func TestStoreGetFreshSnapshotSkipsFetch(t *testing.T) {
	source := singlePageSource(models.QAEntry{Question: "How do I reset my password?", Answer: "Use the reset link."})
	store := NewStore(source, 10*time.Minute, logger.NewTestLogger(t), nil)

	base := time.Now()
	store.WithClock(func() time.Time { return base })

	first := store.Get(context.Background())
	require.Len(t, first.Entries, 1)
	assert.Equal(t, 1, source.fetchCount())

	store.WithClock(func() time.Time { return base.Add(5 * time.Minute) })

	second := store.Get(context.Background())
	assert.Equal(t, first.Entries, second.Entries)
	assert.Equal(t, 1, source.fetchCount(), "fresh snapshot must not hit the source")
}

func TestStoreGetRefreshesAfterTTL(t *testing.T) {
	source := singlePageSource(models.QAEntry{Question: "Q1", Answer: "A1"})
	store := NewStore(source, 10*time.Minute, logger.NewTestLogger(t), nil)

	base := time.Now()
	store.WithClock(func() time.Time { return base })
	store.Get(context.Background())
	assert.Equal(t, 1, source.fetchCount())

	store.WithClock(func() time.Time { return base.Add(11 * time.Minute) })
	snap := store.Get(context.Background())
	assert.Equal(t, 2, source.fetchCount())
	assert.Equal(t, base.Add(11*time.Minute), snap.CapturedAt)
}

func TestStoreGetServesStaleOnRefreshError(t *testing.T) {
	source := singlePageSource(models.QAEntry{Question: "Q1", Answer: "A1"})
	alerts := &fakeAlerts{}
	store := NewStore(source, 10*time.Minute, logger.NewNoOpLogger(), alerts)

	base := time.Now()
	store.WithClock(func() time.Time { return base })
	first := store.Get(context.Background())
	require.Len(t, first.Entries, 1)

	source.mu.Lock()
	source.err = errors.New("source unavailable")
	source.mu.Unlock()

	store.WithClock(func() time.Time { return base.Add(11 * time.Minute) })
	stale := store.Get(context.Background())
	assert.Equal(t, first.Entries, stale.Entries)
	assert.Equal(t, first.CapturedAt, stale.CapturedAt)

	assert.Eventually(t, func() bool {
		alerts.mu.Lock()
		defer alerts.mu.Unlock()
		return len(alerts.causes) == 1
	}, time.Second, 10*time.Millisecond, "refresh failure should be reported")
}

func TestStoreGetRetriesEveryCallWhileExpired(t *testing.T) {
	source := &fakeSource{err: errors.New("source unavailable")}
	store := NewStore(source, 10*time.Minute, logger.NewNoOpLogger(), nil)

	snap := store.Get(context.Background())
	assert.True(t, snap.IsEmpty())
	snap = store.Get(context.Background())
	assert.True(t, snap.IsEmpty())
	assert.Equal(t, 2, source.fetchCount(), "each call past the TTL attempts a refresh")
}

func TestStoreGetKeepsPreviousSnapshotOnEmptyRefresh(t *testing.T) {
	source := singlePageSource(models.QAEntry{Question: "Q1", Answer: "A1"})
	store := NewStore(source, 10*time.Minute, logger.NewNoOpLogger(), nil)

	base := time.Now()
	store.WithClock(func() time.Time { return base })
	first := store.Get(context.Background())
	require.Len(t, first.Entries, 1)

	source.mu.Lock()
	source.pages = []Page{{}}
	source.mu.Unlock()

	store.WithClock(func() time.Time { return base.Add(11 * time.Minute) })
	snap := store.Get(context.Background())
	assert.Equal(t, first.Entries, snap.Entries)
	assert.Equal(t, first.CapturedAt, snap.CapturedAt)
}

func TestStoreGetFiltersBlankQuestions(t *testing.T) {
	source := singlePageSource(
		models.QAEntry{Question: "Q1", Answer: "A1"},
		models.QAEntry{Question: "", Answer: "orphan answer"},
		models.QAEntry{Question: "   ", Answer: "whitespace question"},
		models.QAEntry{Question: "Q2", Answer: "A2"},
	)
	store := NewStore(source, time.Minute, logger.NewTestLogger(t), nil)

	snap := store.Get(context.Background())
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, "Q1", snap.Entries[0].Question)
	assert.Equal(t, "Q2", snap.Entries[1].Question)
}

func TestStoreGetWalksAllPages(t *testing.T) {
	source := &fakeSource{pages: []Page{
		{Entries: []models.QAEntry{{Question: "Q1", Answer: "A1"}}, NextCursor: "c1", HasMore: true},
		{Entries: []models.QAEntry{{Question: "Q2", Answer: "A2"}}, NextCursor: "c2", HasMore: true},
		{Entries: []models.QAEntry{{Question: "Q3", Answer: "A3"}}},
	}}
	store := NewStore(source, time.Minute, logger.NewTestLogger(t), nil)

	snap := store.Get(context.Background())
	require.Len(t, snap.Entries, 3)
	assert.Equal(t, 3, source.fetchCount())
}
