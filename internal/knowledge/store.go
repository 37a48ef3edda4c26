// internal/knowledge/store.go
package knowledge

import (
	"context"
	"sync/atomic"
	"time"

	"faq-service/internal/common/logger"
	"faq-service/internal/common/metrics"
	"faq-service/internal/models"
)

// AlertNotifier receives a notification when a knowledge refresh fails.
type AlertNotifier interface {
	NotifyRefreshFailure(ctx context.Context, cause error)
}

// Store is a TTL cache over a knowledge Source. Get serves the cached
// snapshot while it is fresh and refreshes it from the source once the TTL
// has elapsed. A failed or empty refresh keeps the previous snapshot, so
// callers always receive a usable (possibly stale, possibly empty) snapshot
// and never an error.
type Store struct {
	source Source
	ttl    time.Duration
	logger logger.Logger
	alerts AlertNotifier
	now    func() time.Time

	snap atomic.Pointer[models.KnowledgeSnapshot]
}

func NewStore(source Source, ttl time.Duration, log logger.Logger, alerts AlertNotifier) *Store {
	s := &Store{
		source: source,
		ttl:    ttl,
		logger: log,
		alerts: alerts,
		now:    time.Now,
	}
	s.snap.Store(&models.KnowledgeSnapshot{})
	return s
}

// WithClock overrides the time source, used by tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Get returns the current snapshot, refreshing it first if the TTL has
// elapsed since the last successful refresh. Concurrent callers past the TTL
// may each trigger a refresh; the last writer wins.
func (s *Store) Get(ctx context.Context) models.KnowledgeSnapshot {
	current := s.snap.Load()
	if s.now().Sub(current.CapturedAt) < s.ttl {
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return *current
	}
	metrics.CacheLookups.WithLabelValues("miss").Inc()

	entries, err := s.fetchAll(ctx)
	if err != nil {
		s.logger.WithError(err).Error("knowledge refresh failed, serving previous snapshot", map[string]interface{}{
			"cached_entries": len(current.Entries),
			"captured_at":    current.CapturedAt,
		})
		if s.alerts != nil {
			go s.alerts.NotifyRefreshFailure(context.WithoutCancel(ctx), err)
		}
		return *current
	}

	if len(entries) == 0 {
		s.logger.Warn("knowledge refresh returned no entries, serving previous snapshot", map[string]interface{}{
			"cached_entries": len(current.Entries),
		})
		return *current
	}

	fresh := &models.KnowledgeSnapshot{
		Entries:    entries,
		CapturedAt: s.now(),
	}
	s.snap.Store(fresh)

	s.logger.Info("knowledge snapshot refreshed", map[string]interface{}{
		"entries": len(entries),
	})
	return *fresh
}

func (s *Store) fetchAll(ctx context.Context) ([]models.QAEntry, error) {
	pages := NewPages(s.source)

	var entries []models.QAEntry
	for {
		page, err := pages.Next(ctx)
		if err != nil {
			return nil, err
		}
		if page == nil {
			break
		}
		metrics.SourcePagesFetched.Inc()
		for _, entry := range page.Entries {
			if entry.HasQuestion() {
				entries = append(entries, entry)
			}
		}
	}
	return entries, nil
}
