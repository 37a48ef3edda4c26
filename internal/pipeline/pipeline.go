// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"faq-service/internal/audit"
	"faq-service/internal/common/logger"
	"faq-service/internal/common/metrics"
	"faq-service/internal/common/observability"
	"faq-service/internal/models"
)

// Store serves the current knowledge snapshot.
type Store interface {
	Get(ctx context.Context) models.KnowledgeSnapshot
}

// Classifier matches a question against a snapshot.
type Classifier interface {
	Classify(ctx context.Context, question string, snapshot models.KnowledgeSnapshot) models.MatchResult
}

// Composer builds the response payload from a match result.
type Composer func(result models.MatchResult, snapshot models.KnowledgeSnapshot) models.ComposedAnswer

// Pipeline resolves one question end to end: snapshot, classification,
// composition, and the fire-and-forget audit record.
type Pipeline struct {
	store      Store
	classifier Classifier
	compose    Composer
	dispatcher *audit.Dispatcher
	obs        *observability.Observability
	logger     logger.Logger
}

func New(store Store, classifier Classifier, compose Composer, dispatcher *audit.Dispatcher, obs *observability.Observability, log logger.Logger) *Pipeline {
	return &Pipeline{
		store:      store,
		classifier: classifier,
		compose:    compose,
		dispatcher: dispatcher,
		obs:        obs,
		logger:     log,
	}
}

// Answer resolves a question. Degraded states (empty knowledge base, failed
// classification) still produce a well-formed payload; Answer itself does not
// fail.
func (p *Pipeline) Answer(ctx context.Context, question string) models.ComposedAnswer {
	start := time.Now()
	queryID := uuid.New().String()

	log := p.logger.With(map[string]interface{}{"queryId": queryID})
	log.Info("resolving question", map[string]interface{}{
		"length": len(question),
	})

	snapshot := p.store.Get(ctx)

	var result models.MatchResult
	if snapshot.IsEmpty() {
		log.Warn("knowledge snapshot is empty, skipping classification", nil)
		result = models.NoMatch()
	} else {
		result = p.classifier.Classify(ctx, question, snapshot)
	}

	answer := p.compose(result, snapshot)

	outcome := string(result.Kind)
	metrics.QuestionsTotal.WithLabelValues(outcome).Inc()
	metrics.QuestionDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if p.obs != nil {
		p.obs.RecordQueryProcessed(ctx, outcome)
		p.obs.RecordQueryDuration(ctx, time.Since(start), outcome)
	}

	p.dispatcher.Dispatch(audit.Record{
		ID:        queryID,
		Question:  question,
		Found:     result.Found(),
		MatchedOn: describeMatch(result),
		Timestamp: time.Now().UTC(),
	})

	log.Info("question resolved", map[string]interface{}{
		"outcome":    outcome,
		"durationMs": time.Since(start).Milliseconds(),
	})
	return answer
}

func describeMatch(result models.MatchResult) string {
	switch result.Kind {
	case models.MatchExact:
		return fmt.Sprintf("exact match: %s", result.Questions[0])
	case models.MatchRelated:
		return fmt.Sprintf("related match: %s", strings.Join(result.Questions, ", "))
	}
	return "no match"
}
