// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faq_questions_total",
			Help: "Total number of questions answered, by match outcome",
		},
		[]string{"outcome"},
	)

	QuestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "faq_question_duration_seconds",
			Help: "Duration of the query pipeline in seconds",
		},
		[]string{"outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faq_knowledge_cache_lookups_total",
			Help: "Knowledge snapshot cache lookups, by result (hit, miss)",
		},
		[]string{"result"},
	)

	SourcePagesFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faq_knowledge_source_pages_total",
			Help: "Total number of pages fetched from the knowledge source",
		},
	)

	ClassifierResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faq_classifier_results_total",
			Help: "Classifier outcomes after snapshot validation",
		},
		[]string{"kind"},
	)

	ValidationMismatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "faq_classifier_validation_mismatches_total",
			Help: "Classifier-claimed questions rejected by snapshot validation",
		},
	)

	AuditWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "faq_audit_writes_total",
			Help: "Audit record writes, by status (success, error)",
		},
		[]string{"backend", "status"},
	)
)
