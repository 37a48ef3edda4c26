// internal/classifier/classifier.go
package classifier

import (
	"context"

	"faq-service/internal/common/logger"
	"faq-service/internal/common/metrics"
	"faq-service/internal/models"
)

// Completer is a single-shot text completion backend.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Classifier matches a user question against a knowledge snapshot by asking
// a completion model to pick entries under a strict marker protocol, then
// validating everything the model claims against the snapshot.
type Classifier struct {
	completer Completer
	logger    logger.Logger
}

func New(completer Completer, log logger.Logger) *Classifier {
	return &Classifier{
		completer: completer,
		logger:    log,
	}
}

// Classify never returns an error: a provider failure or an unparseable
// response degrades to a no-match result.
func (c *Classifier) Classify(ctx context.Context, question string, snapshot models.KnowledgeSnapshot) models.MatchResult {
	prompt := buildPrompt(question, snapshot)

	raw, err := c.completer.Complete(ctx, prompt)
	if err != nil {
		c.logger.WithError(err).Warn("classification failed, treating as no match", map[string]interface{}{
			"question": question,
		})
		metrics.ClassifierResults.WithLabelValues(string(models.MatchNone)).Inc()
		return models.NoMatch()
	}

	result, err := ParseResponse(raw, snapshot)
	if err != nil {
		c.logger.WithError(err).Warn("classifier response rejected", map[string]interface{}{
			"question": question,
		})
	}

	metrics.ClassifierResults.WithLabelValues(string(result.Kind)).Inc()
	return result
}
