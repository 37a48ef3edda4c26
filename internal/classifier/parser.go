// internal/classifier/parser.go
package classifier

import (
	"fmt"
	"strings"

	"faq-service/internal/common/metrics"
	"faq-service/internal/models"
)

// Marker protocol the model is instructed to answer with. Anything that does
// not start with one of these prefixes is a protocol violation.
const (
	MarkerExact      = "EXACT_MATCH::"
	MarkerRelated    = "RELATED_MATCH::"
	MarkerNone       = "NO_MATCH"
	RelatedDelimiter = "|||"
)

// ParseResponse turns a raw model response into a MatchResult. The model is
// untrusted input: every claimed question must exist verbatim in the snapshot
// or it is dropped. The returned error describes the protocol violation when
// the whole response had to be coerced to a no-match.
func ParseResponse(raw string, snapshot models.KnowledgeSnapshot) (models.MatchResult, error) {
	response := strings.TrimSpace(raw)
	index := snapshot.QuestionIndex()

	switch {
	case strings.HasPrefix(response, MarkerExact):
		question := strings.TrimSpace(strings.TrimPrefix(response, MarkerExact))
		if _, ok := index[question]; !ok {
			metrics.ValidationMismatches.Inc()
			return models.NoMatch(), fmt.Errorf("exact match names unknown question %q", question)
		}
		return models.ExactMatch(question), nil

	case strings.HasPrefix(response, MarkerRelated):
		var matched []string
		for _, piece := range strings.Split(strings.TrimPrefix(response, MarkerRelated), RelatedDelimiter) {
			question := strings.TrimSpace(piece)
			if question == "" {
				continue
			}
			if _, ok := index[question]; ok {
				matched = append(matched, question)
			} else {
				metrics.ValidationMismatches.Inc()
			}
		}
		if len(matched) == 0 {
			return models.NoMatch(), fmt.Errorf("related match names no known questions")
		}
		return models.RelatedMatch(matched), nil

	case response == MarkerNone:
		return models.NoMatch(), nil
	}

	return models.NoMatch(), fmt.Errorf("response does not follow the marker protocol: %q", truncate(response, 80))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
