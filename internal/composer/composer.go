// internal/composer/composer.go
package composer

import (
	"fmt"
	"strings"

	"faq-service/internal/models"
)

// FallbackAnswer is returned whenever classification produced no usable match.
const FallbackAnswer = "I couldn't find a relevant answer to your question in the knowledge base."

// Compose turns a validated match result and the snapshot it was validated
// against into the response payload. It is deterministic and total over all
// three result kinds.
//
// For related matches the answer text stitches every matched entry together,
// but attachments come exclusively from the first matched entry. Later
// entries' attachments are discarded by policy so the payload carries at most
// one attachment set.
func Compose(result models.MatchResult, snapshot models.KnowledgeSnapshot) models.ComposedAnswer {
	switch result.Kind {
	case models.MatchExact:
		entry, ok := snapshot.EntryByQuestion(result.Questions[0])
		if !ok {
			return fallback()
		}
		return models.ComposedAnswer{
			Answer:     entry.Answer,
			ImageURL:   entry.ImageURL,
			PDFURL:     entry.PDFURL,
			LinkURL:    entry.LinkURL,
			LinkText:   entry.LinkText,
			AIAssisted: true,
		}

	case models.MatchRelated:
		var (
			sections []string
			first    *models.QAEntry
		)
		for _, question := range result.Questions {
			entry, ok := snapshot.EntryByQuestion(question)
			if !ok {
				continue
			}
			sections = append(sections, fmt.Sprintf("• %s\n%s", entry.Question, entry.Answer))
			if first == nil {
				e := entry
				first = &e
			}
		}
		if first == nil {
			return fallback()
		}
		return models.ComposedAnswer{
			Answer:     strings.Join(sections, "\n\n"),
			ImageURL:   first.ImageURL,
			PDFURL:     first.PDFURL,
			LinkURL:    first.LinkURL,
			LinkText:   first.LinkText,
			AIAssisted: true,
		}
	}

	return fallback()
}

func fallback() models.ComposedAnswer {
	return models.ComposedAnswer{
		Answer:     FallbackAnswer,
		AIAssisted: true,
	}
}
