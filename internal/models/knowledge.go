// internal/models/knowledge.go
package models

import (
	"strings"
	"time"
)

// QAEntry is one knowledge-base item. Question acts as the natural unique
// key within a snapshot; attachment fields are optional and independent
// (empty string means absent). Entries are immutable once snapshotted.
type QAEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	ImageURL string `json:"imageUrl,omitempty"`
	PDFURL   string `json:"pdfUrl,omitempty"`
	LinkURL  string `json:"linkUrl,omitempty"`
	LinkText string `json:"linkText,omitempty"`
}

// HasQuestion reports whether the entry carries a non-blank question.
func (e QAEntry) HasQuestion() bool {
	return strings.TrimSpace(e.Question) != ""
}

// KnowledgeSnapshot is an ordered sequence of entries captured from the
// knowledge source at one point in time. A snapshot is never partially
// updated; a newer snapshot replaces it wholesale.
type KnowledgeSnapshot struct {
	Entries    []QAEntry `json:"entries"`
	CapturedAt time.Time `json:"capturedAt"`
}

// IsEmpty reports whether the snapshot holds no entries.
func (s KnowledgeSnapshot) IsEmpty() bool {
	return len(s.Entries) == 0
}

// QuestionIndex maps each question to the index of its first occurrence.
// Duplicate question text is a data-quality concern of the source; lookups
// resolve to the first structural match.
func (s KnowledgeSnapshot) QuestionIndex() map[string]int {
	idx := make(map[string]int, len(s.Entries))
	for i, e := range s.Entries {
		if _, seen := idx[e.Question]; !seen {
			idx[e.Question] = i
		}
	}
	return idx
}

// EntryByQuestion returns the first entry whose question matches verbatim.
func (s KnowledgeSnapshot) EntryByQuestion(question string) (QAEntry, bool) {
	for _, e := range s.Entries {
		if e.Question == question {
			return e, true
		}
	}
	return QAEntry{}, false
}
