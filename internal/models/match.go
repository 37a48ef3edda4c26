// internal/models/match.go
package models

// MatchKind tags the outcome of a classification.
type MatchKind string

const (
	MatchExact   MatchKind = "exact"
	MatchRelated MatchKind = "related"
	MatchNone    MatchKind = "none"
)

// MatchResult is the validated outcome of one classifier invocation.
// Invariant: every question in Questions exists verbatim in the snapshot
// that produced the result. Exact carries exactly one question, Related a
// non-empty ordered list (classifier order), None carries nil.
type MatchResult struct {
	Kind      MatchKind `json:"kind"`
	Questions []string  `json:"questions,omitempty"`
}

// NoMatch is the degraded result used for classifier failures, unrecognized
// response shapes, and claims that fail snapshot validation.
func NoMatch() MatchResult {
	return MatchResult{Kind: MatchNone}
}

// ExactMatch wraps a single validated question.
func ExactMatch(question string) MatchResult {
	return MatchResult{Kind: MatchExact, Questions: []string{question}}
}

// RelatedMatch wraps an ordered list of validated questions.
func RelatedMatch(questions []string) MatchResult {
	return MatchResult{Kind: MatchRelated, Questions: questions}
}

// Found reports whether the result names at least one knowledge entry.
func (r MatchResult) Found() bool {
	return r.Kind != MatchNone
}
