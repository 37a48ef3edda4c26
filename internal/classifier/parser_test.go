package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faq-service/internal/models"
)

func testSnapshot() models.KnowledgeSnapshot {
	return models.KnowledgeSnapshot{
		Entries: []models.QAEntry{
			{Question: "How do I reset my password?", Answer: "Use the reset link."},
			{Question: "Where are invoices?", Answer: "Settings > Billing."},
			{Question: "What are the plan limits?", Answer: "See the plans page."},
		},
	}
}

func TestParseResponse(t *testing.T) {
	snapshot := testSnapshot()

	tests := []struct {
		name     string
		raw      string
		expected models.MatchResult
		wantErr  bool
	}{
		{
			name:     "exact match",
			raw:      "EXACT_MATCH::How do I reset my password?",
			expected: models.ExactMatch("How do I reset my password?"),
		},
		{
			name:     "exact match with surrounding whitespace",
			raw:      "  EXACT_MATCH::  Where are invoices?  \n",
			expected: models.ExactMatch("Where are invoices?"),
		},
		{
			name:     "exact match unknown question",
			raw:      "EXACT_MATCH::How do I delete my account?",
			expected: models.NoMatch(),
			wantErr:  true,
		},
		{
			name:     "related match single question",
			raw:      "RELATED_MATCH::Where are invoices?",
			expected: models.RelatedMatch([]string{"Where are invoices?"}),
		},
		{
			name: "related match preserves classifier order",
			raw:  "RELATED_MATCH::What are the plan limits?|||How do I reset my password?",
			expected: models.RelatedMatch([]string{
				"What are the plan limits?",
				"How do I reset my password?",
			}),
		},
		{
			name:     "related match drops unvalidated questions",
			raw:      "RELATED_MATCH::Where are invoices?|||Made up question",
			expected: models.RelatedMatch([]string{"Where are invoices?"}),
		},
		{
			name:     "related match with all questions unknown",
			raw:      "RELATED_MATCH::Made up|||Also made up",
			expected: models.NoMatch(),
			wantErr:  true,
		},
		{
			name:     "related match delimiter only",
			raw:      "RELATED_MATCH::|||",
			expected: models.NoMatch(),
			wantErr:  true,
		},
		{
			name:     "no match marker",
			raw:      "NO_MATCH",
			expected: models.NoMatch(),
		},
		{
			name:     "no match marker with whitespace",
			raw:      "\n NO_MATCH \n",
			expected: models.NoMatch(),
		},
		{
			name:     "free-form answer instead of marker",
			raw:      "The user should reset their password via the link.",
			expected: models.NoMatch(),
			wantErr:  true,
		},
		{
			name:     "empty response",
			raw:      "",
			expected: models.NoMatch(),
			wantErr:  true,
		},
		{
			name:     "no match marker with trailing commentary",
			raw:      "NO_MATCH because nothing fits",
			expected: models.NoMatch(),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseResponse(tt.raw, snapshot)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseResponseEmptySnapshot(t *testing.T) {
	result, err := ParseResponse("EXACT_MATCH::anything", models.KnowledgeSnapshot{})
	require.Error(t, err)
	assert.Equal(t, models.NoMatch(), result)
}
