package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faq-service/internal/models"
)

func composerSnapshot() models.KnowledgeSnapshot {
	return models.KnowledgeSnapshot{
		Entries: []models.QAEntry{
			{
				Question: "How do I reset my password?",
				Answer:   "Use the reset link.",
				ImageURL: "https://img.example.com/reset.png",
				PDFURL:   "https://files.example.com/reset.pdf",
			},
			{
				Question: "Where are invoices?",
				Answer:   "Settings > Billing.",
				ImageURL: "https://img.example.com/billing.png",
				LinkURL:  "https://example.com/billing",
				LinkText: "Billing docs",
			},
		},
	}
}

func TestComposeExactMatch(t *testing.T) {
	snapshot := composerSnapshot()

	answer := Compose(models.ExactMatch("How do I reset my password?"), snapshot)

	assert.Equal(t, "Use the reset link.", answer.Answer)
	assert.Equal(t, "https://img.example.com/reset.png", answer.ImageURL)
	assert.Equal(t, "https://files.example.com/reset.pdf", answer.PDFURL)
	assert.Empty(t, answer.LinkURL)
	assert.True(t, answer.AIAssisted)
}

func TestComposeRelatedMatch(t *testing.T) {
	snapshot := composerSnapshot()

	answer := Compose(models.RelatedMatch([]string{
		"Where are invoices?",
		"How do I reset my password?",
	}), snapshot)

	expected := "• Where are invoices?\nSettings > Billing.\n\n• How do I reset my password?\nUse the reset link."
	assert.Equal(t, expected, answer.Answer)
	assert.True(t, answer.AIAssisted)
}

func TestComposeRelatedMatchAttachmentsFromFirstEntryOnly(t *testing.T) {
	snapshot := composerSnapshot()

	answer := Compose(models.RelatedMatch([]string{
		"Where are invoices?",
		"How do I reset my password?",
	}), snapshot)

	assert.Equal(t, "https://img.example.com/billing.png", answer.ImageURL)
	assert.Equal(t, "https://example.com/billing", answer.LinkURL)
	assert.Equal(t, "Billing docs", answer.LinkText)
	assert.Empty(t, answer.PDFURL, "later entries' attachments are discarded")
}

func TestComposeNoMatch(t *testing.T) {
	answer := Compose(models.NoMatch(), composerSnapshot())

	assert.Equal(t, FallbackAnswer, answer.Answer)
	assert.Empty(t, answer.ImageURL)
	assert.Empty(t, answer.PDFURL)
	assert.Empty(t, answer.LinkURL)
	assert.Empty(t, answer.LinkText)
	assert.True(t, answer.AIAssisted)
}

func TestComposeMissingEntryFallsBack(t *testing.T) {
	answer := Compose(models.ExactMatch("removed question"), composerSnapshot())
	assert.Equal(t, FallbackAnswer, answer.Answer)

	answer = Compose(models.RelatedMatch([]string{"removed question"}), composerSnapshot())
	assert.Equal(t, FallbackAnswer, answer.Answer)
}

func TestComposeIdempotent(t *testing.T) {
	snapshot := composerSnapshot()
	result := models.RelatedMatch([]string{"Where are invoices?", "How do I reset my password?"})

	first := Compose(result, snapshot)
	second := Compose(result, snapshot)
	require.Equal(t, first, second)
}
