// internal/classifier/prompt.go
package classifier

import (
	"fmt"
	"strings"

	"faq-service/internal/models"
)

// buildPrompt embeds the entire knowledge base and the user question into a
// single classification prompt with a three-outcome response protocol.
func buildPrompt(question string, snapshot models.KnowledgeSnapshot) string {
	var parts []string

	parts = append(parts, "You are a classification engine for an FAQ knowledge base. Match the user's question against the knowledge entries below.")

	parts = append(parts, "\nKnowledge Entries:")
	for i, entry := range snapshot.Entries {
		parts = append(parts, fmt.Sprintf("%d. Question: %s", i+1, entry.Question))
		parts = append(parts, fmt.Sprintf("   Answer: %s", entry.Answer))
	}

	parts = append(parts, fmt.Sprintf("\nUser Question: %s", question))

	parts = append(parts, "\nInstructions:")
	parts = append(parts, fmt.Sprintf("- If exactly one entry's question is semantically near-identical to the user question, or directly answers it, respond with %s followed by that entry's question text, copied verbatim.", MarkerExact))
	parts = append(parts, fmt.Sprintf("- Otherwise, if one or more entries are relevant to the user question, respond with %s followed by every matched entry's question text, copied verbatim and joined with %s.", MarkerRelated, RelatedDelimiter))
	parts = append(parts, fmt.Sprintf("- Otherwise, respond with exactly %s.", MarkerNone))
	parts = append(parts, "- Respond with a single line and nothing else. Never invent question text.")

	parts = append(parts, "\nResponse:")

	return strings.Join(parts, "\n")
}
