// internal/models/answer.go
package models

// AskRequest is the JSON body accepted by POST /api/ask.
type AskRequest struct {
	Question string `json:"question"`
}

// ComposedAnswer is the final response payload. Attachments are filled only
// from the designated source entry: the matched entry for an exact match,
// the first matched entry for a related match, never for no match.
// AIAssisted is true for every answer produced by the pipeline.
type ComposedAnswer struct {
	Answer     string `json:"answer"`
	ImageURL   string `json:"imageUrl,omitempty"`
	PDFURL     string `json:"pdfUrl,omitempty"`
	LinkURL    string `json:"linkUrl,omitempty"`
	LinkText   string `json:"linkText,omitempty"`
	AIAssisted bool   `json:"aiAssisted"`
}
