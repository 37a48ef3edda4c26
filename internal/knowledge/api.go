// internal/knowledge/api.go
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"faq-service/internal/common/config"
	httpclient "faq-service/internal/common/http"
	"faq-service/internal/models"
)

// APISource fetches entries from the hosted knowledge-base API: a paginated
// record query endpoint filtered to records with a non-empty question field.
type APISource struct {
	baseURL    string
	token      string
	databaseID string
	version    string
	httpClient *httpclient.Client
}

func NewAPISource(cfg config.APISourceConfig) *APISource {
	return &APISource{
		baseURL:    cfg.BaseURL,
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		version:    cfg.Version,
		httpClient: httpclient.NewClient(config.GetDuration(cfg.Timeout)),
	}
}

type apiQueryRequest struct {
	PageSize    int             `json:"page_size"`
	StartCursor string          `json:"start_cursor,omitempty"`
	Filter      *apiQueryFilter `json:"filter,omitempty"`
}

type apiQueryFilter struct {
	Field    string `json:"field"`
	NotEmpty bool   `json:"not_empty"`
}

type apiRecord struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	ImageURL string `json:"image_url"`
	PDFURL   string `json:"pdf_url"`
	LinkURL  string `json:"link_url"`
	LinkText string `json:"link_text"`
}

type apiQueryResponse struct {
	Records    []apiRecord `json:"records"`
	NextCursor string      `json:"next_cursor"`
	HasMore    bool        `json:"has_more"`
}

// FetchPage requests one page of records, filtered server-side to records
// whose question field is non-empty.
func (s *APISource) FetchPage(ctx context.Context, cursor string) (Page, error) {
	url := fmt.Sprintf("%s/databases/%s/query", s.baseURL, s.databaseID)

	payload := apiQueryRequest{
		PageSize:    PageSize,
		StartCursor: cursor,
		Filter: &apiQueryFilter{
			Field:    "question",
			NotEmpty: true,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return Page{}, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	req.Header.Set("X-API-Version", s.version)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return Page{}, fmt.Errorf("query failed (status %d): %s", resp.StatusCode, string(body))
	}

	var queryResp apiQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&queryResp); err != nil {
		return Page{}, fmt.Errorf("failed to decode response: %w", err)
	}

	entries := make([]models.QAEntry, 0, len(queryResp.Records))
	for _, rec := range queryResp.Records {
		entries = append(entries, models.QAEntry{
			Question: rec.Question,
			Answer:   rec.Answer,
			ImageURL: rec.ImageURL,
			PDFURL:   rec.PDFURL,
			LinkURL:  rec.LinkURL,
			LinkText: rec.LinkText,
		})
	}

	return Page{
		Entries:    entries,
		NextCursor: queryResp.NextCursor,
		HasMore:    queryResp.HasMore,
	}, nil
}

var _ Source = (*APISource)(nil)
