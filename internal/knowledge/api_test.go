package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"faq-service/internal/common/config"
)

func newTestAPISource(t *testing.T, handler http.HandlerFunc) *APISource {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewAPISource(config.APISourceConfig{
		BaseURL:    server.URL,
		Token:      "test-token",
		DatabaseID: "kb-123",
		Version:    "2022-06-28",
		Timeout:    5000,
	})
}

func TestAPISourceFetchPage(t *testing.T) {
	source := newTestAPISource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/databases/kb-123/query", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "2022-06-28", r.Header.Get("X-API-Version"))

		var req apiQueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, PageSize, req.PageSize)
		assert.Empty(t, req.StartCursor)
		require.NotNil(t, req.Filter)
		assert.Equal(t, "question", req.Filter.Field)

		json.NewEncoder(w).Encode(apiQueryResponse{
			Records: []apiRecord{
				{Question: "How do I export data?", Answer: "Use the export menu.", PDFURL: "https://files.example.com/export.pdf"},
				{Question: "What are the limits?", Answer: "See the plans page.", LinkURL: "https://example.com/plans", LinkText: "Plans"},
			},
			NextCursor: "cursor-2",
			HasMore:    true,
		})
	})

	page, err := source.FetchPage(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Entries, 2)
	assert.Equal(t, "How do I export data?", page.Entries[0].Question)
	assert.Equal(t, "https://files.example.com/export.pdf", page.Entries[0].PDFURL)
	assert.Equal(t, "Plans", page.Entries[1].LinkText)
	assert.Equal(t, "cursor-2", page.NextCursor)
	assert.True(t, page.HasMore)
}

func TestAPISourceFetchPagePassesCursor(t *testing.T) {
	source := newTestAPISource(t, func(w http.ResponseWriter, r *http.Request) {
		var req apiQueryRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "cursor-2", req.StartCursor)

		json.NewEncoder(w).Encode(apiQueryResponse{
			Records: []apiRecord{{Question: "Q3", Answer: "A3"}},
		})
	})

	page, err := source.FetchPage(context.Background(), "cursor-2")
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.NextCursor)
}

func TestAPISourceFetchPageErrorStatus(t *testing.T) {
	source := newTestAPISource(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	})

	_, err := source.FetchPage(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestAPISourceFetchPageInvalidJSON(t *testing.T) {
	source := newTestAPISource(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})

	_, err := source.FetchPage(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}
