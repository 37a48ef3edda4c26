package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
knowledge:
  source: api
  api:
    base_url: https://kb.example.com/v1
    database_id: kb-123
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, ":9090", cfg.Server.MetricsAddress)
	assert.Equal(t, 600000, cfg.Knowledge.CacheTTL)
	assert.Equal(t, "2022-06-28", cfg.Knowledge.API.Version)
	assert.Equal(t, "gpt-4o-mini", cfg.Classifier.Model)
	assert.Equal(t, "none", cfg.Audit.Backend)
	assert.Equal(t, "faq:audit", cfg.Audit.Redis.Key)
	assert.Equal(t, "faq-query-audit", cfg.Audit.Elasticsearch.Index)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFileValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "api source without base_url",
			content: `
knowledge:
  source: api
  api:
    database_id: kb-123
`,
			wantErr: "base_url",
		},
		{
			name: "postgres source without host",
			content: `
knowledge:
  source: postgres
  postgres:
    database: faq
    user: faq
`,
			wantErr: "host",
		},
		{
			name: "unknown knowledge source",
			content: `
knowledge:
  source: carrier-pigeon
`,
			wantErr: "knowledge.source",
		},
		{
			name: "redis audit without address",
			content: `
knowledge:
  source: api
  api:
    base_url: https://kb.example.com/v1
    database_id: kb-123
audit:
  backend: redis
`,
			wantErr: "audit.redis.address",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.content)
			_, err := LoadFromFile(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 600*time.Second, GetDuration(600000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
