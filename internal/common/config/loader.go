// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like CLASSIFIER_API_KEY
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when absent.
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries the usual locations so the service starts the same way
// from the repo root, cmd/server, and test directories.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig fills secrets from the environment when the config file
// left them empty.
func overrideEmptyConfig(cfg *Config) {
	if cfg.Classifier.APIKey == "" {
		if val := os.Getenv("CLASSIFIER_API_KEY"); val != "" {
			cfg.Classifier.APIKey = val
		}
	}
	if cfg.Classifier.APIKey == "" {
		if val := os.Getenv("OPENAI_API_KEY"); val != "" {
			cfg.Classifier.APIKey = val
		}
	}

	if cfg.Knowledge.API.Token == "" {
		if val := os.Getenv("KNOWLEDGE_API_TOKEN"); val != "" {
			cfg.Knowledge.API.Token = val
		}
	}
	if cfg.Knowledge.API.DatabaseID == "" {
		if val := os.Getenv("KNOWLEDGE_DATABASE_ID"); val != "" {
			cfg.Knowledge.API.DatabaseID = val
		}
	}

	if cfg.Knowledge.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Knowledge.Postgres.User = val
		}
	}
	if cfg.Knowledge.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Knowledge.Postgres.Password = val
		}
	}

	if cfg.Audit.Redis.Password == "" {
		if val := os.Getenv("REDIS_PASSWORD"); val != "" {
			cfg.Audit.Redis.Password = val
		}
	}

	if cfg.Alerts.SNS.TopicARN == "" {
		if val := os.Getenv("ALERTS_SNS_TOPIC_ARN"); val != "" {
			cfg.Alerts.SNS.TopicARN = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "faq-service"
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if cfg.Server.MetricsAddress == "" {
		cfg.Server.MetricsAddress = ":9090"
	}

	// Knowledge defaults
	if cfg.Knowledge.Source == "" {
		cfg.Knowledge.Source = "api"
	}
	if cfg.Knowledge.CacheTTL == 0 {
		cfg.Knowledge.CacheTTL = 600000 // 10 minutes
	}
	if cfg.Knowledge.API.Version == "" {
		cfg.Knowledge.API.Version = "2022-06-28"
	}
	if cfg.Knowledge.API.Timeout == 0 {
		cfg.Knowledge.API.Timeout = 30000
	}
	if cfg.Knowledge.Postgres.Table == "" {
		cfg.Knowledge.Postgres.Table = "faq_entries"
	}
	if cfg.Knowledge.Postgres.MaxConnections == 0 {
		cfg.Knowledge.Postgres.MaxConnections = 25
	}
	if cfg.Knowledge.Postgres.MaxIdle == 0 {
		cfg.Knowledge.Postgres.MaxIdle = 5
	}
	if cfg.Knowledge.Postgres.SSLMode == "" {
		cfg.Knowledge.Postgres.SSLMode = "disable"
	}

	// Classifier defaults
	if cfg.Classifier.Model == "" {
		cfg.Classifier.Model = "gpt-4o-mini"
	}
	if cfg.Classifier.Timeout == 0 {
		cfg.Classifier.Timeout = 60000
	}

	// Audit defaults
	if cfg.Audit.Backend == "" {
		cfg.Audit.Backend = "none"
	}
	if cfg.Audit.Timeout == 0 {
		cfg.Audit.Timeout = 5000
	}
	if cfg.Audit.Redis.Key == "" {
		cfg.Audit.Redis.Key = "faq:audit"
	}
	if cfg.Audit.Redis.MaxLen == 0 {
		cfg.Audit.Redis.MaxLen = 10000
	}
	if cfg.Audit.Elasticsearch.Index == "" {
		cfg.Audit.Elasticsearch.Index = "faq-query-audit"
	}
	if cfg.Audit.Elasticsearch.URL == "" && len(cfg.Audit.Elasticsearch.Addresses) > 0 {
		cfg.Audit.Elasticsearch.URL = cfg.Audit.Elasticsearch.Addresses[0]
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// validateConfig validates critical configuration fields
func validateConfig(cfg *Config) error {
	switch cfg.Knowledge.Source {
	case "api":
		if cfg.Knowledge.API.BaseURL == "" {
			return fmt.Errorf("knowledge.api.base_url is required")
		}
		if cfg.Knowledge.API.DatabaseID == "" {
			return fmt.Errorf("knowledge.api.database_id is required")
		}
	case "postgres":
		if cfg.Knowledge.Postgres.Host == "" {
			return fmt.Errorf("knowledge.postgres.host is required")
		}
		if cfg.Knowledge.Postgres.Database == "" {
			return fmt.Errorf("knowledge.postgres.database is required")
		}
		if cfg.Knowledge.Postgres.User == "" {
			return fmt.Errorf("knowledge.postgres.user is required")
		}
	default:
		return fmt.Errorf("knowledge.source must be \"api\" or \"postgres\", got %q", cfg.Knowledge.Source)
	}

	switch cfg.Audit.Backend {
	case "none":
	case "redis":
		if cfg.Audit.Redis.Address == "" {
			return fmt.Errorf("audit.redis.address is required")
		}
	case "elasticsearch":
		if len(cfg.Audit.Elasticsearch.Addresses) == 0 && cfg.Audit.Elasticsearch.URL == "" {
			return fmt.Errorf("audit.elasticsearch.addresses or url is required")
		}
	default:
		return fmt.Errorf("audit.backend must be \"none\", \"redis\" or \"elasticsearch\", got %q", cfg.Audit.Backend)
	}

	if cfg.Alerts.SNS.Enabled && cfg.Alerts.SNS.TopicARN == "" {
		return fmt.Errorf("alerts.sns.topic_arn is required when alerts.sns.enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
