// Package config loads process settings from the environment.
//
// The Config value is constructed once in main and passed by value into each
// component. Nothing outside this package reads ambient environment state.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"newsgen/pkg/logx"
)

// Config holds every environment-derived setting for both processes.
// It is read-only after Load returns.
type Config struct {
	// Temporal backend.
	TemporalAddress   string
	TemporalNamespace string
	TemporalAPIKey    string
	TaskQueue         string

	// Article database (Neon Postgres). Optional; the recent-articles
	// lookup is disabled when empty.
	DatabaseURL string

	// AI providers. At least one key must be present.
	AnthropicAPIKey string
	GoogleAPIKey    string
	OpenAIAPIKey    string

	// Search integrations.
	DataForSEOLogin    string
	DataForSEOPassword string
	SerperAPIKey       string

	// Knowledge graph. Optional.
	ZepAPIKey string

	DefaultApp  string
	Environment string
	LogLevel    string
}

// aiAlternatives is the synthetic missing-item reported when no AI
// provider credential is configured.
const aiAlternatives = "GOOGLE_API_KEY or OPENAI_API_KEY or ANTHROPIC_API_KEY"

// Load reads the environment once and returns an immutable Config.
func Load() Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("TEMPORAL_ADDRESS", "localhost:7233")
	v.SetDefault("TEMPORAL_NAMESPACE", "default")
	v.SetDefault("TEMPORAL_TASK_QUEUE", "quest-content-queue")
	v.SetDefault("DEFAULT_APP", "placement")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")

	return Config{
		TemporalAddress:   v.GetString("TEMPORAL_ADDRESS"),
		TemporalNamespace: v.GetString("TEMPORAL_NAMESPACE"),
		TemporalAPIKey:    v.GetString("TEMPORAL_API_KEY"),
		TaskQueue:         v.GetString("TEMPORAL_TASK_QUEUE"),

		DatabaseURL: v.GetString("DATABASE_URL"),

		AnthropicAPIKey: v.GetString("ANTHROPIC_API_KEY"),
		GoogleAPIKey:    v.GetString("GOOGLE_API_KEY"),
		OpenAIAPIKey:    v.GetString("OPENAI_API_KEY"),

		DataForSEOLogin:    v.GetString("DATAFORSEO_LOGIN"),
		DataForSEOPassword: v.GetString("DATAFORSEO_PASSWORD"),
		SerperAPIKey:       v.GetString("SERPER_API_KEY"),

		ZepAPIKey: v.GetString("ZEP_API_KEY"),

		DefaultApp:  v.GetString("DEFAULT_APP"),
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
	}
}

// Validate returns the names of missing required settings.
// An empty slice means the configuration is complete.
func (c Config) Validate() []string {
	required := []struct {
		name  string
		value string
	}{
		{"TEMPORAL_ADDRESS", c.TemporalAddress},
		{"TEMPORAL_NAMESPACE", c.TemporalNamespace},
		{"TEMPORAL_TASK_QUEUE", c.TaskQueue},
		{"DATAFORSEO_LOGIN", c.DataForSEOLogin},
		{"DATAFORSEO_PASSWORD", c.DataForSEOPassword},
		{"SERPER_API_KEY", c.SerperAPIKey},
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}

	if !c.hasAI() {
		missing = append(missing, aiAlternatives)
	}
	return missing
}

func (c Config) hasAI() bool {
	return c.AnthropicAPIKey != "" || c.GoogleAPIKey != "" || c.OpenAIAPIKey != ""
}

// Provider identifies an AI provider together with the model used there.
type Provider struct {
	Name  string
	Model string
}

// AIProvider selects the AI provider by fixed priority:
// Anthropic (Haiku for cost), then Google, then OpenAI.
func (c Config) AIProvider() (Provider, error) {
	switch {
	case c.AnthropicAPIKey != "":
		return Provider{Name: "anthropic", Model: "claude-3-5-haiku-20241022"}, nil
	case c.GoogleAPIKey != "":
		return Provider{Name: "google", Model: "gemini-1.5-flash"}, nil
	case c.OpenAIAPIKey != "":
		return Provider{Name: "openai", Model: "gpt-4o-mini"}, nil
	default:
		return Provider{}, fmt.Errorf("config: no AI API key configured")
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Fields returns a sanitized summary for startup logging.
// Credentials are reported as presence booleans only.
func (c Config) Fields() []logx.Field {
	return []logx.Field{
		logx.String("temporal_address", c.TemporalAddress),
		logx.String("temporal_namespace", c.TemporalNamespace),
		logx.String("task_queue", c.TaskQueue),
		logx.String("environment", c.Environment),
		logx.String("default_app", c.DefaultApp),
		logx.Bool("has_api_key", c.TemporalAPIKey != ""),
		logx.Bool("has_database", c.DatabaseURL != ""),
		logx.Bool("has_dataforseo", c.DataForSEOLogin != "" && c.DataForSEOPassword != ""),
		logx.Bool("has_serper", c.SerperAPIKey != ""),
		logx.Bool("has_zep", c.ZepAPIKey != ""),
		logx.Bool("has_ai", c.hasAI()),
	}
}
