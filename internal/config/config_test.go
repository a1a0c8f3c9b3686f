package config

import (
	"testing"
)

func fullConfig() Config {
	return Config{
		TemporalAddress:    "localhost:7233",
		TemporalNamespace:  "default",
		TaskQueue:          "quest-content-queue",
		DataForSEOLogin:    "login",
		DataForSEOPassword: "pass",
		SerperAPIKey:       "serper",
		AnthropicAPIKey:    "anthropic",
		Environment:        "development",
	}
}

func TestValidateComplete(t *testing.T) {
	t.Parallel()
	if missing := fullConfig().Validate(); len(missing) != 0 {
		t.Fatalf("expected no missing settings, got %v", missing)
	}
}

func TestValidateSingleMissing(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"address", func(c *Config) { c.TemporalAddress = "" }, "TEMPORAL_ADDRESS"},
		{"namespace", func(c *Config) { c.TemporalNamespace = "" }, "TEMPORAL_NAMESPACE"},
		{"queue", func(c *Config) { c.TaskQueue = "" }, "TEMPORAL_TASK_QUEUE"},
		{"dataforseo login", func(c *Config) { c.DataForSEOLogin = "" }, "DATAFORSEO_LOGIN"},
		{"dataforseo password", func(c *Config) { c.DataForSEOPassword = "" }, "DATAFORSEO_PASSWORD"},
		{"serper", func(c *Config) { c.SerperAPIKey = "" }, "SERPER_API_KEY"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := fullConfig()
			tt.mut(&cfg)
			missing := cfg.Validate()
			if len(missing) != 1 || missing[0] != tt.want {
				t.Fatalf("Validate() = %v, want exactly [%s]", missing, tt.want)
			}
		})
	}
}

func TestValidateNoAIProvider(t *testing.T) {
	t.Parallel()
	cfg := fullConfig()
	cfg.AnthropicAPIKey = ""
	cfg.GoogleAPIKey = ""
	cfg.OpenAIAPIKey = ""

	missing := cfg.Validate()
	count := 0
	for _, m := range missing {
		if m == aiAlternatives {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected the combined AI item exactly once, got %v", missing)
	}
}

func TestAIProviderPriority(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		anthropic string
		google    string
		openai    string
		want      string
	}{
		{"all present", "k", "k", "k", "anthropic"},
		{"anthropic and openai", "k", "", "k", "anthropic"},
		{"google and openai", "", "k", "k", "google"},
		{"openai only", "", "", "k", "openai"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := fullConfig()
			cfg.AnthropicAPIKey = tt.anthropic
			cfg.GoogleAPIKey = tt.google
			cfg.OpenAIAPIKey = tt.openai

			p, err := cfg.AIProvider()
			if err != nil {
				t.Fatalf("AIProvider() error: %v", err)
			}
			if p.Name != tt.want {
				t.Fatalf("AIProvider() = %s, want %s", p.Name, tt.want)
			}
			if p.Model == "" {
				t.Fatal("expected a model name")
			}
		})
	}
}

func TestAIProviderNoneConfigured(t *testing.T) {
	t.Parallel()
	cfg := fullConfig()
	cfg.AnthropicAPIKey = ""
	if _, err := cfg.AIProvider(); err == nil {
		t.Fatal("expected error when no AI key is configured")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.TemporalAddress == "" || cfg.TemporalNamespace == "" || cfg.TaskQueue == "" {
		t.Fatalf("expected backend defaults, got %+v", cfg)
	}
	if cfg.Environment == "" || cfg.LogLevel == "" {
		t.Fatalf("expected environment defaults, got %+v", cfg)
	}
}

func TestIsProduction(t *testing.T) {
	t.Parallel()
	cfg := fullConfig()
	if cfg.IsProduction() {
		t.Fatal("development must not report production")
	}
	cfg.Environment = "Production"
	if !cfg.IsProduction() {
		t.Fatal("case-insensitive production check failed")
	}
}
