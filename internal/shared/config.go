package shared

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API struct {
		BaseURL  string `yaml:"base_url"`  // "https://api.codacy.com/api/v3"
		TokenEnv string `yaml:"token_env"` // env var holding the API token
		TimeoutS int    `yaml:"timeout_s"` // per-request timeout, seconds
	} `yaml:"api"`

	Export struct {
		Output string `yaml:"output"` // "semgrep_rules.yaml"
		Tool   string `yaml:"tool"`   // tool UUID; empty = Semgrep
	} `yaml:"export"`

	History struct {
		DSN string `yaml:"dsn"` // "./semgrep-extractor.db"
	} `yaml:"history"`

	Logging struct {
		Format string `yaml:"format"` // "text"|"json"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.API.BaseURL = "https://api.codacy.com/api/v3"
	c.API.TokenEnv = "CODACY_API_TOKEN"
	c.API.TimeoutS = 30
	c.Export.Output = "semgrep_rules.yaml"
	c.History.DSN = "./semgrep-extractor.db"
	c.Logging.Format = "text"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("SEMEX_API_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SEMEX_HISTORY_DSN"); v != "" {
		c.History.DSN = v
	}
	if v := os.Getenv("SEMEX_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("SEMEX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return c, nil
}

// Timeout returns the configured per-request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.API.TimeoutS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.API.TimeoutS) * time.Second
}

// Token reads the API token from the configured environment variable.
func (c Config) Token() string {
	return os.Getenv(c.API.TokenEnv)
}
