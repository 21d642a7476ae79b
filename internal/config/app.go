package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Database holds libSQL connection configuration. The default is a local
// file database; a remote Turso URL plus auth token also works.
type Database struct {
	URL       string `envconfig:"DATABASE_URL" default:"file:promptlab.db"`
	AuthToken string `envconfig:"AUTH_TOKEN"`
}

// OpenAI holds generation client configuration.
type OpenAI struct {
	APIKey      string        `envconfig:"OPENAI_API_KEY"`
	BaseURL     string        `envconfig:"OPENAI_BASE_URL" default:"https://api.openai.com/v1/chat/completions"`
	Model       string        `envconfig:"DEFAULT_MODEL" default:"gpt-3.5-turbo"`
	Temperature float64       `envconfig:"DEFAULT_TEMPERATURE" default:"0.7"`
	MaxTokens   int           `envconfig:"DEFAULT_MAX_TOKENS" default:"500"`
	Timeout     time.Duration `envconfig:"REQUEST_TIMEOUT" default:"60s"`
}

// App is the application configuration, loaded from PROMPTLAB_* environment
// variables.
type App struct {
	Database     Database
	OpenAI       OpenAI
	TemplatesDir string `envconfig:"TEMPLATES_DIR" default:"templates"`
}

// LoadApp loads application configuration from the environment.
func LoadApp() (*App, error) {
	var cfg App
	if err := envconfig.Process("promptlab", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
