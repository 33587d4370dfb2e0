package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// response formats supported by LLMConfig.ResponseFormat
const (
	FormatJSONSchema = "json_schema"
	FormatJSONObject = "json_object"
	FormatText       = "text"
)

// classification error policies supported by FilterConfig.OnError
const (
	OnErrorFail = "fail"
	OnErrorDrop = "drop"
	OnErrorKeep = "keep"
)

// Config holds the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	LLM     LLMConfig     `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for entry classification"`
	Cache   CacheConfig   `yaml:"cache" json:"cache" jsonschema:"description=Classification cache configuration"`
	Preview PreviewConfig `yaml:"preview" json:"preview" jsonschema:"description=Article preview configuration"`
	Feed    FeedConfig    `yaml:"feed" json:"feed" jsonschema:"description=Feed loading configuration"`
	Filter  FilterConfig  `yaml:"filter" json:"filter" jsonschema:"description=Feed filtering configuration"`
}

// ServerConfig holds http server settings
type ServerConfig struct {
	Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
}

// LLMConfig holds LLM configuration for entry classification
type LLMConfig struct {
	Endpoint         string        `yaml:"endpoint" json:"endpoint" jsonschema:"default=https://openrouter.ai/api/v1,description=OpenAI-compatible API endpoint"`
	APIKey           string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model            string        `yaml:"model" json:"model" jsonschema:"default=google/gemini-2.5-flash,description=Model name in provider/name format"`
	Temperature      float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens        int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=500,description=Maximum tokens in response"`
	Timeout          time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Timeout of a single model request"`
	SystemPrompt     string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
	Retries          int           `yaml:"retries" json:"retries" jsonschema:"default=4,minimum=0,description=Retries for invalid model output"`
	MaxToolRounds    int           `yaml:"max_tool_rounds" json:"max_tool_rounds" jsonschema:"default=5,minimum=1,description=Tool call rounds allowed before the model is forced to answer"`
	TransportRetries int           `yaml:"transport_retries" json:"transport_retries" jsonschema:"default=3,minimum=1,description=Attempts for a failed model request"`
	ResponseFormat   string        `yaml:"response_format" json:"response_format" jsonschema:"default=json_schema,enum=json_schema,enum=json_object,enum=text,description=Structured output mode (not all models support json_schema)"`
}

// CacheConfig holds classification cache settings
type CacheConfig struct {
	Size         int  `yaml:"size" json:"size" jsonschema:"default=10000,minimum=1,description=Maximum number of cached verdicts"`
	SingleFlight bool `yaml:"single_flight" json:"single_flight" jsonschema:"default=false,description=Collapse concurrent classifications of the same entry into one model call"`
}

// PreviewConfig holds article preview settings
type PreviewConfig struct {
	Timeout   time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Article fetch timeout"`
	UserAgent string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for article requests"`
}

// FeedConfig holds feed loading settings
type FeedConfig struct {
	DefaultURL string        `yaml:"default_url" json:"default_url" jsonschema:"default=https://news.ycombinator.com/rss,description=Feed used when request has no url"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Feed fetch timeout"`
	UserAgent  string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=Feedguard/1.0,description=User agent for feed requests"`
}

// FilterConfig holds filtering settings
type FilterConfig struct {
	MaxConcurrent int    `yaml:"max_concurrent" json:"max_concurrent" jsonschema:"default=10,minimum=1,description=Maximum concurrent classifications per request"`
	OnError       string `yaml:"on_error" json:"on_error" jsonschema:"default=fail,enum=fail,enum=drop,enum=keep,description=What to do with an entry which failed classification"`
}

// Load reads configuration from a YAML file. Empty path means defaults only.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// expand environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// SetDefaults fills unset values with defaults
func (c *Config) SetDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	// set defaults for LLM
	if c.LLM.Endpoint == "" {
		c.LLM.Endpoint = "https://openrouter.ai/api/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "google/gemini-2.5-flash"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 500
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.LLM.Retries == 0 {
		c.LLM.Retries = 4
	}
	if c.LLM.MaxToolRounds == 0 {
		c.LLM.MaxToolRounds = 5
	}
	if c.LLM.TransportRetries == 0 {
		c.LLM.TransportRetries = 3
	}
	if c.LLM.ResponseFormat == "" {
		c.LLM.ResponseFormat = FormatJSONSchema
	}

	if c.Cache.Size == 0 {
		c.Cache.Size = 10000
	}

	if c.Preview.Timeout == 0 {
		c.Preview.Timeout = 10 * time.Second
	}

	// set defaults for feed
	if c.Feed.DefaultURL == "" {
		c.Feed.DefaultURL = "https://news.ycombinator.com/rss"
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = 10 * time.Second
	}
	if c.Feed.UserAgent == "" {
		c.Feed.UserAgent = "Feedguard/1.0"
	}

	if c.Filter.MaxConcurrent == 0 {
		c.Filter.MaxConcurrent = 10
	}
	if c.Filter.OnError == "" {
		c.Filter.OnError = OnErrorFail
	}
}

// Validate checks configuration for correctness
func (c *Config) Validate() error {
	// validate LLM config
	if c.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if c.LLM.Retries < 0 {
		return fmt.Errorf("llm.retries must be non-negative")
	}
	if c.LLM.MaxToolRounds < 1 {
		return fmt.Errorf("llm.max_tool_rounds must be at least 1")
	}
	if c.LLM.TransportRetries < 1 {
		return fmt.Errorf("llm.transport_retries must be at least 1")
	}
	switch c.LLM.ResponseFormat {
	case FormatJSONSchema, FormatJSONObject, FormatText:
	default:
		return fmt.Errorf("llm.response_format %q is not one of %s, %s, %s",
			c.LLM.ResponseFormat, FormatJSONSchema, FormatJSONObject, FormatText)
	}

	if c.Cache.Size < 1 {
		return fmt.Errorf("cache.size must be at least 1")
	}

	if c.Preview.Timeout < 100*time.Millisecond {
		return fmt.Errorf("preview timeout must be at least 100ms")
	}
	if c.Feed.Timeout < time.Second {
		return fmt.Errorf("feed timeout must be at least 1 second")
	}

	if c.Filter.MaxConcurrent < 1 {
		return fmt.Errorf("filter.max_concurrent must be at least 1")
	}
	switch c.Filter.OnError {
	case OnErrorFail, OnErrorDrop, OnErrorKeep:
	default:
		return fmt.Errorf("filter.on_error %q is not one of %s, %s, %s", c.Filter.OnError, OnErrorFail, OnErrorDrop, OnErrorKeep)
	}

	// validate server config
	if c.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetDefaultFeedURL returns feed url used when request doesn't specify one
func (c *Config) GetDefaultFeedURL() string {
	return c.Feed.DefaultURL
}
