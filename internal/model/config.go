package model

// Config holds the complete samforge configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Regen       RegenConfig       `yaml:"regen" mapstructure:"regen"`
}

// LLMConfig configures the completion provider
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, anthropic, ollama
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`

	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// HTTPConfig configures source fetching
type HTTPConfig struct {
	Timeout      int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64  `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ConcurrencyConfig configures batch processing and fetch politeness
type ConcurrencyConfig struct {
	BatchWorkers      int     `yaml:"batch_workers" mapstructure:"batch_workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"` // per host
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig configures source caching
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir       string `yaml:"dir" mapstructure:"dir"`
	MemoryTTL int    `yaml:"memory_ttl" mapstructure:"memory_ttl"` // minutes
	DiskTTL   int    `yaml:"disk_ttl" mapstructure:"disk_ttl"`     // minutes
}

// OutputConfig configures artifact rendering
type OutputConfig struct {
	Dir           string `yaml:"dir" mapstructure:"dir"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
}

// RegenConfig configures the single-flight regeneration guard
type RegenConfig struct {
	LockTTL int `yaml:"lock_ttl" mapstructure:"lock_ttl"` // seconds; keep above the regenerate timeout
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "", // Disabled until configured
			Timeout:   60,
			MaxTokens: 4000,
		},
		HTTP: HTTPConfig{
			Timeout:      15,
			UserAgent:    "Samforge/0.1 (+https://github.com/okrenov/samforge)",
			MaxBodyBytes: 2 * 1024 * 1024,
		},
		Concurrency: ConcurrencyConfig{
			BatchWorkers:      3,
			RequestsPerSecond: 1.0,
			Burst:             3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       "", // Defaults to ~/.samforge/cache at runtime
			MemoryTTL: 30,
			DiskTTL:   24 * 60,
		},
		Output: OutputConfig{
			Dir:           ".",
			IncludeFooter: true,
		},
		Regen: RegenConfig{
			LockTTL: 300,
		},
	}
}
