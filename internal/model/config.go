package model

import "time"

// Config is the complete claimlens configuration
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	HTTP        HTTPConfig        `yaml:"http"`
	Cache       CacheConfig       `yaml:"cache"`
	Gather      GatherConfig      `yaml:"gather"`
	Primary     LLMConfig         `yaml:"primary"`
	Secondary   LLMConfig         `yaml:"secondary"`
	Report      ReportConfig      `yaml:"report"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	Tiers       TierConfig        `yaml:"tiers"`
	Output      OutputConfig      `yaml:"output"`
}

// ServerConfig configures the HTTP serve mode
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// HTTPConfig configures outbound evidence-gathering requests
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy"`
}

// CacheConfig configures the snapshot cache
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// GatherConfig configures best-effort evidence gathering
type GatherConfig struct {
	MaxLinks      int     `yaml:"max_links"`      // Outbound links to snapshot per post
	MaxExcerpts   int     `yaml:"max_excerpts"`   // Excerpts per snapshot
	ExcerptRunes  int     `yaml:"excerpt_runes"`  // Max length of one excerpt
	RespectRobots bool    `yaml:"respect_robots"` // Honor robots.txt for linked pages
	RatePerDomain float64 `yaml:"rate_per_domain"`
	RateBurst     int     `yaml:"rate_burst"`
}

// LLMConfig configures one model provider slot
type LLMConfig struct {
	Provider  string `yaml:"provider"` // xai, openai, gemini, anthropic, ollama, "" = disabled
	Model     string `yaml:"model"`
	APIKey    string `yaml:"-"` // Never persisted; loaded from environment
	KeyEnv    string `yaml:"key_env"`
	BaseURL   string `yaml:"base_url"`
	Timeout   int    `yaml:"timeout"` // Seconds
	MaxTokens int    `yaml:"max_tokens"`
}

// ReportConfig configures report assembly
type ReportConfig struct {
	BaseURL string `yaml:"base_url"` // report_url = BaseURL + "/" + case_id
}

// ConcurrencyConfig bounds concurrent work
type ConcurrencyConfig struct {
	SnapshotWorkers int `yaml:"snapshot_workers"` // Parallel link snapshot fetches
	BatchWorkers    int `yaml:"batch_workers"`    // Parallel checks in batch mode
}

// TierConfig maps hosts to source-credibility tiers for the hints
// attached to gathered link snapshots
type TierConfig struct {
	OfficialDomains   []string          `yaml:"official_domains"`
	RegulatorDomains  []string          `yaml:"regulator_domains"`
	PeerReviewDomains []string          `yaml:"peerreview_domains"`
	NewsDomains       []string          `yaml:"news_domains"`
	CompanyDomains    []string          `yaml:"company_domains"`
	DomainMap         map[string]string `yaml:"domain_map,omitempty"` // Explicit host -> tier overrides
}

// OutputConfig controls CLI output behavior
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		HTTP: HTTPConfig{
			Timeout:      20 * time.Second,
			UserAgent:    "claimlens/0.1 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes: 2_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".claimlens-cache",
			TTL:     1 * time.Hour,
		},
		Gather: GatherConfig{
			MaxLinks:      3,
			MaxExcerpts:   2,
			ExcerptRunes:  280,
			RespectRobots: true,
			RatePerDomain: 2,
			RateBurst:     4,
		},
		Primary: LLMConfig{
			Provider:  "xai",
			Model:     "grok-2-latest",
			KeyEnv:    "XAI_API_KEY",
			BaseURL:   "https://api.x.ai/v1",
			Timeout:   60,
			MaxTokens: 2048,
		},
		Secondary: LLMConfig{
			Provider:  "gemini",
			Model:     "gemini-2.0-flash",
			KeyEnv:    "GEMINI_API_KEY",
			Timeout:   60,
			MaxTokens: 2048,
		},
		Report: ReportConfig{
			BaseURL: "https://claimlens.example.com/reports",
		},
		Concurrency: ConcurrencyConfig{
			SnapshotWorkers: 3,
			BatchWorkers:    4,
		},
		Tiers: TierConfig{
			OfficialDomains:   []string{"europa.eu", "un.org", "who.int", "iso.org"},
			RegulatorDomains:  []string{"fda.gov", "sec.gov", "epa.gov", "faa.gov", "ema.europa.eu", "nhtsa.gov"},
			PeerReviewDomains: []string{"nature.com", "sciencedirect.com", "springer.com", "arxiv.org", "pubmed.ncbi.nlm.nih.gov", "doi.org"},
			NewsDomains:       []string{"reuters.com", "apnews.com", "bbc.com", "bbc.co.uk", "nytimes.com", "theguardian.com"},
			CompanyDomains:    []string{"prnewswire.com", "businesswire.com"},
		},
	}
}
