package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig holds the complete application configuration
type AppConfig struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Crawl   CrawlConfig   `yaml:"crawl"`
	Output  OutputConfig  `yaml:"output"`
	Proxies ProxyConfig   `yaml:"proxies"`
	Browser BrowserConfig `yaml:"browser"`
}

// ScraperConfig holds the fetch and worker-pool configuration
type ScraperConfig struct {
	Workers    int           `yaml:"workers"`
	RateLimit  time.Duration `yaml:"rate_limit"`
	MaxRetries int           `yaml:"max_retries"`
	RetryDelay time.Duration `yaml:"retry_delay"`
	Timeout    time.Duration `yaml:"timeout"`
	UserAgents []string      `yaml:"user_agents,omitempty"`
}

// CrawlConfig holds the event-discovery configuration
type CrawlConfig struct {
	// BaseURL is the root of the statistics site being crawled.
	BaseURL string `yaml:"base_url"`
	// Limit caps the number of discovered events; zero means no cap.
	Limit int `yaml:"limit"`
	// CutoffYear stops discovery once events of that year (or older) are
	// reached; zero disables the cutoff.
	CutoffYear int `yaml:"cutoff_year"`
	// PageDelay spaces out listing-page fetches. Values below one second are
	// raised to one second to stay clear of remote throttling.
	PageDelay time.Duration `yaml:"page_delay"`
	// LinkStrategy names the rule used to pick one fight link per event row:
	// flag-class, every-other or every-third.
	LinkStrategy string `yaml:"link_strategy"`
	// EventsFile optionally lists event URLs to scrape directly, one per
	// line, skipping listing-page discovery.
	EventsFile string `yaml:"events_file"`
}

// OutputConfig holds the export configuration
type OutputConfig struct {
	File   string `yaml:"file"`
	Format string `yaml:"format"`
	// TabPrefixRecords prefixes W-L-D record strings with a tab so
	// spreadsheets do not reinterpret them as dates.
	TabPrefixRecords bool `yaml:"tab_prefix_records"`
}

// ProxyConfig holds the proxy configuration
type ProxyConfig struct {
	Enabled bool     `yaml:"enabled"`
	Rotate  bool     `yaml:"rotate"`
	List    []string `yaml:"list"`
	Auth    struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`
}

// BrowserConfig holds the browser configuration for JavaScript rendering
type BrowserConfig struct {
	Enabled   bool          `yaml:"enabled"`
	Headless  bool          `yaml:"headless"`
	UserAgent string        `yaml:"user_agent"`
	WaitTime  time.Duration `yaml:"wait_time"`
}

// Load loads the configuration from a YAML file
func Load(filename string) (*AppConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var config AppConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// CreateDefault creates a default configuration
func CreateDefault() *AppConfig {
	config := &AppConfig{
		Scraper: ScraperConfig{
			Workers:    3,
			RateLimit:  1 * time.Second,
			MaxRetries: 3,
			RetryDelay: 2 * time.Second,
			Timeout:    30 * time.Second,
			UserAgents: DefaultUserAgents,
		},
		Crawl: CrawlConfig{
			BaseURL:      DefaultBaseURL,
			PageDelay:    1 * time.Second,
			LinkStrategy: "flag-class",
		},
		Output: OutputConfig{
			File:   "fights.csv",
			Format: "csv",
		},
		Browser: BrowserConfig{
			Enabled:   false,
			Headless:  true,
			UserAgent: DefaultUserAgents[0],
			WaitTime:  5 * time.Second,
		},
	}
	applyDefaults(config)
	return config
}

func applyDefaults(config *AppConfig) {
	if len(config.Scraper.UserAgents) == 0 {
		config.Scraper.UserAgents = DefaultUserAgents
	}
	if config.Browser.UserAgent == "" {
		config.Browser.UserAgent = DefaultUserAgents[0]
	}
	if config.Crawl.BaseURL == "" {
		config.Crawl.BaseURL = DefaultBaseURL
	}
	if config.Crawl.LinkStrategy == "" {
		config.Crawl.LinkStrategy = "flag-class"
	}
	// The listing site blocks aggressive crawlers; never page faster than
	// once per second.
	if config.Crawl.PageDelay < 1*time.Second {
		config.Crawl.PageDelay = 1 * time.Second
	}
	if config.Scraper.Workers <= 0 {
		config.Scraper.Workers = 3
	}
	// The worker pool tickers on RateLimit; zero is not a valid interval.
	if config.Scraper.RateLimit <= 0 {
		config.Scraper.RateLimit = 1 * time.Second
	}
	if config.Scraper.RetryDelay <= 0 {
		config.Scraper.RetryDelay = 2 * time.Second
	}
	if config.Scraper.MaxRetries < 0 {
		config.Scraper.MaxRetries = 3
	}
	if config.Scraper.Timeout <= 0 {
		config.Scraper.Timeout = 30 * time.Second
	}
	if config.Output.Format == "" {
		config.Output.Format = "csv"
	}
}
