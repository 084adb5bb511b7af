package config

import (
	"cmp"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type MarketConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Interval string        `yaml:"interval"`
	Timeout  time.Duration `yaml:"timeout"`
	APIKey   string        `yaml:"-"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type TrackerConfig struct {
	// Storage spec, e.g. "file:portfolio.json", "memory",
	// "sqlite:portfolio.db" or "postgres:<dsn>".
	Storage  string       `yaml:"storage"`
	LogLevel string       `yaml:"log_level"`
	Market   MarketConfig `yaml:"market"`
	Server   ServerConfig `yaml:"server"`
}

const (
	_storageDefault  = "file:portfolio.json"
	_logLevelDefault = "info"
	_baseURLDefault  = "https://www.alphavantage.co/query"
	_intervalDefault = "1min"
	_timeoutDefault  = 10 * time.Second
	_portDefault     = "8084"
)

func (c *TrackerConfig) Setup() error {
	c.Storage = cmp.Or(os.Getenv("PORTFOLIO_STORAGE"), c.Storage, _storageDefault)
	c.LogLevel = cmp.Or(c.LogLevel, _logLevelDefault)

	c.Market.BaseURL = cmp.Or(c.Market.BaseURL, _baseURLDefault)
	c.Market.Interval = cmp.Or(c.Market.Interval, _intervalDefault)
	if c.Market.Timeout <= 0 {
		c.Market.Timeout = _timeoutDefault
	}
	c.Market.APIKey = os.Getenv("ALPHAVANTAGE_API_KEY")
	if c.Market.APIKey == "" {
		return fmt.Errorf("empty alphavantage api key")
	}

	c.Server.Port = cmp.Or(os.Getenv("SERVER_PORT"), c.Server.Port, _portDefault)

	return nil
}

// LoadTrackerConfig reads the YAML config file if it exists. A missing file is
// not an error: defaults plus environment variables are enough to run.
func LoadTrackerConfig(filename string) (TrackerConfig, error) {
	var cfg TrackerConfig

	input, err := os.ReadFile(filename)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("%w: can't read file", err)
	}

	if len(input) > 0 {
		if err := yaml.Unmarshal(input, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: can't unmarshal config", err)
		}
	}

	if err := cfg.Setup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}
